package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key for a staff user's active session.
func (r *CacheKeyStruct) UserSessionKey(userID string) string {
	return fmt.Sprintf("login:%s", userID)
}

// NoticeStreamChannel returns the Redis pub/sub channel for the notice stream.
func (r *CacheKeyStruct) NoticeStreamChannel() string {
	return "notices:stream"
}

var CacheKey = NewCacheKeyStruct()
