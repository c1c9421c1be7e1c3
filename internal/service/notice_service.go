package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/escolar-app/escolar-backend/internal/config"
	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
)

// NoticeService handles the notice board: persistence plus fan-out of newly
// published notices over the Redis pub/sub channel consumed by the
// WebSocket stream.
type NoticeService struct {
	noticeRepo *repository.NoticeRepository
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewNoticeService creates a new NoticeService.
func NewNoticeService(noticeRepo *repository.NoticeRepository, rdb *redis.Client, log zerolog.Logger) *NoticeService {
	return &NoticeService{
		noticeRepo: noticeRepo,
		rdb:        rdb,
		log:        log.With().Str("component", "notice_service").Logger(),
	}
}

// Publish stores a notice and broadcasts it on the notice stream channel.
// A failed broadcast does not fail the call; the notice is already persisted
// and listing remains authoritative.
func (s *NoticeService) Publish(ctx context.Context, authorID uuid.UUID, req *model.CreateNoticeRequest) (*model.Notice, error) {
	notice := &model.Notice{
		ID:       uuid.New(),
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: authorID,
	}
	if req.ExpiresAt != "" {
		expires, err := time.Parse("2006-01-02", req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("parse expiry: %w", err)
		}
		notice.ExpiresAt = &expires
	}

	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		return nil, fmt.Errorf("marshal notice: %w", err)
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.NoticeStreamChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("notice_id", notice.ID.String()).Msg("Notice broadcast failed")
	}

	s.log.Info().Str("notice_id", notice.ID.String()).Str("title", notice.Title).Msg("Notice published")
	return notice, nil
}

// List retrieves current (non-expired) notices, newest first.
func (s *NoticeService) List(ctx context.Context) ([]model.Notice, error) {
	notices, err := s.noticeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if notices == nil {
		notices = []model.Notice{}
	}
	return notices, nil
}

// Delete removes a notice.
func (s *NoticeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.noticeRepo.Delete(ctx, id)
}
