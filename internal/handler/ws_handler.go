package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/escolar-app/escolar-backend/internal/config"
	"github.com/escolar-app/escolar-backend/internal/middleware"
	"github.com/escolar-app/escolar-backend/internal/model"
	ws "github.com/escolar-app/escolar-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler handles the WebSocket notice stream.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// NoticeStream godoc
// WS /ws/v1/notices/stream
// Upgrades to WebSocket and forwards every notice published on the Redis
// stream channel to the client, as it happens.
func (h *WSHandler) NoticeStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("user_id", claims.UserID.String()).Logger()
	wsLog.Info().Msg("Notice stream subscriber connected")

	ctx := c.Request.Context()
	sub := h.rdb.Subscribe(ctx, config.CacheKey.NoticeStreamChannel())
	defer sub.Close()

	h.stream(ctx, conn, wsLog, sub.Channel())
}

// stream pumps notices from the subscription channel to the client. The
// connection allows only one concurrent writer, so the reader goroutine
// never writes: it signals pings over a channel and the select loop below
// issues every outbound frame.
func (h *WSHandler) stream(ctx context.Context, conn *websocket.Conn, wsLog zerolog.Logger, ch <-chan *redis.Message) {
	done := make(chan struct{})
	pings := make(chan struct{}, 1)
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				select {
				case pings <- struct{}{}:
				default:
				}
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-pings:
			if err := ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				wsLog.Debug().Err(err).Msg("Pong failed, dropping subscriber")
				return
			}
		case payload, ok := <-ch:
			if !ok {
				return
			}
			var notice model.Notice
			if err := json.Unmarshal([]byte(payload.Payload), &notice); err != nil {
				wsLog.Warn().Err(err).Msg("Malformed notice payload on stream")
				_ = ws.WriteError(conn, "malformed notice payload")
				continue
			}
			if err := ws.WriteTyped(conn, ws.NoticeEvent{Event: ws.EventNotice, Notice: notice}); err != nil {
				wsLog.Debug().Err(err).Msg("Forward failed, dropping subscriber")
				return
			}
		}
	}
}
