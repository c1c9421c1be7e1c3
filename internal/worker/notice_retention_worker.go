package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/escolar-app/escolar-backend/internal/repository"
)

// NoticeRetentionWorker periodically removes notices whose expiry has passed.
// Listing already filters expired notices out, so the sweep only reclaims
// storage; a missed tick is harmless.
type NoticeRetentionWorker struct {
	noticeRepo *repository.NoticeRepository
	interval   time.Duration
	log        zerolog.Logger
}

// NewNoticeRetentionWorker creates a new NoticeRetentionWorker.
func NewNoticeRetentionWorker(noticeRepo *repository.NoticeRepository, interval time.Duration, log zerolog.Logger) *NoticeRetentionWorker {
	return &NoticeRetentionWorker{
		noticeRepo: noticeRepo,
		interval:   interval,
		log:        log.With().Str("component", "notice_retention_worker").Logger(),
	}
}

// Start begins the sweep loop. Call in a goroutine.
func (w *NoticeRetentionWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *NoticeRetentionWorker) sweep(ctx context.Context) {
	deleted, err := w.noticeRepo.DeleteExpired(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("Retention sweep failed")
		return
	}
	if deleted > 0 {
		w.log.Info().Int64("deleted", deleted).Msg("Expired notices removed")
	}
}
