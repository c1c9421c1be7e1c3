package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/escolar-app/escolar-backend/internal/config"
	"github.com/escolar-app/escolar-backend/internal/database"
	"github.com/escolar-app/escolar-backend/internal/handler"
	"github.com/escolar-app/escolar-backend/internal/logger"
	"github.com/escolar-app/escolar-backend/internal/repository"
	"github.com/escolar-app/escolar-backend/internal/router"
	"github.com/escolar-app/escolar-backend/internal/service"
	"github.com/escolar-app/escolar-backend/internal/validator"
	"github.com/escolar-app/escolar-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("attach_mode", string(cfg.RecurrenceAttachMode)).
		Msg("Starting Escolar Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	scheduleStore := repository.NewScheduleStore(pool)
	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	disciplineRepo := repository.NewDisciplineRepository(pool)
	noteRepo := repository.NewNoteRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	noticeRepo := repository.NewNoticeRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	scheduleService := service.NewScheduleService(scheduleStore, cfg.RecurrenceAttachMode == config.AttachAll, log)
	userService := service.NewUserService(userRepo, authService)
	studentService := service.NewStudentService(studentRepo)
	disciplineService := service.NewDisciplineService(disciplineRepo, log)
	noteService := service.NewNoteService(noteRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo)
	noticeService := service.NewNoticeService(noticeRepo, rdb, log)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, userService),
		Class:      handler.NewClassHandler(scheduleService),
		Event:      handler.NewEventHandler(scheduleService),
		Student:    handler.NewStudentHandler(studentService),
		User:       handler.NewUserHandler(userService, authService),
		Discipline: handler.NewDisciplineHandler(disciplineService),
		Note:       handler.NewNoteHandler(noteService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Notice:     handler.NewNoticeHandler(noticeService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		WS:         handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	retentionWorker := worker.NewNoticeRetentionWorker(noticeRepo, cfg.NoticeRetentionInterval, log)
	go retentionWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
