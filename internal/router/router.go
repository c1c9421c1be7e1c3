package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/escolar-app/escolar-backend/internal/config"
	"github.com/escolar-app/escolar-backend/internal/handler"
	"github.com/escolar-app/escolar-backend/internal/middleware"
	"github.com/escolar-app/escolar-backend/internal/response"
	"github.com/escolar-app/escolar-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Class      *handler.ClassHandler
	Event      *handler.EventHandler
	Student    *handler.StudentHandler
	User       *handler.UserHandler
	Discipline *handler.DisciplineHandler
	Note       *handler.NoteHandler
	Attendance *handler.AttendanceHandler
	Notice     *handler.NoticeHandler
	Dashboard  *handler.DashboardHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.GetProfile)
	}

	// ─── 2. Staff Group (JWT + Single Device) ──────────────────────────
	// Scheduling reads, notices and records are open to any staff member.
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		// Class management
		api.GET("/classes", handlers.Class.ListClasses)
		api.GET("/classes/:id", handlers.Class.GetClass)
		api.POST("/classes", middleware.RequireAdmin(), handlers.Class.CreateClass)
		api.PUT("/classes/:id", middleware.RequireAdmin(), handlers.Class.UpdateClass)
		api.DELETE("/classes/:id", middleware.RequireAdmin(), handlers.Class.DeleteClass)

		// Class events and recurrences
		api.GET("/events", handlers.Event.ListEvents)
		api.GET("/events/:id", handlers.Event.GetEvent)
		api.POST("/events", middleware.RequireAdmin(), handlers.Event.CreateEvent)
		api.PUT("/events/:id", middleware.RequireAdmin(), handlers.Event.UpdateEvent)
		api.DELETE("/events/:id", middleware.RequireAdmin(), handlers.Event.DeleteEvent)
		api.POST("/events/:id/recurrences", middleware.RequireAdmin(), handlers.Event.AddRecurrences)
		api.DELETE("/events/:id/recurrences", middleware.RequireAdmin(), handlers.Event.DeleteRecurrences)

		// Student management
		api.GET("/students", handlers.Student.ListStudents)
		api.GET("/students/:id", handlers.Student.GetStudent)
		api.POST("/students", middleware.RequireAdmin(), handlers.Student.CreateStudent)
		api.PUT("/students/:id", middleware.RequireAdmin(), handlers.Student.UpdateStudent)
		api.DELETE("/students/:id", middleware.RequireAdmin(), handlers.Student.DeleteStudent)

		// Staff account management
		api.GET("/users", middleware.RequireAdmin(), handlers.User.ListUsers)
		api.POST("/users", middleware.RequireAdmin(), handlers.User.CreateUser)
		api.PUT("/users/:id", middleware.RequireAdmin(), handlers.User.UpdateUser)
		api.DELETE("/users/:id", middleware.RequireAdmin(), handlers.User.DeleteUser)
		api.POST("/users/:id/reset-session", middleware.RequireAdmin(), handlers.User.ResetUserSession)

		// Disciplines
		api.GET("/disciplines", handlers.Discipline.ListDisciplines)
		api.POST("/disciplines", middleware.RequireAdmin(), handlers.Discipline.CreateDiscipline)
		api.PUT("/disciplines/:id", middleware.RequireAdmin(), handlers.Discipline.UpdateDiscipline)
		api.DELETE("/disciplines/:id", middleware.RequireAdmin(), handlers.Discipline.DeleteDiscipline)

		// Grades: teachers record them, anyone on staff can read them.
		api.GET("/students/:id/notes", handlers.Note.ListStudentNotes)
		api.POST("/notes", handlers.Note.CreateNote)
		api.PUT("/notes/:id", handlers.Note.UpdateNote)
		api.DELETE("/notes/:id", handlers.Note.DeleteNote)

		// Attendance
		api.GET("/events/:id/attendances", handlers.Attendance.ListEventAttendances)
		api.POST("/attendances", handlers.Attendance.CreateAttendance)
		api.DELETE("/attendances/:id", handlers.Attendance.DeleteAttendance)

		// Notice board
		api.GET("/notices", handlers.Notice.ListNotices)
		api.POST("/notices", middleware.RequireAdmin(), handlers.Notice.PublishNotice)
		api.DELETE("/notices/:id", middleware.RequireAdmin(), handlers.Notice.DeleteNotice)

		// Dashboard
		api.GET("/dashboard", middleware.RequireAdmin(), handlers.Dashboard.GetDashboard)
	}

	// ─── 3. WebSocket Group (WS Auth) ──────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/notices/stream", handlers.WS.NoticeStream)
	}

	return router
}
