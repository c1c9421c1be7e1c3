package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/escolar-app/escolar-backend/internal/config"
	"github.com/escolar-app/escolar-backend/internal/database"
	"github.com/escolar-app/escolar-backend/internal/logger"
	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
	"github.com/escolar-app/escolar-backend/internal/service"
)

// Seeds a demo school: one teacher, two disciplines, one class with students
// and a scheduled class event with weekly recurrences.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	disciplineRepo := repository.NewDisciplineRepository(pool)
	scheduleStore := repository.NewScheduleStore(pool)
	scheduleService := service.NewScheduleService(scheduleStore, cfg.RecurrenceAttachMode == config.AttachAll, log)

	fmt.Println("=== Seeding Demo School ===")

	// Teacher
	hash, err := bcrypt.GenerateFromPassword([]byte("teacher123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}
	teacher := &model.User{
		ID:           uuid.New(),
		Name:         "Maria Souza",
		Email:        "maria.souza@escolar.local",
		PasswordHash: string(hash),
		Role:         model.RoleTeacher,
	}
	if err := userRepo.Create(ctx, teacher); err != nil {
		log.Fatal().Err(err).Msg("Failed to create teacher")
	}
	fmt.Printf("Teacher: %s (%s)\n", teacher.Name, teacher.ID)

	// Disciplines
	disciplineIDs := make([]uuid.UUID, 0, 2)
	for _, name := range []string{"Mathematics", "Physics"} {
		d := &model.Discipline{ID: uuid.New(), Name: name}
		if err := disciplineRepo.Create(ctx, d); err != nil {
			log.Fatal().Err(err).Str("discipline", name).Msg("Failed to create discipline")
		}
		disciplineIDs = append(disciplineIDs, d.ID)
		fmt.Printf("Discipline: %s (%s)\n", d.Name, d.ID)
	}

	// Class
	if _, err := scheduleService.AddClass(ctx, &model.CreateClassRequest{
		Level:       model.LevelHigh,
		Name:        "10th Grade",
		Section:     "A",
		Shift:       model.ShiftMorning,
		MaxStudents: 35,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to create class")
	}

	views, err := scheduleService.GetAllClasses(ctx)
	if err != nil || len(views) == 0 {
		log.Fatal().Err(err).Msg("Failed to read back seeded class")
	}
	classID := views[len(views)-1].ID
	fmt.Printf("Class: %s (%s)\n", views[len(views)-1].ClassInfo, classID)

	// Students
	for i := 1; i <= 20; i++ {
		student := &model.Student{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("Demo Student %02d", i),
			Enrollment: fmt.Sprintf("2026%04d", i),
			BirthDate:  time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			ClassID:    &classID,
		}
		if err := studentRepo.Create(ctx, student); err != nil {
			log.Fatal().Err(err).Str("enrollment", student.Enrollment).Msg("Failed to create student")
		}
	}
	fmt.Println("Students: 20 created")

	// Class event spanning the school year, with weekly recurrences.
	msg, err := scheduleService.AddEvent(ctx, &model.CreateClassEventRequest{
		ClassID:       classID,
		TeacherID:     teacher.ID,
		DisciplineIDs: disciplineIDs,
		StartDate:     "2026-02-02",
		EndDate:       "2026-12-11",
		Recurrences: []model.RecurrenceInput{
			{Day: model.Monday, StartTime: "08:00", EndTime: "09:40"},
			{Day: model.Thursday, StartTime: "10:00", EndTime: "11:40"},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create class event")
	}
	fmt.Println("Events:", msg)

	fmt.Println("\nDone. Demo data seeded.")
}
