package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
)

// AttendanceService handles attendance record business logic.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo *repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{attendanceRepo: attendanceRepo}
}

// Create records attendance for a student on a class event date.
func (s *AttendanceService) Create(ctx context.Context, req *model.CreateAttendanceRequest) (*model.Attendance, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	record := &model.Attendance{
		ID:           uuid.New(),
		StudentID:    req.StudentID,
		ClassEventID: req.ClassEventID,
		Date:         date,
		Present:      *req.Present,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListByEvent retrieves attendance records for one class event, optionally
// restricted to a single date.
func (s *AttendanceService) ListByEvent(ctx context.Context, eventID uuid.UUID, date *time.Time) ([]model.Attendance, error) {
	records, err := s.attendanceRepo.ListByEvent(ctx, eventID, date)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.Attendance{}
	}
	return records, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.attendanceRepo.Delete(ctx, id)
}
