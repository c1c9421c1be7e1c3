package service

import (
	"context"

	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
)

// DashboardData consolidates all metrics for the admin dashboard.
type DashboardData struct {
	TotalStudents     int                   `json:"total_students"`
	TotalClasses      int                   `json:"total_classes"`
	TotalEvents       int                   `json:"total_events"`
	TotalNotices      int                   `json:"total_notices"`
	WeekdayLoad       map[model.Weekday]int `json:"weekday_load"`
	ShiftDistribution map[model.Shift]int   `json:"shift_distribution"`
}

// DashboardService handles admin dashboard business logic.
type DashboardService struct {
	repo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetDashboardData fetches all dashboard metrics.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*DashboardData, error) {
	students, classes, events, notices, err := s.repo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	weekdayLoad, err := s.repo.GetWeekdayLoad(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.repo.GetShiftDistribution(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		TotalStudents:     students,
		TotalClasses:      classes,
		TotalEvents:       events,
		TotalNotices:      notices,
		WeekdayLoad:       weekdayLoad,
		ShiftDistribution: shifts,
	}, nil
}
