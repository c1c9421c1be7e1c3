package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolar-app/escolar-backend/internal/model"
)

// DashboardRepository handles admin dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalStudents, totalClasses, totalEvents, totalNotices int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM classes),
			(SELECT COUNT(*) FROM class_events),
			(SELECT COUNT(*) FROM notices WHERE expires_at IS NULL OR expires_at > NOW())`,
	).Scan(&totalStudents, &totalClasses, &totalEvents, &totalNotices)
	return
}

// GetWeekdayLoad retrieves how many recurrences fall on each day of the week.
func (r *DashboardRepository) GetWeekdayLoad(ctx context.Context) (map[model.Weekday]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT day_of_week, COUNT(*) FROM recurrences GROUP BY day_of_week`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.Weekday]int)
	for rows.Next() {
		var day model.Weekday
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts[day] = count
	}
	return counts, rows.Err()
}

// GetShiftDistribution retrieves the distribution of classes by shift.
func (r *DashboardRepository) GetShiftDistribution(ctx context.Context) (map[model.Shift]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT shift, COUNT(*) FROM classes GROUP BY shift`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.Shift]int)
	for rows.Next() {
		var shift model.Shift
		var count int
		if err := rows.Scan(&shift, &count); err != nil {
			return nil, err
		}
		counts[shift] = count
	}
	return counts, rows.Err()
}
