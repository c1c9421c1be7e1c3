package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolar-app/escolar-backend/internal/model"
)

type DisciplineRepository struct {
	pool *pgxpool.Pool
}

func NewDisciplineRepository(pool *pgxpool.Pool) *DisciplineRepository {
	return &DisciplineRepository{pool: pool}
}

func (r *DisciplineRepository) Create(ctx context.Context, d *model.Discipline) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO disciplines (id, name) VALUES ($1, $2) RETURNING created_at, updated_at`,
		d.ID, d.Name).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *DisciplineRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Discipline, error) {
	d := &model.Discipline{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM disciplines WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DisciplineRepository) GetAll(ctx context.Context) ([]model.Discipline, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, created_at, updated_at FROM disciplines ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var disciplines []model.Discipline
	for rows.Next() {
		var d model.Discipline
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		disciplines = append(disciplines, d)
	}
	return disciplines, rows.Err()
}

func (r *DisciplineRepository) Update(ctx context.Context, d *model.Discipline) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE disciplines SET name = $1, updated_at = NOW() WHERE id = $2`, d.Name, d.ID)
	return err
}

func (r *DisciplineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM disciplines WHERE id = $1`, id)
	return err
}
