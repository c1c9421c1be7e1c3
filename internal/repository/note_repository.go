package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/escolar-app/escolar-backend/internal/model"
)

var ErrDuplicateNote = errors.New("note for this student, discipline and term already exists")

// NoteRepository handles grade record data access.
type NoteRepository struct {
	pool *pgxpool.Pool
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(pool *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create inserts a new grade record.
func (r *NoteRepository) Create(ctx context.Context, n *model.Note) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO notes (id, student_id, discipline_id, term, value)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		n.ID, n.StudentID, n.DisciplineID, n.Term, n.Value,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateNote
		}
		return err
	}
	return nil
}

// ListByStudent retrieves all grades for one student.
func (r *NoteRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Note, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, discipline_id, term, value, created_at, updated_at
		 FROM notes WHERE student_id = $1 ORDER BY term, created_at`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.StudentID, &n.DisciplineID, &n.Term, &n.Value, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Update overwrites the value of an existing grade record.
func (r *NoteRepository) Update(ctx context.Context, n *model.Note) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE notes SET value = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		n.Value, n.ID,
	)
	return err
}

// Delete removes a grade record by ID.
func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	return err
}
