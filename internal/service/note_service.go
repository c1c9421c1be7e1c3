package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
)

// NoteService handles grade record business logic.
type NoteService struct {
	noteRepo *repository.NoteRepository
}

// NewNoteService creates a new NoteService.
func NewNoteService(noteRepo *repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// Create records a grade for a student in a discipline.
func (s *NoteService) Create(ctx context.Context, req *model.CreateNoteRequest) (*model.Note, error) {
	note := &model.Note{
		ID:           uuid.New(),
		StudentID:    req.StudentID,
		DisciplineID: req.DisciplineID,
		Term:         req.Term,
		Value:        req.Value,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListByStudent retrieves all grades for one student.
func (s *NoteService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.Note, error) {
	notes, err := s.noteRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// UpdateValue overwrites the value of a grade record.
func (s *NoteService) UpdateValue(ctx context.Context, id uuid.UUID, value float64) error {
	return s.noteRepo.Update(ctx, &model.Note{ID: id, Value: value})
}

// Delete removes a grade record.
func (s *NoteService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.noteRepo.Delete(ctx, id)
}
