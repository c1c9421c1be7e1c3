package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/escolar-app/escolar-backend/internal/model"
	"github.com/escolar-app/escolar-backend/internal/repository"
)

type DisciplineService struct {
	disciplineRepo *repository.DisciplineRepository
	log            zerolog.Logger
}

func NewDisciplineService(disciplineRepo *repository.DisciplineRepository, log zerolog.Logger) *DisciplineService {
	return &DisciplineService{
		disciplineRepo: disciplineRepo,
		log:            log.With().Str("component", "discipline_service").Logger(),
	}
}

func (s *DisciplineService) GetAll(ctx context.Context) ([]model.Discipline, error) {
	return s.disciplineRepo.GetAll(ctx)
}

func (s *DisciplineService) Create(ctx context.Context, req *model.CreateDisciplineRequest) (*model.Discipline, error) {
	d := &model.Discipline{ID: uuid.New(), Name: req.Name}
	if err := s.disciplineRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DisciplineService) Update(ctx context.Context, id uuid.UUID, req *model.CreateDisciplineRequest) (*model.Discipline, error) {
	d := &model.Discipline{ID: id, Name: req.Name}
	if err := s.disciplineRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return s.disciplineRepo.GetByID(ctx, id)
}

func (s *DisciplineService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.disciplineRepo.Delete(ctx, id)
}
