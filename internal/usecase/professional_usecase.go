package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/converter"
	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/internal/domain/repository"
)

type ProfessionalUsecase interface {
	Create(ctx context.Context, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProfessionalResponse, error)
	GetAll(ctx context.Context) (*dto.ProfessionalListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type professionalUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	professionalRepo repository.ProfessionalRepository
}

func NewProfessionalUsecase(db *gorm.DB, log *logrus.Logger, professionalRepo repository.ProfessionalRepository) ProfessionalUsecase {
	return &professionalUsecase{
		db:               db,
		log:              log,
		professionalRepo: professionalRepo,
	}
}

func (u *professionalUsecase) Create(ctx context.Context, req *dto.CreateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	professional := &entity.Professional{
		FullName:     req.FullName,
		Specialty:    req.Specialty,
		Registration: req.Registration,
		Active:       true,
	}

	if err := u.professionalRepo.Create(ctx, u.db, professional); err != nil {
		u.log.Errorf("Failed to create professional: %+v", err)
		return nil, err
	}

	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProfessionalResponse, error) {
	professional, err := u.professionalRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", id, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}
	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) GetAll(ctx context.Context) (*dto.ProfessionalListResponse, error) {
	professionals, err := u.professionalRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list professionals: %+v", err)
		return nil, err
	}

	return &dto.ProfessionalListResponse{
		Professionals: converter.ProfessionalsToResponses(professionals),
		Total:         len(professionals),
	}, nil
}

func (u *professionalUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalResponse, error) {
	professional, err := u.professionalRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", id, err)
		return nil, err
	}
	if professional == nil {
		return nil, ErrProfessionalNotFound
	}

	if req.FullName != "" {
		professional.FullName = req.FullName
	}
	if req.Specialty != "" {
		professional.Specialty = req.Specialty
	}
	if req.Registration != "" {
		professional.Registration = req.Registration
	}
	if req.Active != nil {
		professional.Active = *req.Active
	}

	if err := u.professionalRepo.Update(ctx, u.db, professional); err != nil {
		u.log.Errorf("Failed to update professional %s: %+v", id, err)
		return nil, err
	}

	return converter.ProfessionalToResponse(professional), nil
}

func (u *professionalUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	professional, err := u.professionalRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find professional %s: %+v", id, err)
		return err
	}
	if professional == nil {
		return ErrProfessionalNotFound
	}
	return u.professionalRepo.Delete(ctx, u.db, id)
}
