package usecase

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kaduart/agenda-clinica-service/internal/converter"
	"github.com/kaduart/agenda-clinica-service/internal/delivery/dto"
	"github.com/kaduart/agenda-clinica-service/internal/domain/entity"
	"github.com/kaduart/agenda-clinica-service/internal/domain/repository"
)

var ErrSpecialtyNotFound = errors.New("specialty not found")

type SpecialtyUsecase interface {
	Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetByID(ctx context.Context, id int) (*dto.SpecialtyResponse, error)
	GetAll(ctx context.Context) (*dto.SpecialtyListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	Delete(ctx context.Context, id int) error
}

type specialtyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
}

func NewSpecialtyUsecase(db *gorm.DB, log *logrus.Logger, specialtyRepo repository.SpecialtyRepository) SpecialtyUsecase {
	return &specialtyUsecase{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
	}
}

func (u *specialtyUsecase) Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty := &entity.Specialty{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Active:      true,
	}
	if err := u.specialtyRepo.Create(ctx, u.db, specialty); err != nil {
		u.log.Errorf("Failed to create specialty: %+v", err)
		return nil, err
	}
	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetByID(ctx context.Context, id int) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", id, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}
	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetAll(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}
	return &dto.SpecialtyListResponse{
		Specialties: converter.SpecialtiesToResponses(specialties),
		Total:       len(specialties),
	}, nil
}

func (u *specialtyUsecase) Update(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", id, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	if req.Name != "" {
		specialty.Name = req.Name
	}
	if req.Description != "" {
		specialty.Description = req.Description
	}
	if req.PriceCents != nil {
		specialty.PriceCents = *req.PriceCents
	}
	if req.Active != nil {
		specialty.Active = *req.Active
	}

	if err := u.specialtyRepo.Update(ctx, u.db, specialty); err != nil {
		u.log.Errorf("Failed to update specialty %d: %+v", id, err)
		return nil, err
	}
	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) Delete(ctx context.Context, id int) error {
	specialty, err := u.specialtyRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", id, err)
		return err
	}
	if specialty == nil {
		return ErrSpecialtyNotFound
	}
	return u.specialtyRepo.Delete(ctx, u.db, id)
}
