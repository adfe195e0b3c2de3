package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/model"
	"github.com/Bozotek/pickaguide-api/internal/repository"
)

type AdvertInput struct {
	Title       string
	Description string
	City        *string
	Hourly      *float64
}

type AdvertService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input AdvertInput) (*model.Advert, error)
	Get(ctx context.Context, advertID uuid.UUID) (*model.Advert, error)
	ListActive(ctx context.Context) ([]model.Advert, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Advert, error)
	Update(ctx context.Context, ownerID, advertID uuid.UUID, input AdvertInput) (*model.Advert, error)
	ToggleActive(ctx context.Context, ownerID, advertID uuid.UUID) (bool, error)
	Delete(ctx context.Context, ownerID, advertID uuid.UUID) error
}

type advertService struct {
	userRepo    repository.UserRepository
	advertRepo  repository.AdvertRepository
	commentRepo repository.CommentRepository
}

func NewAdvertService(
	userRepo repository.UserRepository,
	advertRepo repository.AdvertRepository,
	commentRepo repository.CommentRepository,
) AdvertService {
	return &advertService{
		userRepo:    userRepo,
		advertRepo:  advertRepo,
		commentRepo: commentRepo,
	}
}

// Create publishes an advert. Only guides can publish.
func (s *advertService) Create(ctx context.Context, ownerID uuid.UUID, input AdvertInput) (*model.Advert, error) {
	if input.Title == "" {
		return nil, missingField("title")
	}
	if input.Description == "" {
		return nil, missingField("description")
	}

	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, translateFind(err)
	}
	if !owner.IsGuide {
		return nil, ErrNotGuide
	}

	advert := &model.Advert{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		City:        input.City,
		Hourly:      input.Hourly,
		Active:      true,
	}
	return s.advertRepo.Create(ctx, advert)
}

func (s *advertService) Get(ctx context.Context, advertID uuid.UUID) (*model.Advert, error) {
	advert, err := s.advertRepo.FindByID(ctx, advertID)
	if err != nil {
		return nil, translateFind(err)
	}
	return advert, nil
}

func (s *advertService) ListActive(ctx context.Context) ([]model.Advert, error) {
	return s.advertRepo.ListActive(ctx)
}

func (s *advertService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Advert, error) {
	return s.advertRepo.FindByOwner(ctx, ownerID)
}

func (s *advertService) Update(ctx context.Context, ownerID, advertID uuid.UUID, input AdvertInput) (*model.Advert, error) {
	advert, err := s.ownedAdvert(ctx, ownerID, advertID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		advert.Title = input.Title
	}
	if input.Description != "" {
		advert.Description = input.Description
	}
	if input.City != nil {
		advert.City = input.City
	}
	if input.Hourly != nil {
		advert.Hourly = input.Hourly
	}

	if err := s.advertRepo.Update(ctx, advert); err != nil {
		return nil, translateSave(err)
	}
	return advert, nil
}

func (s *advertService) ToggleActive(ctx context.Context, ownerID, advertID uuid.UUID) (bool, error) {
	advert, err := s.ownedAdvert(ctx, ownerID, advertID)
	if err != nil {
		return false, err
	}

	active := !advert.Active
	if err := s.advertRepo.SetActive(ctx, advertID, active); err != nil {
		return false, err
	}
	return active, nil
}

// Delete removes the advert and its comments for good.
func (s *advertService) Delete(ctx context.Context, ownerID, advertID uuid.UUID) error {
	if _, err := s.ownedAdvert(ctx, ownerID, advertID); err != nil {
		return err
	}

	if err := s.commentRepo.DeleteAllForAdvert(ctx, advertID); err != nil {
		return err
	}
	return s.advertRepo.Delete(ctx, advertID)
}

func (s *advertService) ownedAdvert(ctx context.Context, ownerID, advertID uuid.UUID) (*model.Advert, error) {
	advert, err := s.advertRepo.FindByID(ctx, advertID)
	if err != nil {
		return nil, translateFind(err)
	}
	if advert.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	return advert, nil
}
