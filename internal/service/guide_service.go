package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/repository"
)

type GuideService interface {
	BecomeGuide(ctx context.Context, userID uuid.UUID) error
	Retire(ctx context.Context, userID uuid.UUID) error
	IsGuide(ctx context.Context, userID uuid.UUID) (bool, error)
	IsBlocking(ctx context.Context, userID uuid.UUID) (bool, error)
	SetBlocking(ctx context.Context, userID uuid.UUID, blocking bool) error
}

type guideService struct {
	userRepo   repository.UserRepository
	advertRepo repository.AdvertRepository
	visitRepo  repository.VisitRepository
}

func NewGuideService(
	userRepo repository.UserRepository,
	advertRepo repository.AdvertRepository,
	visitRepo repository.VisitRepository,
) GuideService {
	return &guideService{
		userRepo:   userRepo,
		advertRepo: advertRepo,
		visitRepo:  visitRepo,
	}
}

// BecomeGuide promotes a user. Requires a confirmed email and a complete
// profile: phone, city, country, description and interests all set.
func (s *guideService) BecomeGuide(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return translateFind(err)
	}

	if !user.Account.EmailConfirmed {
		return ErrEmailNotConfirmed
	}

	p := user.Profile
	if p.Phone == nil || p.City == nil || p.Country == nil || p.Description == nil || p.Interests == nil {
		return ErrIncompleteProfile
	}

	return s.userRepo.SetGuide(ctx, userID, true)
}

// Retire clears the guide flag after denying pending visits on the user's
// adverts and deactivating the adverts themselves. Adverts are kept: a
// retired guide can come back.
func (s *guideService) Retire(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return translateFind(err)
	}
	if !user.IsGuide {
		return ErrNotGuide
	}

	if err := s.visitRepo.DenyPendingForGuide(ctx, userID); err != nil {
		return err
	}
	if err := s.advertRepo.DeactivateAllForOwner(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.SetGuide(ctx, userID, false)
}

func (s *guideService) IsGuide(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, translateFind(err)
	}
	return user.IsGuide, nil
}

func (s *guideService) IsBlocking(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, translateFind(err)
	}
	return user.IsBlocking, nil
}

func (s *guideService) SetBlocking(ctx context.Context, userID uuid.UUID, blocking bool) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return translateFind(err)
	}
	return s.userRepo.SetBlocking(ctx, userID, blocking)
}
