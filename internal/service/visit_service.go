package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/model"
	"github.com/Bozotek/pickaguide-api/internal/repository"
)

type VisitService interface {
	Create(ctx context.Context, visitorID, advertID uuid.UUID, when time.Time) (*model.Visit, error)
	Get(ctx context.Context, visitID uuid.UUID) (*model.Visit, error)
	ListForVisitor(ctx context.Context, visitorID uuid.UUID) ([]model.Visit, error)
	ListForGuide(ctx context.Context, guideID uuid.UUID) ([]model.Visit, error)
	Accept(ctx context.Context, guideID, visitID uuid.UUID) error
	Deny(ctx context.Context, guideID, visitID uuid.UUID) error
	Cancel(ctx context.Context, userID, visitID uuid.UUID) error
	Finish(ctx context.Context, guideID, visitID uuid.UUID) error
	RateByVisitor(ctx context.Context, visitorID, visitID uuid.UUID, rate float64) error
	RateByGuide(ctx context.Context, guideID, visitID uuid.UUID, rate float64) error
}

type visitService struct {
	userRepo   repository.UserRepository
	advertRepo repository.AdvertRepository
	visitRepo  repository.VisitRepository
	rating     RatingService
}

func NewVisitService(
	userRepo repository.UserRepository,
	advertRepo repository.AdvertRepository,
	visitRepo repository.VisitRepository,
	rating RatingService,
) VisitService {
	return &visitService{
		userRepo:   userRepo,
		advertRepo: advertRepo,
		visitRepo:  visitRepo,
		rating:     rating,
	}
}

// Create books a visit. Both references must resolve: the advert must
// exist and be active, and its owner must still be around and taking
// visits.
func (s *visitService) Create(ctx context.Context, visitorID, advertID uuid.UUID, when time.Time) (*model.Visit, error) {
	advert, err := s.advertRepo.FindByID(ctx, advertID)
	if err != nil {
		return nil, translateFind(err)
	}
	if !advert.Active {
		return nil, ErrNotFound
	}
	if advert.OwnerID == visitorID {
		return nil, ErrInvalidUpdate
	}

	owner, err := s.userRepo.FindByID(ctx, advert.OwnerID)
	if err != nil {
		return nil, translateFind(err)
	}
	if owner.IsBlocking {
		return nil, ErrGuideUnavailable
	}

	visit := &model.Visit{
		AdvertID:  advertID,
		VisitorID: visitorID,
		Status:    model.VisitStatusPending,
		When:      when,
	}
	return s.visitRepo.Create(ctx, visit)
}

func (s *visitService) Get(ctx context.Context, visitID uuid.UUID) (*model.Visit, error) {
	visit, err := s.visitRepo.FindByID(ctx, visitID)
	if err != nil {
		return nil, translateFind(err)
	}
	return visit, nil
}

func (s *visitService) ListForVisitor(ctx context.Context, visitorID uuid.UUID) ([]model.Visit, error) {
	return s.visitRepo.FindByVisitor(ctx, visitorID)
}

func (s *visitService) ListForGuide(ctx context.Context, guideID uuid.UUID) ([]model.Visit, error) {
	return s.visitRepo.FindByGuide(ctx, guideID)
}

func (s *visitService) Accept(ctx context.Context, guideID, visitID uuid.UUID) error {
	return s.transition(ctx, guideID, visitID, model.VisitStatusPending, model.VisitStatusAccepted)
}

func (s *visitService) Deny(ctx context.Context, guideID, visitID uuid.UUID) error {
	return s.transition(ctx, guideID, visitID, model.VisitStatusPending, model.VisitStatusDenied)
}

func (s *visitService) Finish(ctx context.Context, guideID, visitID uuid.UUID) error {
	return s.transition(ctx, guideID, visitID, model.VisitStatusAccepted, model.VisitStatusFinished)
}

// transition moves a visit between statuses on behalf of the guide who
// owns the advert.
func (s *visitService) transition(ctx context.Context, guideID, visitID uuid.UUID, from, to string) error {
	visit, err := s.visitRepo.FindByID(ctx, visitID)
	if err != nil {
		return translateFind(err)
	}

	advert, err := s.advertRepo.FindByID(ctx, visit.AdvertID)
	if err != nil {
		return translateFind(err)
	}
	if advert.OwnerID != guideID {
		return ErrUnauthorized
	}

	if visit.Status != from {
		return ErrInvalidUpdate
	}
	return s.visitRepo.SetStatus(ctx, visitID, to)
}

// Cancel is available to either side of the booking.
func (s *visitService) Cancel(ctx context.Context, userID, visitID uuid.UUID) error {
	visit, err := s.visitRepo.FindByID(ctx, visitID)
	if err != nil {
		return translateFind(err)
	}

	if visit.VisitorID != userID {
		advert, err := s.advertRepo.FindByID(ctx, visit.AdvertID)
		if err != nil {
			return translateFind(err)
		}
		if advert.OwnerID != userID {
			return ErrUnauthorized
		}
	}

	if visit.Status != model.VisitStatusPending && visit.Status != model.VisitStatusAccepted {
		return ErrInvalidUpdate
	}
	return s.visitRepo.SetStatus(ctx, visitID, model.VisitStatusCancelled)
}

// RateByVisitor stores the visitor's rating of the guide and recomputes
// the guide's aggregate.
func (s *visitService) RateByVisitor(ctx context.Context, visitorID, visitID uuid.UUID, rate float64) error {
	visit, err := s.visitRepo.FindByID(ctx, visitID)
	if err != nil {
		return translateFind(err)
	}
	if visit.VisitorID != visitorID {
		return ErrUnauthorized
	}
	if visit.Status != model.VisitStatusFinished {
		return ErrInvalidUpdate
	}

	if err := s.visitRepo.SetVisitorRate(ctx, visitID, rate); err != nil {
		return err
	}

	advert, err := s.advertRepo.FindByID(ctx, visit.AdvertID)
	if err != nil {
		return translateFind(err)
	}
	return s.rating.UpdateRate(ctx, advert.OwnerID)
}

// RateByGuide stores the guide's rating of the visitor and recomputes the
// visitor's aggregate.
func (s *visitService) RateByGuide(ctx context.Context, guideID, visitID uuid.UUID, rate float64) error {
	visit, err := s.visitRepo.FindByID(ctx, visitID)
	if err != nil {
		return translateFind(err)
	}

	advert, err := s.advertRepo.FindByID(ctx, visit.AdvertID)
	if err != nil {
		return translateFind(err)
	}
	if advert.OwnerID != guideID {
		return ErrUnauthorized
	}
	if visit.Status != model.VisitStatusFinished {
		return ErrInvalidUpdate
	}

	if err := s.visitRepo.SetGuideRate(ctx, visitID, rate); err != nil {
		return err
	}
	return s.rating.UpdateRate(ctx, visit.VisitorID)
}
