package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/repository"
)

type RatingService interface {
	UpdateRate(ctx context.Context, userID uuid.UUID) error
}

type ratingService struct {
	userRepo   repository.UserRepository
	advertRepo repository.AdvertRepository
	visitRepo  repository.VisitRepository
}

func NewRatingService(
	userRepo repository.UserRepository,
	advertRepo repository.AdvertRepository,
	visitRepo repository.VisitRepository,
) RatingService {
	return &ratingService{
		userRepo:   userRepo,
		advertRepo: advertRepo,
		visitRepo:  visitRepo,
	}
}

// UpdateRate recomputes the user's average rating from every rated visit
// they took part in, on either side, and writes it back to the profile.
// This is a read-aggregate-write sequence without isolation: two visits
// completing at once can each aggregate from a stale read and the last
// write wins.
func (s *ratingService) UpdateRate(ctx context.Context, userID uuid.UUID) error {
	advertIDs, err := s.advertRepo.FindIDsByOwner(ctx, userID)
	if err != nil {
		return err
	}

	visits, err := s.visitRepo.FindRated(ctx, userID, advertIDs)
	if err != nil {
		return err
	}

	// Guide-side visits (the user is the visitor) contribute the guide's
	// rating of them; advert-side visits contribute the visitor's rating.
	// A system adjustment on a guide-side visit is added to that visit's
	// contribution and shrinks the divisor by one. A visit with no
	// contribution shrinks it too.
	var sum float64
	notIndicated := 0
	for i := range visits {
		visit := &visits[i]

		var contribution *float64
		if visit.VisitorID == userID {
			contribution = visit.GuideRate
		} else {
			contribution = visit.VisitorRate
		}

		var toAdd float64
		if contribution != nil {
			toAdd = *contribution
		} else {
			notIndicated++
		}

		if visit.VisitorID == userID && visit.SystemRate != nil {
			toAdd += *visit.SystemRate
			notIndicated++
		}

		sum += toAdd
	}

	divisor := len(visits) - notIndicated

	var rating *float64
	if divisor > 0 {
		average := sum / float64(divisor)
		rating = &average
	}

	return s.userRepo.SetRating(ctx, userID, rating)
}
