package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Bozotek/pickaguide-api/internal/model"
)

type ratingFixture struct {
	service RatingService
	users   *fakeUserRepo
	adverts *fakeAdvertRepo
	visits  *fakeVisitRepo
}

func newRatingFixture() *ratingFixture {
	users := newFakeUserRepo()
	adverts := newFakeAdvertRepo()
	visits := newFakeVisitRepo(adverts)
	return &ratingFixture{
		service: NewRatingService(users, adverts, visits),
		users:   users,
		adverts: adverts,
		visits:  visits,
	}
}

func (f *ratingFixture) addUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	id, err := f.users.Create(context.Background(), &model.User{
		Account: model.Account{Email: email, PasswordHash: "hash"},
		Profile: model.Profile{FirstName: "Test", LastName: "User"},
	})
	require.NoError(t, err)
	return id
}

func (f *ratingFixture) addVisit(t *testing.T, advertID, visitorID uuid.UUID, visitorRate, guideRate, systemRate *float64) {
	t.Helper()
	_, err := f.visits.Create(context.Background(), &model.Visit{
		AdvertID:    advertID,
		VisitorID:   visitorID,
		Status:      model.VisitStatusFinished,
		VisitorRate: visitorRate,
		GuideRate:   guideRate,
		SystemRate:  systemRate,
	})
	require.NoError(t, err)
}

func ptr(v float64) *float64 { return &v }

func TestUpdateRate_SystemSupplementShrinksDivisor(t *testing.T) {
	f := newRatingFixture()
	userID := f.addUser(t, "visitor@example.com")
	guideID := f.addUser(t, "guide@example.com")

	advert, err := f.adverts.Create(context.Background(), &model.Advert{OwnerID: guideID, Title: "T", Description: "D", Active: true})
	require.NoError(t, err)

	// Two visits taken by the user: one plainly rated 4, one rated 2 with a
	// system adjustment of 1. The adjustment joins the second visit's
	// contribution and removes it from the divisor: (4 + 2 + 1) / (2 - 1).
	f.addVisit(t, advert.ID, userID, nil, ptr(4), nil)
	f.addVisit(t, advert.ID, userID, nil, ptr(2), ptr(1))

	require.NoError(t, f.service.UpdateRate(context.Background(), userID))

	stored, err := f.users.FindByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, stored.Profile.Rating)
	require.Equal(t, 7.0, *stored.Profile.Rating)
}

func TestUpdateRate_AveragesBothSides(t *testing.T) {
	f := newRatingFixture()
	userID := f.addUser(t, "both@example.com")
	otherGuideID := f.addUser(t, "guide@example.com")
	visitorID := f.addUser(t, "visitor@example.com")

	ownAdvert, err := f.adverts.Create(context.Background(), &model.Advert{OwnerID: userID, Title: "T", Description: "D", Active: true})
	require.NoError(t, err)
	otherAdvert, err := f.adverts.Create(context.Background(), &model.Advert{OwnerID: otherGuideID, Title: "T", Description: "D", Active: true})
	require.NoError(t, err)

	// A visitor rated the user's advert 3; a guide rated the user 5 on a
	// visit they took. Average of both sides: (3 + 5) / 2.
	f.addVisit(t, ownAdvert.ID, visitorID, ptr(3), nil, nil)
	f.addVisit(t, otherAdvert.ID, userID, nil, ptr(5), nil)

	require.NoError(t, f.service.UpdateRate(context.Background(), userID))

	stored, err := f.users.FindByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, stored.Profile.Rating)
	require.Equal(t, 4.0, *stored.Profile.Rating)
}

func TestUpdateRate_NoRatedVisitsClearsRating(t *testing.T) {
	f := newRatingFixture()
	userID := f.addUser(t, "fresh@example.com")

	require.NoError(t, f.users.SetRating(context.Background(), userID, ptr(4.5)))

	require.NoError(t, f.service.UpdateRate(context.Background(), userID))

	stored, err := f.users.FindByID(context.Background(), userID)
	require.NoError(t, err)
	require.Nil(t, stored.Profile.Rating)
}
