package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/model"
	"github.com/Bozotek/pickaguide-api/internal/repository"
	"github.com/Bozotek/pickaguide-api/internal/storage"
)

// AccountPatch and ProfilePatch are typed partial updates. A nil field is
// left untouched; a set field overwrites. Interests is the one list field:
// when supplied it replaces the stored list wholesale instead of merging.
type AccountPatch struct {
	Email *string
}

type ProfilePatch struct {
	FirstName   *string
	LastName    *string
	City        *string
	Country     *string
	Phone       *string
	Description *string
	Interests   *model.StringList
	Birthdate   *time.Time
}

type UserPatch struct {
	Account *AccountPatch
	Profile *ProfilePatch
}

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	// FindForUpdate returns the live record used by read-merge-save flows.
	FindForUpdate(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Update(ctx context.Context, userID uuid.UUID, patch UserPatch) (*model.User, error)
	All(ctx context.Context) ([]model.PublicProfile, error)
	Search(ctx context.Context, terms string) ([]model.PublicProfile, error)
	SetLocation(ctx context.Context, userID uuid.UUID, lat, lng float64) error
	FindNear(ctx context.Context, userID uuid.UUID, maxDistance float64) ([]model.GuideProfile, error)
	UploadAvatar(ctx context.Context, userID uuid.UUID, body io.Reader, contentType string) (string, error)
	DownloadAvatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, string, error)
	DeleteAvatar(ctx context.Context, userID uuid.UUID) error
}

type profileService struct {
	userRepo repository.UserRepository
	store    storage.ObjectStore
}

func NewProfileService(userRepo repository.UserRepository, store storage.ObjectStore) ProfileService {
	return &profileService{userRepo: userRepo, store: store}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateFind(err)
	}
	return &user.Profile, nil
}

func (s *profileService) FindForUpdate(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateFind(err)
	}
	return user, nil
}

// Update applies the patch over the stored record and writes the whole
// record back. Fields absent from the patch keep their stored value; the
// last writer wins if two updates race.
func (s *profileService) Update(ctx context.Context, userID uuid.UUID, patch UserPatch) (*model.User, error) {
	user, err := s.FindForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyPatch(user, patch)
	capitalizeProfile(&user.Profile)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, translateSave(err)
	}
	return user, nil
}

func applyPatch(user *model.User, patch UserPatch) {
	if a := patch.Account; a != nil {
		if a.Email != nil {
			user.Account.Email = *a.Email
		}
	}
	p := patch.Profile
	if p == nil {
		return
	}
	if p.FirstName != nil {
		user.Profile.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		user.Profile.LastName = *p.LastName
	}
	if p.City != nil {
		user.Profile.City = p.City
	}
	if p.Country != nil {
		user.Profile.Country = p.Country
	}
	if p.Phone != nil {
		user.Profile.Phone = p.Phone
	}
	if p.Description != nil {
		user.Profile.Description = p.Description
	}
	if p.Interests != nil {
		// Full replacement, including replacement by an empty list.
		user.Profile.Interests = *p.Interests
	}
	if p.Birthdate != nil {
		user.Profile.Birthdate = p.Birthdate
	}
}

func (s *profileService) All(ctx context.Context) ([]model.PublicProfile, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return displayProfiles(users), nil
}

// Search tokenizes the terms, drops tokens of two characters or fewer and
// matches the rest case-insensitively against confirmed users. Empty terms
// fall back to listing everyone, redacted.
func (s *profileService) Search(ctx context.Context, terms string) ([]model.PublicProfile, error) {
	tokens := searchTokens(terms)
	if len(tokens) == 0 {
		return s.All(ctx)
	}

	users, err := s.userRepo.SearchConfirmed(ctx, tokens)
	if err != nil {
		return nil, err
	}
	return displayProfiles(users), nil
}

func displayProfiles(users []model.User) []model.PublicProfile {
	profiles := make([]model.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, displayProfile(&users[i]))
	}
	return profiles
}

// displayProfile redacts the account and phone and reduces the name to
// "First L.", the public display form.
func displayProfile(user *model.User) model.PublicProfile {
	p := model.PublicProfile{
		ID:          user.ID,
		DisplayName: displayName(&user.Profile),
		City:        user.Profile.City,
		Country:     user.Profile.Country,
		Description: user.Profile.Description,
		Interests:   user.Profile.Interests,
		Rating:      user.Profile.Rating,
		IsGuide:     user.IsGuide,
	}
	if user.Profile.Birthdate != nil {
		age := ageFrom(*user.Profile.Birthdate, time.Now())
		p.Age = &age
	}
	return p
}

func displayName(p *model.Profile) string {
	if p.LastName == "" {
		return p.FirstName
	}
	return fmt.Sprintf("%s %c.", p.FirstName, []rune(p.LastName)[0])
}

func ageFrom(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()
	if now.YearDay() < birthdate.YearDay() {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

func (s *profileService) SetLocation(ctx context.Context, userID uuid.UUID, lat, lng float64) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return translateFind(err)
	}

	user.Profile.Latitude = &lat
	user.Profile.Longitude = &lng
	if err := s.userRepo.Save(ctx, user); err != nil {
		return translateSave(err)
	}
	return nil
}

func (s *profileService) FindNear(ctx context.Context, userID uuid.UUID, maxDistance float64) ([]model.GuideProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateFind(err)
	}

	if !user.HasLocation() {
		return nil, ErrNoLocation
	}

	return s.userRepo.FindNear(ctx, *user.Profile.Latitude, *user.Profile.Longitude, maxDistance)
}

func (s *profileService) UploadAvatar(ctx context.Context, userID uuid.UUID, body io.Reader, contentType string) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", translateFind(err)
	}

	key := "avatars/" + userID.String() + "/" + uuid.New().String()
	if err := s.store.Store(ctx, key, body, contentType); err != nil {
		return "", err
	}

	user.Profile.AvatarKey = &key
	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", translateSave(err)
	}
	return key, nil
}

func (s *profileService) DownloadAvatar(ctx context.Context, userID uuid.UUID) (io.ReadCloser, string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", translateFind(err)
	}
	if user.Profile.AvatarKey == nil {
		return nil, "", ErrNotFound
	}
	return s.store.Retrieve(ctx, *user.Profile.AvatarKey)
}

func (s *profileService) DeleteAvatar(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return translateFind(err)
	}
	if user.Profile.AvatarKey == nil {
		return ErrNotFound
	}

	if err := s.store.Delete(ctx, *user.Profile.AvatarKey); err != nil {
		return err
	}

	user.Profile.AvatarKey = nil
	if err := s.userRepo.Save(ctx, user); err != nil {
		return translateSave(err)
	}
	return nil
}
