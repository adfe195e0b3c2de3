package service

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bozotek/pickaguide-api/internal/events"
	"github.com/Bozotek/pickaguide-api/internal/jwt"
	"github.com/Bozotek/pickaguide-api/internal/model"
	"github.com/Bozotek/pickaguide-api/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AccountService interface {
	Signup(ctx context.Context, input SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, userID uuid.UUID, err error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Get(ctx context.Context, userID uuid.UUID) (*model.Account, error)
	ConfirmEmail(ctx context.Context, userID uuid.UUID) error
	ResendConfirmation(ctx context.Context, userID uuid.UUID) error
	SendPasswordReset(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, token, password string) error
	Remove(ctx context.Context, userID uuid.UUID, email, password string) error
}

type accountService struct {
	userRepo      repository.UserRepository
	blacklistRepo repository.BlacklistRepository
	cascade       *Cascade
	publisher     events.Publisher
	jwtSecret     string
	publicHost    string
}

func NewAccountService(
	userRepo repository.UserRepository,
	blacklistRepo repository.BlacklistRepository,
	cascade *Cascade,
	publisher events.Publisher,
	jwtSecret, publicHost string,
) AccountService {
	return &accountService{
		userRepo:      userRepo,
		blacklistRepo: blacklistRepo,
		cascade:       cascade,
		publisher:     publisher,
		jwtSecret:     jwtSecret,
		publicHost:    publicHost,
	}
}

func (s *accountService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", input.FirstName},
		{"lastName", input.LastName},
		{"password", input.Password},
		{"email", input.Email},
	}
	for _, field := range required {
		if field.value == "" {
			return nil, missingField(field.name)
		}
	}

	if !emailPattern.MatchString(input.Email) {
		return nil, ErrInvalidEmail
	}
	if utf8.RuneCountInString(input.Password) < 4 {
		return nil, ErrInvalidPassword
	}
	for _, name := range []string{input.FirstName, input.LastName} {
		if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
			return nil, ErrInvalidName
		}
	}

	blacklisted, err := s.blacklistRepo.Contains(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		return nil, ErrEmailBlacklisted
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Account: model.Account{
			Email:        input.Email,
			PasswordHash: string(hashed),
		},
		Profile: model.Profile{
			FirstName: input.FirstName,
			LastName:  input.LastName,
		},
	}
	capitalizeProfile(&user.Profile)

	// The id comes back from the insert; the session token is signed from
	// it afterwards so the userId claim always names the stored row.
	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, translateSave(err)
	}
	user.ID = newID

	token, err := jwt.SignSession(user.ID, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetSessionToken(ctx, user.ID, &token); err != nil {
		return nil, err
	}
	user.Account.SessionToken = &token

	// The account exists at this point. Only a transport-level notification
	// failure is surfaced; anything downstream of the broker happens in the
	// worker and never fails signup.
	confirmURL := s.publicHost + "/public/verify/" + user.ID.String()
	if err := s.publisher.PublishUserRegistered(user, confirmURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	return user, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (string, uuid.UUID, error) {
	if email == "" {
		return "", uuid.Nil, missingField("email")
	}
	if password == "" {
		return "", uuid.Nil, missingField("password")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", uuid.Nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Account.PasswordHash), []byte(password)); err != nil {
		return "", uuid.Nil, ErrInvalidCredentials
	}

	// The session token is issued once and reused until logout clears it.
	if user.Account.SessionToken == nil {
		token, err := jwt.SignSession(user.ID, s.jwtSecret)
		if err != nil {
			return "", uuid.Nil, err
		}
		if err := s.userRepo.SetSessionToken(ctx, user.ID, &token); err != nil {
			return "", uuid.Nil, err
		}
		user.Account.SessionToken = &token
	}

	return *user.Account.SessionToken, user.ID, nil
}

func (s *accountService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.SetSessionToken(ctx, userID, nil)
}

func (s *accountService) Get(ctx context.Context, userID uuid.UUID) (*model.Account, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateFind(err)
	}
	return &user.Account, nil
}

func (s *accountService) ConfirmEmail(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return translateFind(err)
	}

	// Unconfirmed -> Confirmed is irreversible; re-confirming is a no-op.
	user.Account.EmailConfirmed = true
	if err := s.userRepo.Save(ctx, user); err != nil {
		return translateSave(err)
	}
	return nil
}

func (s *accountService) ResendConfirmation(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return translateFind(err)
	}

	confirmURL := s.publicHost + "/public/verify/" + user.ID.String()
	if err := s.publisher.PublishUserRegistered(user, confirmURL); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

func (s *accountService) SendPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return translateFind(err)
	}

	token, err := jwt.SignReset(s.jwtSecret)
	if err != nil {
		return err
	}

	user.Account.ResetPasswordToken = &token
	if err := s.userRepo.Save(ctx, user); err != nil {
		return translateSave(err)
	}

	resetURL := s.publicHost + "/public/reset/" + token
	if err := s.publisher.PublishPasswordReset(user, resetURL); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return nil
}

func (s *accountService) ValidateResetToken(ctx context.Context, token string) error {
	if _, err := s.userRepo.FindByResetToken(ctx, token); err != nil {
		return translateFind(err)
	}
	return nil
}

func (s *accountService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return translateFind(err)
	}

	if utf8.RuneCountInString(password) < 4 {
		return ErrInvalidPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Account.PasswordHash = string(hashed)
	user.Account.ResetPasswordToken = nil
	if err := s.userRepo.Save(ctx, user); err != nil {
		return translateSave(err)
	}
	return nil
}

func (s *accountService) Remove(ctx context.Context, userID uuid.UUID, email, password string) error {
	if email == "" {
		return missingField("email")
	}
	if password == "" {
		return missingField("password")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return translateFind(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Account.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}

	if user.ID != userID {
		return ErrNotFound
	}

	return s.cascade.OnAccountRemoval(ctx, user)
}
