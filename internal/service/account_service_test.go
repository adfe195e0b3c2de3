package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Bozotek/pickaguide-api/internal/jwt"
)

const testSecret = "test-secret"

type accountFixture struct {
	service   AccountService
	users     *fakeUserRepo
	blacklist *fakeBlacklistRepo
	publisher *fakePublisher
	adverts   *fakeAdvertRepo
	visits    *fakeVisitRepo
}

func newAccountFixture() *accountFixture {
	users := newFakeUserRepo()
	adverts := newFakeAdvertRepo()
	visits := newFakeVisitRepo(adverts)
	blacklist := newFakeBlacklistRepo()
	publisher := &fakePublisher{}
	cascade := NewCascade(users, adverts, visits, blacklist)

	return &accountFixture{
		service:   NewAccountService(users, blacklist, cascade, publisher, testSecret, "http://localhost:8080"),
		users:     users,
		blacklist: blacklist,
		publisher: publisher,
		adverts:   adverts,
		visits:    visits,
	}
}

func validSignup() SignupInput {
	return SignupInput{
		FirstName: "jean",
		LastName:  "dupont",
		Email:     "jean@example.com",
		Password:  "secret",
	}
}

func TestSignup_MissingFieldsCheckedInOrder(t *testing.T) {
	f := newAccountFixture()

	_, err := f.service.Signup(context.Background(), SignupInput{})
	require.ErrorIs(t, err, ErrMissingField)
	require.Contains(t, err.Error(), "firstName")

	_, err = f.service.Signup(context.Background(), SignupInput{FirstName: "Jean"})
	require.ErrorIs(t, err, ErrMissingField)
	require.Contains(t, err.Error(), "lastName")

	_, err = f.service.Signup(context.Background(), SignupInput{FirstName: "Jean", LastName: "Dupont", Email: "jean@example.com"})
	require.ErrorIs(t, err, ErrMissingField)
	require.Contains(t, err.Error(), "password")
}

func TestSignup_Validation(t *testing.T) {
	f := newAccountFixture()

	input := validSignup()
	input.Email = "not-an-email"
	_, err := f.service.Signup(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidEmail)

	input = validSignup()
	input.Password = "abc"
	_, err = f.service.Signup(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidPassword)

	input = validSignup()
	input.FirstName = "j"
	_, err = f.service.Signup(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestSignup_CreatesCapitalizedUserWithToken(t *testing.T) {
	f := newAccountFixture()

	user, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	require.Equal(t, "Jean", user.Profile.FirstName)
	require.Equal(t, "Dupont", user.Profile.LastName)
	require.NotNil(t, user.Account.SessionToken)
	require.False(t, user.Account.EmailConfirmed)

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "jean@example.com", stored.Account.Email)

	require.Len(t, f.publisher.events, 1)
	require.Equal(t, "user.registered", f.publisher.events[0].subject)
	require.Contains(t, f.publisher.events[0].url, user.ID.String())
}

func TestSignup_SessionTokenNamesStoredRow(t *testing.T) {
	f := newAccountFixture()

	user, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	// The fake assigns ids the way the table default does, so the claim
	// must carry the id the store chose or this lookup misses.
	claims, err := jwt.ValidateToken(*user.Account.SessionToken, testSecret)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims["userId"])

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Account.SessionToken)
	require.Equal(t, *user.Account.SessionToken, *stored.Account.SessionToken)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	f := newAccountFixture()

	_, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, err = f.service.Signup(context.Background(), validSignup())
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSignup_BlacklistedEmail(t *testing.T) {
	f := newAccountFixture()
	require.NoError(t, f.blacklist.Add(context.Background(), "jean@example.com"))

	_, err := f.service.Signup(context.Background(), validSignup())
	require.ErrorIs(t, err, ErrEmailBlacklisted)
}

func TestSignup_PublishFailureSurfacesAsTransport(t *testing.T) {
	f := newAccountFixture()
	f.publisher.err = context.DeadlineExceeded

	_, err := f.service.Signup(context.Background(), validSignup())
	require.ErrorIs(t, err, ErrTransport)
}

func TestLogin_ReusesStoredToken(t *testing.T) {
	f := newAccountFixture()

	user, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	token, userID, err := f.service.Login(context.Background(), "jean@example.com", "secret")
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
	require.Equal(t, *user.Account.SessionToken, token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newAccountFixture()

	_, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	_, _, err = f.service.Login(context.Background(), "jean@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.service.Login(context.Background(), "nobody@example.com", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_ClearsTokenThenLoginIssuesFresh(t *testing.T) {
	f := newAccountFixture()

	user, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), user.ID))

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Nil(t, stored.Account.SessionToken)

	token, _, err := f.service.Login(context.Background(), "jean@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestConfirmEmail(t *testing.T) {
	f := newAccountFixture()

	user, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	require.NoError(t, f.service.ConfirmEmail(context.Background(), user.ID))

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, stored.Account.EmailConfirmed)

	require.ErrorIs(t, f.service.ConfirmEmail(context.Background(), uuid.New()), ErrNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAccountFixture()

	user, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	require.NoError(t, f.service.SendPasswordReset(context.Background(), "jean@example.com"))

	stored, err := f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Account.ResetPasswordToken)
	token := *stored.Account.ResetPasswordToken

	require.Len(t, f.publisher.events, 2)
	require.Equal(t, "user.password_reset", f.publisher.events[1].subject)
	require.Contains(t, f.publisher.events[1].url, token)

	require.NoError(t, f.service.ValidateResetToken(context.Background(), token))
	require.ErrorIs(t, f.service.ValidateResetToken(context.Background(), "bogus"), ErrNotFound)

	require.ErrorIs(t, f.service.ResetPassword(context.Background(), token, "abc"), ErrInvalidPassword)
	require.NoError(t, f.service.ResetPassword(context.Background(), token, "brand-new"))

	stored, err = f.users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Nil(t, stored.Account.ResetPasswordToken)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Account.PasswordHash), []byte("brand-new")))

	_, _, err = f.service.Login(context.Background(), "jean@example.com", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRemove_CredentialChecks(t *testing.T) {
	f := newAccountFixture()

	user, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	require.ErrorIs(t, f.service.Remove(context.Background(), user.ID, "jean@example.com", "wrong"), ErrInvalidPassword)
	require.ErrorIs(t, f.service.Remove(context.Background(), uuid.New(), "jean@example.com", "secret"), ErrNotFound)
}

func TestRemove_RunsCascadeAndBlocksReRegistration(t *testing.T) {
	f := newAccountFixture()

	user, err := f.service.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	require.NoError(t, f.service.Remove(context.Background(), user.ID, "jean@example.com", "secret"))

	_, err = f.users.FindByID(context.Background(), user.ID)
	require.Error(t, err)

	_, err = f.service.Signup(context.Background(), validSignup())
	require.ErrorIs(t, err, ErrEmailBlacklisted)
}
