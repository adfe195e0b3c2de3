package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/model"
	"github.com/Bozotek/pickaguide-api/internal/payment"
	"github.com/Bozotek/pickaguide-api/internal/repository"
)

type PaymentService interface {
	// EnsureProviderUser creates the provider-side account on first use and
	// stores its id against ours.
	EnsureProviderUser(ctx context.Context, userID uuid.UUID) (string, error)
	GetProviderUser(ctx context.Context, userID uuid.UUID) (*payment.ProviderUser, error)
	AddCard(ctx context.Context, userID uuid.UUID, card payment.Card) (string, error)
	CreatePayment(ctx context.Context, payerID, payeeID uuid.UUID, amount float64) (*model.Payment, error)
	GetPayment(ctx context.Context, userID, paymentID uuid.UUID) (*model.Payment, error)
	ListPayments(ctx context.Context, userID uuid.UUID) ([]model.Payment, error)
}

type paymentService struct {
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	client      payment.Client
}

func NewPaymentService(
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	client payment.Client,
) PaymentService {
	return &paymentService{
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		client:      client,
	}
}

func (s *paymentService) EnsureProviderUser(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", translateFind(err)
	}

	if user.Account.PaymentID != nil {
		return *user.Account.PaymentID, nil
	}

	providerID, err := s.client.CreateUser(ctx, payment.ProviderUser{
		Email:     user.Account.Email,
		FirstName: user.Profile.FirstName,
		LastName:  user.Profile.LastName,
	})
	if err != nil {
		return "", err
	}

	user.Account.PaymentID = &providerID
	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", translateSave(err)
	}
	return providerID, nil
}

func (s *paymentService) GetProviderUser(ctx context.Context, userID uuid.UUID) (*payment.ProviderUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateFind(err)
	}
	if user.Account.PaymentID == nil {
		return nil, ErrNotFound
	}
	return s.client.GetUser(ctx, *user.Account.PaymentID)
}

func (s *paymentService) AddCard(ctx context.Context, userID uuid.UUID, card payment.Card) (string, error) {
	providerID, err := s.EnsureProviderUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.client.AddCard(ctx, providerID, card)
}

// CreatePayment records the transfer locally, asks the provider to execute
// it, then marks the record payed with the provider's id.
func (s *paymentService) CreatePayment(ctx context.Context, payerID, payeeID uuid.UUID, amount float64) (*model.Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidUpdate
	}

	payee, err := s.userRepo.FindByID(ctx, payeeID)
	if err != nil {
		return nil, translateFind(err)
	}
	if payee.Account.PaymentID == nil {
		return nil, ErrNotFound
	}

	payerProviderID, err := s.EnsureProviderUser(ctx, payerID)
	if err != nil {
		return nil, err
	}

	record := &model.Payment{
		PayerID: payerID,
		PayeeID: payeeID,
		Amount:  amount,
		Status:  model.PaymentStatusCreated,
	}
	if _, err := s.paymentRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	result, err := s.client.CreatePayment(ctx, payerProviderID, payment.PaymentRequest{
		DestinationUserID: *payee.Account.PaymentID,
		Amount:            amount,
		Currency:          "EUR",
	})
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.MarkPayed(ctx, record.ID, result.ID); err != nil {
		return nil, err
	}
	record.Status = model.PaymentStatusPayed
	record.ProviderPaymentID = &result.ID
	return record, nil
}

func (s *paymentService) GetPayment(ctx context.Context, userID, paymentID uuid.UUID) (*model.Payment, error) {
	record, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, translateFind(err)
	}
	if record.PayerID != userID && record.PayeeID != userID {
		return nil, ErrUnauthorized
	}
	return record, nil
}

func (s *paymentService) ListPayments(ctx context.Context, userID uuid.UUID) ([]model.Payment, error) {
	return s.paymentRepo.FindByPayer(ctx, userID)
}
