package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the payment provider. The core passes identifiers
// through and never interprets the provider's payloads beyond the ids it
// stores.
type Client interface {
	CreateUser(ctx context.Context, user ProviderUser) (string, error)
	GetUser(ctx context.Context, providerUserID string) (*ProviderUser, error)
	AddCard(ctx context.Context, providerUserID string, card Card) (string, error)
	CreatePayment(ctx context.Context, providerUserID string, req PaymentRequest) (*ProviderPayment, error)
	GetPayment(ctx context.Context, providerPaymentID string) (*ProviderPayment, error)
}

type ProviderUser struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Card struct {
	Number      string `json:"number"`
	ExpiryMonth int    `json:"expiry_month"`
	ExpiryYear  int    `json:"expiry_year"`
	CVC         string `json:"cvc"`
}

type PaymentRequest struct {
	DestinationUserID string  `json:"destination_user_id"`
	Amount            float64 `json:"amount"`
	Currency          string  `json:"currency"`
}

type ProviderPayment struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(baseURL, apiKey string) Client {
	return &httpClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *httpClient) CreateUser(ctx context.Context, user ProviderUser) (string, error) {
	var created ProviderUser
	if err := c.do(ctx, http.MethodPost, "/users", user, &created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func (c *httpClient) GetUser(ctx context.Context, providerUserID string) (*ProviderUser, error) {
	var user ProviderUser
	if err := c.do(ctx, http.MethodGet, "/users/"+providerUserID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *httpClient) AddCard(ctx context.Context, providerUserID string, card Card) (string, error) {
	var result struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/"+providerUserID+"/cards", card, &result); err != nil {
		return "", err
	}
	return result.ID, nil
}

func (c *httpClient) CreatePayment(ctx context.Context, providerUserID string, req PaymentRequest) (*ProviderPayment, error) {
	var payment ProviderPayment
	if err := c.do(ctx, http.MethodPost, "/users/"+providerUserID+"/payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *httpClient) GetPayment(ctx context.Context, providerPaymentID string) (*ProviderPayment, error) {
	var payment ProviderPayment
	if err := c.do(ctx, http.MethodGet, "/payments/"+providerPaymentID, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *httpClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("payment provider returned %d: %s", resp.StatusCode, slurp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
