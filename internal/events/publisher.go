package events

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/Bozotek/pickaguide-api/internal/model"
)

// Publisher hands lifecycle events to the notification worker. Publishing
// is the only part of notification the API waits on: a publish error is a
// transport failure, delivery problems stay on the worker side.
type Publisher interface {
	PublishUserRegistered(user *model.User, confirmURL string) error
	PublishPasswordReset(user *model.User, resetURL string) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

const (
	SubjectUserRegistered = "user.registered"
	SubjectPasswordReset  = "user.password_reset"
)

type UserRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	ConfirmURL string    `json:"confirm_url"`
}

type PasswordResetEvent struct {
	EventType string    `json:"event_type"`
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	ResetURL  string    `json:"reset_url"`
}

func (p *NatsPublisher) PublishUserRegistered(user *model.User, confirmURL string) error {
	event := UserRegisteredEvent{
		EventType:  SubjectUserRegistered,
		UserID:     user.ID,
		Email:      user.Account.Email,
		FirstName:  user.Profile.FirstName,
		LastName:   user.Profile.LastName,
		ConfirmURL: confirmURL,
	}

	return p.publish(SubjectUserRegistered, event)
}

func (p *NatsPublisher) PublishPasswordReset(user *model.User, resetURL string) error {
	event := PasswordResetEvent{
		EventType: SubjectPasswordReset,
		UserID:    user.ID,
		Email:     user.Account.Email,
		FirstName: user.Profile.FirstName,
		LastName:  user.Profile.LastName,
		ResetURL:  resetURL,
	}

	return p.publish(SubjectPasswordReset, event)
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	return nil
}
