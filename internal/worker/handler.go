package worker

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/Bozotek/pickaguide-api/internal/events"
	"github.com/Bozotek/pickaguide-api/internal/mailer"
)

// Worker consumes account lifecycle events and turns them into emails.
// Delivery failures are logged, never propagated back to the API side.
type Worker struct {
	natsConn *nats.Conn
	mailer   *mailer.Mailer
	logger   *zerolog.Logger
}

func (w *Worker) handleUserRegistered(msg *nats.Msg) {
	var event events.UserRegisteredEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		w.logger.Error().Err(err).Msg("error unmarshalling user.registered event")
		return
	}

	w.logger.Info().
		Str("user_id", event.UserID.String()).
		Str("email", event.Email).
		Msg("event received: user registered")

	subject := "Welcome to Pickaguide, please confirm your email"
	body := fmt.Sprintf(
		`<p>Hi %s %s,</p>
<p>Welcome to Pickaguide! Please confirm your email address by clicking the link below:</p>
<p><a href="%s">Confirm my email</a></p>`,
		event.FirstName, event.LastName, event.ConfirmURL,
	)

	w.deliver(event.Email, subject, body)
}

func (w *Worker) handlePasswordReset(msg *nats.Msg) {
	var event events.PasswordResetEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		w.logger.Error().Err(err).Msg("error unmarshalling user.password_reset event")
		return
	}

	w.logger.Info().
		Str("user_id", event.UserID.String()).
		Str("email", event.Email).
		Msg("event received: password reset requested")

	subject := "Pickaguide password reset"
	body := fmt.Sprintf(
		`<p>Hi %s %s,</p>
<p>A password reset was requested for your account. The link below is valid for 24 hours:</p>
<p><a href="%s">Reset my password</a></p>
<p>If you did not request this, you can ignore this email.</p>`,
		event.FirstName, event.LastName, event.ResetURL,
	)

	w.deliver(event.Email, subject, body)
}

func (w *Worker) deliver(to, subject, body string) {
	if w.mailer == nil {
		w.logger.Info().Str("to", to).Str("subject", subject).Msg("mock mode: email not sent")
		return
	}

	if err := w.mailer.SendHTML([]string{to}, subject, body); err != nil {
		w.logger.Error().Err(err).Str("to", to).Msg("failed to send email")
		return
	}

	w.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
}

// Start connects to NATS and subscribes to the account lifecycle subjects.
func Start(natsURL string, logger *zerolog.Logger) error {
	m := mailer.NewMailer(logger)
	if m == nil {
		logger.Info().Msg("SMTP credentials not found, worker will run in MOCK mode")
	}

	nc, err := nats.Connect(natsURL)
	if err != nil {
		return err
	}

	w := &Worker{
		natsConn: nc,
		mailer:   m,
		logger:   logger,
	}

	if _, err := nc.Subscribe(events.SubjectUserRegistered, w.handleUserRegistered); err != nil {
		return err
	}

	if _, err := nc.Subscribe(events.SubjectPasswordReset, w.handlePasswordReset); err != nil {
		return err
	}

	return nil
}
