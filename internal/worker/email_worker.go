package worker

// email_worker.go
// Processes email jobs from QueueEmail: order status notifications to
// customers, with an optional invoice PDF attachment. Delivery goes through
// the circuit breaker so a downed mail relay fails fast instead of stalling
// the pool.

import (
	"context"
	"encoding/json"

	"gemstore/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail     string `json:"to_email"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	InvoicePath string `json:"invoice_path,omitempty"`
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

// Process sends one notification email. A returned error signals the pool to
// retry (and eventually DLQ) the job.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	err := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.InvoicePath)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: notification sent")
	return nil
}
