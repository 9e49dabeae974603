package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/gateway"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/errs"
)

var (
	ErrInvalidSignature = errs.New("invalid webhook signature")
	ErrMalformedPayload = errs.New("malformed webhook payload")
)

// Gateway event type that settles a charge. Everything else is
// acknowledged and ignored.
const eventChargeSuccess = "charge.success"

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// WebhookUseCase feeds asynchronous gateway notifications into the same
// idempotent verify routine the client poll uses, so duplicate
// deliveries and webhook/poll races converge on one settlement.
type WebhookUseCase interface {
	// Ingest returns an error only for an invalid signature or an
	// unparseable body. Verification failures are logged, not surfaced:
	// the sender gets its acknowledgement either way, preventing
	// redelivery storms.
	Ingest(ctx context.Context, payload []byte, signatureHeader string) error
}

type webhookUseCaseImpl struct {
	gateway  gateway.Client
	bookings BookingUseCase
	logger   *slog.Logger
}

func NewWebhookUseCase(gatewayClient gateway.Client, bookings BookingUseCase, logger *slog.Logger) WebhookUseCase {
	return &webhookUseCaseImpl{
		gateway:  gatewayClient,
		bookings: bookings,
		logger:   logger,
	}
}

func (u *webhookUseCaseImpl) Ingest(ctx context.Context, payload []byte, signatureHeader string) error {
	if !u.gateway.VerifyWebhookSignature(payload, signatureHeader) {
		return ErrInvalidSignature
	}

	var evt webhookEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return errs.Mark(err, ErrMalformedPayload)
	}

	if evt.Event != eventChargeSuccess {
		u.logger.Debug("ignoring gateway event", "event", evt.Event)
		return nil
	}
	if evt.Data.Reference == "" {
		return ErrMalformedPayload
	}

	view, err := u.bookings.VerifyBooking(ctx, evt.Data.Reference)
	if err != nil {
		// The webhook sender is acknowledged regardless; operators see
		// the failure here and a later verify (retry or poll) resolves it.
		u.logger.Error("webhook-triggered verify failed",
			"reference", evt.Data.Reference,
			"error", err.Error())
		return nil
	}

	u.logger.Info("webhook processed",
		"reference", view.Reference,
		"status", view.Status)
	return nil
}
