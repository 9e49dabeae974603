// Package events publishes booking lifecycle events for the external
// notification subsystem. Delivery is best-effort and happens outside
// the settle transaction: losing an event never loses a settlement.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type BookingSettledEvent struct {
	Reference   string    `json:"reference"`
	ListingID   uuid.UUID `json:"listing_id"`
	StudentID   uuid.UUID `json:"student_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	SettledAt   time.Time `json:"settled_at"`
}

type Publisher interface {
	PublishBookingSettled(ctx context.Context, evt BookingSettledEvent)
}

type KafkaPublisher struct {
	writer       *kafka.Writer
	writeTimeout time.Duration
	logger       *slog.Logger
}

func NewKafkaPublisher(cfg config.EventsConfig, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.SettledTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &KafkaPublisher{
		writer:       writer,
		writeTimeout: cfg.WriteTimeout,
		logger:       logger,
	}
}

// PublishBookingSettled is fire-and-forget: failures are logged for
// operators but never propagated to the booking flow.
func (p *KafkaPublisher) PublishBookingSettled(ctx context.Context, evt BookingSettledEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("failed to encode settled event",
			"reference", evt.Reference,
			"error", err.Error())
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(evt.Reference),
		Value: payload,
	})
	if err != nil {
		p.logger.Error("failed to publish settled event",
			"reference", evt.Reference,
			"error", err.Error())
		return
	}

	p.logger.Info("published settled event", "reference", evt.Reference)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
