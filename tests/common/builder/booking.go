package builder

import (
	"time"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingBuilder assembles valid domain bookings for tests; mutate the
// defaults through the With* methods to drive validation cases.
type BookingBuilder struct {
	listingID   uuid.UUID
	studentID   uuid.UUID
	amountCents int64
	currency    string
	duration    booking.Duration
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		listingID:   uuid.New(),
		studentID:   uuid.New(),
		amountCents: 150000,
		currency:    "NGN",
		duration:    booking.DurationSemester,
	}
}

func (b *BookingBuilder) WithListingID(id uuid.UUID) *BookingBuilder {
	b.listingID = id
	return b
}

func (b *BookingBuilder) WithStudentID(id uuid.UUID) *BookingBuilder {
	b.studentID = id
	return b
}

func (b *BookingBuilder) WithAmountCents(v int64) *BookingBuilder {
	b.amountCents = v
	return b
}

func (b *BookingBuilder) WithCurrency(c string) *BookingBuilder {
	b.currency = c
	return b
}

func (b *BookingBuilder) WithDuration(d booking.Duration) *BookingBuilder {
	b.duration = d
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	return booking.New(b.listingID, b.studentID, b.amountCents, b.currency, b.duration)
}

// ReconstructWithStatus rebuilds a persisted-looking booking in the
// given lifecycle state.
func (b *BookingBuilder) ReconstructWithStatus(reference string, status booking.Status) *booking.Booking {
	now := time.Now()
	return booking.Reconstruct(
		reference,
		b.listingID,
		b.studentID,
		b.amountCents,
		b.currency,
		status,
		b.duration,
		nil,
		nil,
		now,
		now,
	)
}
