package booking

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrInvalidDuration  = errors.New("invalid stay duration")
	ErrAlreadyTerminal  = errors.New("booking is already in a terminal state")
	ErrNotCancellable   = errors.New("booking cannot be cancelled in its current state")
	ErrImmutableBooking = errors.New("settled booking is immutable")
)

// Duration is the stay-duration category a student books for.
type Duration string

const (
	DurationSemester     Duration = "semester"
	DurationAcademicYear Duration = "academic_year"
	DurationShortStay    Duration = "short_stay"
)

func NewDuration(s string) (Duration, error) {
	switch Duration(s) {
	case DurationSemester, DurationAcademicYear, DurationShortStay:
		return Duration(s), nil
	default:
		return "", ErrInvalidDuration
	}
}

func (d Duration) String() string {
	return string(d)
}

// Booking is one ledger entry: a reservation attempt and its payment
// lifecycle. The reference doubles as the idempotency key for the whole
// authorize/verify/webhook cycle; amount is snapshotted from the
// listing price at creation and never recomputed.
type Booking struct {
	reference        string
	listingID        uuid.UUID
	studentID        uuid.UUID
	amountCents      int64
	currency         string
	status           Status
	duration         Duration
	gatewayReference *string
	gatewayMetadata  json.RawMessage
	createdAt        time.Time
	updatedAt        time.Time
}

func New(
	listingID, studentID uuid.UUID,
	amountCents int64,
	currency string,
	duration Duration,
) (*Booking, error) {
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}
	if _, err := NewDuration(duration.String()); err != nil {
		return nil, err
	}

	return &Booking{
		reference:   NewReference(),
		listingID:   listingID,
		studentID:   studentID,
		amountCents: amountCents,
		currency:    currency,
		status:      StatusPending,
		duration:    duration,
	}, nil
}

func Reconstruct(
	reference string,
	listingID, studentID uuid.UUID,
	amountCents int64,
	currency string,
	status Status,
	duration Duration,
	gatewayReference *string,
	gatewayMetadata json.RawMessage,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		reference:        reference,
		listingID:        listingID,
		studentID:        studentID,
		amountCents:      amountCents,
		currency:         currency,
		status:           status,
		duration:         duration,
		gatewayReference: gatewayReference,
		gatewayMetadata:  gatewayMetadata,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// CancelableBy applies the cancel authorization rule: the booking's
// student, the owner of the booked listing, or an admin.
func (b *Booking) CancelableBy(requesterID uuid.UUID, isListingOwner, isAdmin bool) bool {
	return b.studentID == requesterID || isListingOwner || isAdmin
}

func (b *Booking) Cancel() error {
	if !b.status.Cancellable() {
		return ErrNotCancellable
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) IsSettled() bool {
	return b.status == StatusSuccess
}

func (b *Booking) Reference() string                { return b.reference }
func (b *Booking) ListingID() uuid.UUID             { return b.listingID }
func (b *Booking) StudentID() uuid.UUID             { return b.studentID }
func (b *Booking) AmountCents() int64               { return b.amountCents }
func (b *Booking) Currency() string                 { return b.currency }
func (b *Booking) Status() Status                   { return b.status }
func (b *Booking) Duration() Duration               { return b.duration }
func (b *Booking) GatewayReference() *string        { return b.gatewayReference }
func (b *Booking) GatewayMetadata() json.RawMessage { return b.gatewayMetadata }
func (b *Booking) CreatedAt() time.Time             { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time             { return b.updatedAt }
