package listing

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus   = errors.New("invalid listing status")
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingReview Status = "pending_review"
	StatusApproved      Status = "approved"
	StatusSuspended     Status = "suspended"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPendingReview, StatusApproved, StatusSuspended:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// Bookable is the creation-time precondition. It is advisory only: the
// conditional decrement at settlement is the sole authority over
// inventory.
func (s Status) Bookable() bool {
	return s == StatusApproved
}

// Listing owns the room counters. Total capacity is fixed at approval;
// rooms_available moves only through the store's atomic conditional
// update, never through application-level read-modify-write.
type Listing struct {
	id             uuid.UUID
	ownerID        uuid.UUID
	name           string
	pricePerPeriod decimal.Decimal
	currency       string
	status         Status
	roomsTotal     int32
	roomsAvailable int32
}

func New(
	id, ownerID uuid.UUID,
	name string,
	pricePerPeriod decimal.Decimal,
	currency string,
	status Status,
	roomsTotal, roomsAvailable int32,
) (*Listing, error) {
	if pricePerPeriod.IsNegative() {
		return nil, ErrNegativePrice
	}
	if roomsTotal <= 0 {
		return nil, ErrInvalidCapacity
	}
	if _, err := NewStatus(status.String()); err != nil {
		return nil, err
	}

	return &Listing{
		id:             id,
		ownerID:        ownerID,
		name:           name,
		pricePerPeriod: pricePerPeriod,
		currency:       currency,
		status:         status,
		roomsTotal:     roomsTotal,
		roomsAvailable: roomsAvailable,
	}, nil
}

func (l *Listing) HasCapacity() bool {
	return l.roomsAvailable > 0
}

// PriceCents converts the listing price to the smallest currency unit
// with fixed-point arithmetic. No floating point touches money.
func (l *Listing) PriceCents() int64 {
	return l.pricePerPeriod.Shift(2).IntPart()
}

func (l *Listing) ID() uuid.UUID                   { return l.id }
func (l *Listing) OwnerID() uuid.UUID              { return l.ownerID }
func (l *Listing) Name() string                    { return l.name }
func (l *Listing) PricePerPeriod() decimal.Decimal { return l.pricePerPeriod }
func (l *Listing) Currency() string                { return l.currency }
func (l *Listing) Status() Status                  { return l.status }
func (l *Listing) RoomsTotal() int32               { return l.roomsTotal }
func (l *Listing) RoomsAvailable() int32           { return l.roomsAvailable }
