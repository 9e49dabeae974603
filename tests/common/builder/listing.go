package builder

import (
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/listing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ListingBuilder struct {
	id             uuid.UUID
	ownerID        uuid.UUID
	name           string
	pricePerPeriod decimal.Decimal
	currency       string
	status         listing.Status
	roomsTotal     int32
	roomsAvailable int32
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		id:             uuid.New(),
		ownerID:        uuid.New(),
		name:           "Unilag Hall A",
		pricePerPeriod: decimal.NewFromInt(1500),
		currency:       "NGN",
		status:         listing.StatusApproved,
		roomsTotal:     20,
		roomsAvailable: 20,
	}
}

func (b *ListingBuilder) WithID(id uuid.UUID) *ListingBuilder {
	b.id = id
	return b
}

func (b *ListingBuilder) WithOwnerID(id uuid.UUID) *ListingBuilder {
	b.ownerID = id
	return b
}

func (b *ListingBuilder) WithPrice(price decimal.Decimal) *ListingBuilder {
	b.pricePerPeriod = price
	return b
}

func (b *ListingBuilder) WithStatus(status listing.Status) *ListingBuilder {
	b.status = status
	return b
}

func (b *ListingBuilder) WithRooms(total, available int32) *ListingBuilder {
	b.roomsTotal = total
	b.roomsAvailable = available
	return b
}

func (b *ListingBuilder) BuildDomain() (*listing.Listing, error) {
	return listing.New(
		b.id,
		b.ownerID,
		b.name,
		b.pricePerPeriod,
		b.currency,
		b.status,
		b.roomsTotal,
		b.roomsAvailable,
	)
}
