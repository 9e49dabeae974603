package shared

import (
	"context"
	"encoding/json"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/booking"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/listing"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic.
	// The ledger transition and the inventory update inside fn are
	// durably visible together or not at all.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: direct access to command reads outside a transaction
	Reads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Listings() ListingRepository
}

type CommandReads interface {
	BookingByReference(ctx context.Context, reference string) (*booking.Booking, error)
	ListingByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// SetAuthorization stores the gateway authorization handle on a
	// freshly created ledger row.
	SetAuthorization(ctx context.Context, reference string, metadata json.RawMessage) error
	// FindByReferenceForUpdate locks the ledger row for the duration of
	// the surrounding transaction.
	FindByReferenceForUpdate(ctx context.Context, reference string) (*booking.Booking, error)
	// ClaimForSettlement moves pending|processing to processing and
	// records the gateway outcome, holding the row lock until commit.
	// Returns false when a concurrent caller already reached a terminal
	// state.
	ClaimForSettlement(ctx context.Context, reference, gatewayReference string, metadata json.RawMessage) (bool, error)
	MarkSettled(ctx context.Context, reference string) error
	// MarkFailed transitions pending|processing to failed. Returns false
	// when the booking was already terminal.
	MarkFailed(ctx context.Context, reference string, metadata json.RawMessage) (bool, error)
	MarkCancelled(ctx context.Context, reference string) error
}

type ListingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	// DecrementIfAvailable is the atomic conditional decrement: a single
	// statement that consumes one room only while capacity remains and
	// the listing is still approved. Returns the new available count or
	// KindCapacityDenied.
	DecrementIfAvailable(ctx context.Context, id uuid.UUID) (int32, error)
	// Increment is the release counterpart with the same atomicity;
	// it never raises availability above total capacity.
	Increment(ctx context.Context, id uuid.UUID) (int32, error)
}
