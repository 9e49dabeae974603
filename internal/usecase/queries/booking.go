package queries

import (
	"context"
	"time"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller a projection is filtered for.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

// Read models (DTO for read side)
type BookingView struct {
	Reference        string    `json:"reference"`
	ListingID        uuid.UUID `json:"listing_id"`
	ListingName      string    `json:"listing_name"`
	StudentID        uuid.UUID `json:"student_id"`
	AmountCents      int64     `json:"amount_cents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	Duration         string    `json:"duration"`
	GatewayReference *string   `json:"gateway_reference,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type BookingListItem struct {
	Reference   string    `json:"reference"`
	ListingID   uuid.UUID `json:"listing_id"`
	ListingName string    `json:"listing_name"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Duration    string    `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListingView struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	Name           string    `json:"name"`
	PricePerPeriod string    `json:"price_per_period"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	RoomsTotal     int32     `json:"rooms_total"`
	RoomsAvailable int32     `json:"rooms_available"`
}

// BookingQueries filters by role: students see their own bookings,
// owners additionally see bookings against their listings, admins see
// everything.
type BookingQueries interface {
	GetByReference(ctx context.Context, actor Actor, reference string) (*BookingView, error)
	// GetByReferenceSystem bypasses role filtering for internal
	// read-after-write paths.
	GetByReferenceSystem(ctx context.Context, reference string) (*BookingView, error)
	List(ctx context.Context, actor Actor, limit int32) ([]*BookingListItem, error)
}

type ListingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	// List returns every listing regardless of status. Admin-only
	// inventory surface; callers gate it by role.
	List(ctx context.Context, limit int32) ([]*ListingView, error)
}
