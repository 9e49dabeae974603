package repository

import (
	"context"
	"errors"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/listing"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ListingRepository struct {
	db db.DBTX
}

func NewListingRepository(dbtx db.DBTX) *ListingRepository {
	return &ListingRepository{db: dbtx}
}

func (r *ListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	const query = `
		SELECT id, owner_id, name, price_per_period, currency, status, rooms_total, rooms_available
		FROM listings
		WHERE id = $1`

	var (
		listingID      uuid.UUID
		ownerID        uuid.UUID
		name           string
		price          decimal.Decimal
		currency       string
		statusStr      string
		roomsTotal     int32
		roomsAvailable int32
	)

	err := r.db.QueryRow(ctx, query, id).Scan(
		&listingID, &ownerID, &name, &price, &currency, &statusStr, &roomsTotal, &roomsAvailable,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing by ID", err)
	}

	status, err := listing.NewStatus(statusStr)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt listing status", err)
	}

	return listing.New(listingID, ownerID, name, price, currency, status, roomsTotal, roomsAvailable)
}

// DecrementIfAvailable consumes one room in a single conditional
// UPDATE. Concurrent callers serialize on the row; the guard clauses
// are the only authority over capacity, so the count can never go
// negative regardless of how many bookings verify at once.
func (r *ListingRepository) DecrementIfAvailable(ctx context.Context, id uuid.UUID) (int32, error) {
	const query = `
		UPDATE listings
		SET rooms_available = rooms_available - 1, updated_at = now()
		WHERE id = $1 AND rooms_available > 0 AND status = 'approved'
		RETURNING rooms_available`

	var available int32
	err := r.db.QueryRow(ctx, query, id).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("no capacity or listing not approved", err, infra.KindCapacityDenied)
		}
		return 0, infra.WrapRepoErr("failed to decrement listing capacity", err)
	}

	return available, nil
}

func (r *ListingRepository) Increment(ctx context.Context, id uuid.UUID) (int32, error) {
	const query = `
		UPDATE listings
		SET rooms_available = rooms_available + 1, updated_at = now()
		WHERE id = $1 AND rooms_available < rooms_total
		RETURNING rooms_available`

	var available int32
	err := r.db.QueryRow(ctx, query, id).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("listing already at full capacity", err, infra.KindCapacityDenied)
		}
		return 0, infra.WrapRepoErr("failed to increment listing capacity", err)
	}

	return available, nil
}
