package readstore

import (
	"context"
	"errors"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/db"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(dbtx db.DBTX) *ListingReadStore {
	return &ListingReadStore{db: dbtx}
}

func (r *ListingReadStore) GetByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	const query = `
		SELECT id, owner_id, name, price_per_period, currency, status, rooms_total, rooms_available
		FROM listings
		WHERE id = $1`

	view := &queries.ListingView{}
	var price decimal.Decimal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.OwnerID, &view.Name, &price, &view.Currency,
		&view.Status, &view.RoomsTotal, &view.RoomsAvailable,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing view", err)
	}

	view.PricePerPeriod = price.String()
	return view, nil
}

func (r *ListingReadStore) List(ctx context.Context, limit int32) ([]*queries.ListingView, error) {
	const query = `
		SELECT id, owner_id, name, price_per_period, currency, status, rooms_total, rooms_available
		FROM listings
		ORDER BY name, id
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list listing views", err)
	}
	defer rows.Close()

	var views []*queries.ListingView
	for rows.Next() {
		view := &queries.ListingView{}
		var price decimal.Decimal
		if err := rows.Scan(
			&view.ID, &view.OwnerID, &view.Name, &price, &view.Currency,
			&view.Status, &view.RoomsTotal, &view.RoomsAvailable,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan listing view", err)
		}
		view.PricePerPeriod = price.String()
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list listing views", err)
	}

	return views, nil
}
