package readstore

import (
	"context"
	"errors"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/user"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/db"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

const bookingViewColumns = `
	b.reference, b.listing_id, l.name, b.student_id, b.amount_cents, b.currency,
	b.status, b.duration, b.gateway_reference, b.created_at, b.updated_at`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) GetByReference(ctx context.Context, actor queries.Actor, reference string) (*queries.BookingView, error) {
	query := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE b.reference = $1`

	args := []any{reference}
	switch actor.Role {
	case user.RoleAdmin:
		// no visibility predicate
	case user.RoleOwner:
		query += ` AND (b.student_id = $2 OR l.owner_id = $2)`
		args = append(args, actor.ID)
	default:
		query += ` AND b.student_id = $2`
		args = append(args, actor.ID)
	}

	return r.scanView(r.db.QueryRow(ctx, query, args...))
}

func (r *BookingReadStore) GetByReferenceSystem(ctx context.Context, reference string) (*queries.BookingView, error) {
	query := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE b.reference = $1`

	return r.scanView(r.db.QueryRow(ctx, query, reference))
}

func (r *BookingReadStore) List(ctx context.Context, actor queries.Actor, limit int32) ([]*queries.BookingListItem, error) {
	query := `
		SELECT b.reference, b.listing_id, l.name, b.amount_cents, b.currency,
		       b.status, b.duration, b.created_at
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id`

	args := []any{}
	switch actor.Role {
	case user.RoleAdmin:
		query += ` ORDER BY b.created_at DESC, b.reference LIMIT $1`
		args = append(args, limit)
	case user.RoleOwner:
		query += ` WHERE b.student_id = $1 OR l.owner_id = $1
			ORDER BY b.created_at DESC, b.reference LIMIT $2`
		args = append(args, actor.ID, limit)
	default:
		query += ` WHERE b.student_id = $1
			ORDER BY b.created_at DESC, b.reference LIMIT $2`
		args = append(args, actor.ID, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		item := &queries.BookingListItem{}
		if err := rows.Scan(
			&item.Reference, &item.ListingID, &item.ListingName, &item.AmountCents,
			&item.Currency, &item.Status, &item.Duration, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err)
	}

	return result, nil
}

func (r *BookingReadStore) scanView(row pgx.Row) (*queries.BookingView, error) {
	view := &queries.BookingView{}
	err := row.Scan(
		&view.Reference, &view.ListingID, &view.ListingName, &view.StudentID,
		&view.AmountCents, &view.Currency, &view.Status, &view.Duration,
		&view.GatewayReference, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}

	return view, nil
}
