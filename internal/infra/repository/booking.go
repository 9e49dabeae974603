package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/booking"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (reference, listing_id, student_id, amount_cents, currency, status, duration)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		b.Reference(),
		b.ListingID(),
		b.StudentID(),
		b.AmountCents(),
		b.Currency(),
		b.Status().String(),
		b.Duration().String(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("booking reference already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

func (r *BookingRepository) SetAuthorization(ctx context.Context, reference string, metadata json.RawMessage) error {
	const query = `
		UPDATE bookings
		SET gateway_metadata = $2, updated_at = now()
		WHERE reference = $1`

	tag, err := r.db.Exec(ctx, query, reference, metadata)
	if err != nil {
		return infra.WrapRepoErr("failed to store authorization", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *BookingRepository) FindByReference(ctx context.Context, reference string) (*booking.Booking, error) {
	return r.findByReference(ctx, reference, false)
}

func (r *BookingRepository) FindByReferenceForUpdate(ctx context.Context, reference string) (*booking.Booking, error) {
	return r.findByReference(ctx, reference, true)
}

func (r *BookingRepository) findByReference(ctx context.Context, reference string, forUpdate bool) (*booking.Booking, error) {
	query := `
		SELECT reference, listing_id, student_id, amount_cents, currency, status, duration,
		       gateway_reference, gateway_metadata, created_at, updated_at
		FROM bookings
		WHERE reference = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	row := r.db.QueryRow(ctx, query, reference)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by reference", err)
	}

	return b, nil
}

// ClaimForSettlement is the serialization point for concurrent verifies
// of the same reference: the row lock taken here is held until the
// surrounding transaction commits, so a racing caller blocks and then
// observes the terminal state instead of decrementing twice.
func (r *BookingRepository) ClaimForSettlement(ctx context.Context, reference, gatewayReference string, metadata json.RawMessage) (bool, error) {
	const query = `
		UPDATE bookings
		SET status = 'processing', gateway_reference = $2, gateway_metadata = $3, updated_at = now()
		WHERE reference = $1 AND status IN ('pending', 'processing')`

	tag, err := r.db.Exec(ctx, query, reference, gatewayReference, metadata)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim booking for settlement", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) MarkSettled(ctx context.Context, reference string) error {
	const query = `
		UPDATE bookings
		SET status = 'success', updated_at = now()
		WHERE reference = $1 AND status = 'processing'`

	tag, err := r.db.Exec(ctx, query, reference)
	if err != nil {
		return infra.WrapRepoErr("failed to mark booking settled", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not in processing state", nil, infra.KindNotFound)
	}

	return nil
}

func (r *BookingRepository) MarkFailed(ctx context.Context, reference string, metadata json.RawMessage) (bool, error) {
	const query = `
		UPDATE bookings
		SET status = 'failed', gateway_metadata = COALESCE($2, gateway_metadata), updated_at = now()
		WHERE reference = $1 AND status IN ('pending', 'processing')`

	tag, err := r.db.Exec(ctx, query, reference, metadata)
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark booking failed", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) MarkCancelled(ctx context.Context, reference string) error {
	const query = `
		UPDATE bookings
		SET status = 'cancelled', updated_at = now()
		WHERE reference = $1 AND status IN ('pending', 'processing')`

	tag, err := r.db.Exec(ctx, query, reference)
	if err != nil {
		return infra.WrapRepoErr("failed to mark booking cancelled", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not cancellable", nil, infra.KindNotFound)
	}

	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		reference        string
		listingID        uuid.UUID
		studentID        uuid.UUID
		amountCents      int64
		currency         string
		statusStr        string
		durationStr      string
		gatewayReference *string
		gatewayMetadata  []byte
		createdAt        time.Time
		updatedAt        time.Time
	)

	if err := row.Scan(
		&reference, &listingID, &studentID, &amountCents, &currency,
		&statusStr, &durationStr, &gatewayReference, &gatewayMetadata,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	status, err := booking.NewStatus(statusStr)
	if err != nil {
		return nil, err
	}
	duration, err := booking.NewDuration(durationStr)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(
		reference, listingID, studentID, amountCents, currency,
		status, duration, gatewayReference, gatewayMetadata,
		createdAt, updatedAt,
	), nil
}
