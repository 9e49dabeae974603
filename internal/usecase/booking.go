package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/booking"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/user"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/events"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/gateway"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/clock"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/errs"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/queries"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrListingNotFound         = errs.New("listing not found")
	ErrListingNotApproved      = errs.New("listing not approved for booking")
	ErrNoCapacity              = errs.New("no rooms available")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrGatewayUnavailable      = errs.New("payment gateway unavailable")
	ErrGatewayIndeterminate    = errs.New("payment status indeterminate, retry verify")
	ErrPaymentFailed           = errs.New("payment failed")
	ErrCapacityExhausted       = errs.New("no capacity left at settlement")
	ErrForbidden               = errs.New("not allowed to act on this booking")
	ErrInvalidState            = errs.New("booking state does not allow this operation")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingParams struct {
	StudentID uuid.UUID
	ListingID uuid.UUID
	Duration  booking.Duration
}

type CreateBookingResult struct {
	Booking       *queries.BookingView
	Authorization *gateway.AuthorizationHandle
}

// BookingUseCase orchestrates the reservation → authorization →
// verification → settlement flow. Verify is the single idempotent
// entry point shared by client polls and webhooks.
type BookingUseCase interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error)
	// VerifyBooking returns the current booking view. For definite
	// payment failure and capacity denial the view is returned together
	// with ErrPaymentFailed / ErrCapacityExhausted so callers can tell
	// the outcomes apart; an already-terminal booking returns plain
	// success.
	VerifyBooking(ctx context.Context, reference string) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, reference string, requesterID uuid.UUID, role user.Role) (*queries.BookingView, error)
	GetBooking(ctx context.Context, actor queries.Actor, reference string) (*queries.BookingView, error)
	ListBookings(ctx context.Context, actor queries.Actor) ([]*queries.BookingListItem, error)
}

const defaultListLimit = 100

type bookingUseCaseImpl struct {
	uow            shared.UnitOfWork
	gateway        gateway.Client
	publisher      events.Publisher
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	logger         *slog.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	gatewayClient gateway.Client,
	publisher events.Publisher,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
	logger *slog.Logger,
) BookingUseCase {
	return &bookingUseCaseImpl{
		uow:            uow,
		gateway:        gatewayClient,
		publisher:      publisher,
		bookingQueries: bookingQueries,
		clock:          clk,
		logger:         logger,
	}
}

// CreateBooking snapshots the listing price, persists the ledger entry
// and obtains the gateway authorization in one transaction: a failed
// authorize leaves no row behind. The capacity check here is advisory
// fail-fast only; the conditional decrement at verify time is the
// authority.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error) {
	l, err := u.uow.Reads().ListingByID(ctx, params.ListingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !l.Status().Bookable() {
		return nil, ErrListingNotApproved
	}
	if !l.HasCapacity() {
		return nil, ErrNoCapacity
	}

	b, err := booking.New(l.ID(), params.StudentID, l.PriceCents(), l.Currency(), params.Duration)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var handle *gateway.AuthorizationHandle
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}

		// Authorize runs inside the transaction so a gateway failure
		// rolls the ledger row back. This holds a connection for up to
		// the gateway timeout, and a serialization retry of this closure
		// re-issues the call; both rely on initialization being keyed on
		// our reference, so a repeat is answered with the existing
		// authorization rather than a second charge attempt.
		authorized, err := u.gateway.Authorize(ctx, gateway.AuthorizeRequest{
			AmountCents: b.AmountCents(),
			Currency:    b.Currency(),
			Reference:   b.Reference(),
			Metadata: map[string]any{
				"listing_id": b.ListingID().String(),
				"student_id": b.StudentID().String(),
				"duration":   b.Duration().String(),
			},
		})
		if err != nil {
			// Rolls back the ledger row: creation is all-or-nothing.
			return errs.Mark(err, ErrGatewayUnavailable)
		}

		meta, err := json.Marshal(authorized)
		if err != nil {
			return err
		}
		if err := tx.Bookings().SetAuthorization(ctx, b.Reference(), meta); err != nil {
			return err
		}

		handle = authorized
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrGatewayUnavailable) {
			return nil, err
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.bookingQueries.GetByReferenceSystem(ctx, b.Reference())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	u.logger.Info("booking created",
		"reference", b.Reference(),
		"listing_id", b.ListingID().String(),
		"amount_cents", b.AmountCents())

	return &CreateBookingResult{Booking: view, Authorization: handle}, nil
}

// VerifyBooking is safe to call any number of times, concurrently or
// sequentially. The ledger row claim and the conditional inventory
// decrement commit together; a crash or timeout anywhere leaves the
// entry re-verifiable.
func (u *bookingUseCaseImpl) VerifyBooking(ctx context.Context, reference string) (*queries.BookingView, error) {
	b, err := u.uow.Reads().BookingByReference(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Idempotency fast path: terminal bookings are settled truth, no
	// gateway call, no inventory mutation.
	if !b.Status().Settleable() {
		return u.bookingQueries.GetByReferenceSystem(ctx, reference)
	}

	status, err := u.gateway.CheckStatus(ctx, reference)
	if err != nil {
		if gateway.IsIndeterminate(err) {
			// State untouched: a later verify resolves it.
			return nil, errs.Mark(err, ErrGatewayIndeterminate)
		}
		return nil, errs.Mark(err, ErrGatewayUnavailable)
	}

	if !status.Paid {
		return u.settleFailure(ctx, reference, status)
	}

	return u.settleSuccess(ctx, b, status)
}

func (u *bookingUseCaseImpl) settleFailure(ctx context.Context, reference string, status *gateway.StatusResult) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Guarded transition: a concurrent verify that already settled
		// the booking wins and this mark is a no-op.
		_, err := tx.Bookings().MarkFailed(ctx, reference, status.Raw)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.bookingQueries.GetByReferenceSystem(ctx, reference)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if view.Status != booking.StatusFailed.String() {
		// Lost the race against a successful settlement.
		return view, nil
	}

	return view, ErrPaymentFailed
}

func (u *bookingUseCaseImpl) settleSuccess(ctx context.Context, b *booking.Booking, status *gateway.StatusResult) (*queries.BookingView, error) {
	var (
		settled        bool
		capacityDenied bool
	)

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, err := tx.Bookings().ClaimForSettlement(ctx, b.Reference(), status.GatewayReference, status.Raw)
		if err != nil {
			return err
		}
		if !claimed {
			// A concurrent verify reached a terminal state first; the
			// read after commit reports the truth.
			return nil
		}

		if _, err := tx.Listings().DecrementIfAvailable(ctx, b.ListingID()); err != nil {
			if infra.IsKind(err, infra.KindCapacityDenied) {
				// Money captured, inventory denied. The failed mark must
				// commit so the inconsistency is durable and visible.
				if _, err := tx.Bookings().MarkFailed(ctx, b.Reference(), status.Raw); err != nil {
					return err
				}
				capacityDenied = true
				return nil
			}
			return err
		}

		if err := tx.Bookings().MarkSettled(ctx, b.Reference()); err != nil {
			return err
		}
		settled = true
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.bookingQueries.GetByReferenceSystem(ctx, b.Reference())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if capacityDenied {
		u.logger.Error("inconsistent settlement: payment captured but inventory denied",
			"reference", b.Reference(),
			"gateway_reference", status.GatewayReference,
			"listing_id", b.ListingID().String(),
			"amount_cents", b.AmountCents(),
			"currency", b.Currency())
		return view, ErrCapacityExhausted
	}

	if settled {
		u.logger.Info("booking settled",
			"reference", b.Reference(),
			"gateway_reference", status.GatewayReference)
		u.publisher.PublishBookingSettled(ctx, events.BookingSettledEvent{
			Reference:   b.Reference(),
			ListingID:   b.ListingID(),
			StudentID:   b.StudentID(),
			AmountCents: b.AmountCents(),
			Currency:    b.Currency(),
			SettledAt:   u.clock.Now(),
		})
	}

	return view, nil
}

// CancelBooking re-reads the booking under a row lock so a concurrent
// settlement wins over the cancel instead of being overwritten.
func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, reference string, requesterID uuid.UUID, role user.Role) (*queries.BookingView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByReferenceForUpdate(ctx, reference)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		l, err := tx.Listings().FindByID(ctx, b.ListingID())
		if err != nil {
			return err
		}

		isListingOwner := role == user.RoleOwner && l.OwnerID() == requesterID
		if !b.CancelableBy(requesterID, isListingOwner, role.IsAdmin()) {
			return ErrForbidden
		}

		if err := b.Cancel(); err != nil {
			return errs.Mark(err, ErrInvalidState)
		}

		return tx.Bookings().MarkCancelled(ctx, reference)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrForbidden), errors.Is(err, ErrInvalidState):
			return nil, err
		default:
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	u.logger.Info("booking cancelled", "reference", reference, "requester_id", requesterID.String())

	return u.bookingQueries.GetByReferenceSystem(ctx, reference)
}

func (u *bookingUseCaseImpl) GetBooking(ctx context.Context, actor queries.Actor, reference string) (*queries.BookingView, error) {
	view, err := u.bookingQueries.GetByReference(ctx, actor, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *bookingUseCaseImpl) ListBookings(ctx context.Context, actor queries.Actor) ([]*queries.BookingListItem, error) {
	items, err := u.bookingQueries.List(ctx, actor, defaultListLimit)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return items, nil
}
