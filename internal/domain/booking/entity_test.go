//go:build unit

package booking_test

import (
	"strings"
	"testing"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/booking"
	"github.com/codesmoothcreations-source/hostelHub-sub001/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.True(t, strings.HasPrefix(actual.Reference(), "hh_"))
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, int64(150000), actual.AmountCents())
		assert.Equal(t, "NGN", actual.Currency())
		assert.Equal(t, booking.DurationSemester, actual.Duration())
		assert.Nil(t, actual.GatewayReference())
		assert.False(t, actual.IsSettled())
	})

	t.Run("each booking gets its own reference", func(t *testing.T) {
		first, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		second, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		assert.NotEqual(t, first.Reference(), second.Reference())
	})

	t.Run("amount validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "negative amount",
				mutate: func(b *builder.BookingBuilder) { b.WithAmountCents(-1) },
				errIs:  booking.ErrNegativeAmount,
			},
			{
				name:   "zero amount",
				mutate: func(b *builder.BookingBuilder) { b.WithAmountCents(0) },
			},
			{
				name:   "large amount",
				mutate: func(b *builder.BookingBuilder) { b.WithAmountCents(1 << 40) },
			},
		})
	})

	t.Run("currency validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty currency",
				mutate: func(b *builder.BookingBuilder) { b.WithCurrency("") },
				errIs:  booking.ErrInvalidCurrency,
			},
			{
				name:   "too short",
				mutate: func(b *builder.BookingBuilder) { b.WithCurrency("NG") },
				errIs:  booking.ErrInvalidCurrency,
			},
			{
				name:   "too long",
				mutate: func(b *builder.BookingBuilder) { b.WithCurrency("NGNX") },
				errIs:  booking.ErrInvalidCurrency,
			},
			{
				name:   "valid code",
				mutate: func(b *builder.BookingBuilder) { b.WithCurrency("USD") },
			},
		})
	})

	t.Run("duration validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "semester",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(booking.DurationSemester) },
			},
			{
				name:   "academic year",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(booking.DurationAcademicYear) },
			},
			{
				name:   "short stay",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(booking.DurationShortStay) },
			},
			{
				name:   "unknown duration",
				mutate: func(b *builder.BookingBuilder) { b.WithDuration(booking.Duration("weekend")) },
				errIs:  booking.ErrInvalidDuration,
			},
		})
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder()
			tc.mutate(b)
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestBooking_Cancel(t *testing.T) {
	t.Run("pending booking cancels", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Cancel())
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("cancel is not repeatable", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Cancel())
		assert.ErrorIs(t, b.Cancel(), booking.ErrNotCancellable)
	})

	t.Run("settled booking cannot be cancelled", func(t *testing.T) {
		b := builder.NewBookingBuilder().ReconstructWithStatus("hh_settled", booking.StatusSuccess)
		assert.ErrorIs(t, b.Cancel(), booking.ErrNotCancellable)
	})

	t.Run("failed booking cannot be cancelled", func(t *testing.T) {
		b := builder.NewBookingBuilder().ReconstructWithStatus("hh_failed", booking.StatusFailed)
		assert.ErrorIs(t, b.Cancel(), booking.ErrNotCancellable)
	})
}

func TestBooking_CancelableBy(t *testing.T) {
	studentID := uuid.New()
	b := builder.NewBookingBuilder().WithStudentID(studentID).ReconstructWithStatus("hh_ref", booking.StatusPending)

	tests := []struct {
		name           string
		requesterID    uuid.UUID
		isListingOwner bool
		isAdmin        bool
		want           bool
	}{
		{name: "booking student", requesterID: studentID, want: true},
		{name: "listing owner", requesterID: uuid.New(), isListingOwner: true, want: true},
		{name: "admin", requesterID: uuid.New(), isAdmin: true, want: true},
		{name: "unrelated user", requesterID: uuid.New(), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.CancelableBy(tt.requesterID, tt.isListingOwner, tt.isAdmin))
		})
	}
}
