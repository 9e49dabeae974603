package request

import (
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ListingID uuid.UUID `json:"listingId" binding:"required"`
	Duration  string    `json:"duration" binding:"required,oneof=semester academic_year short_stay"`
}

func (r CreateBookingRequest) ToDomain() (booking.Duration, error) {
	return booking.NewDuration(r.Duration)
}
