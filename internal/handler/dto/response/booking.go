package response

import (
	"time"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/gateway"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	Reference        string    `json:"reference"`
	ListingID        uuid.UUID `json:"listingId"`
	ListingName      string    `json:"listingName"`
	StudentID        uuid.UUID `json:"studentId"`
	AmountCents      int64     `json:"amountCents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	Duration         string    `json:"duration"`
	GatewayReference *string   `json:"gatewayReference,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type PaymentAuthorizationResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
}

type CreateBookingResponse struct {
	Booking BookingResponse               `json:"booking"`
	Payment *PaymentAuthorizationResponse `json:"payment,omitempty"`
}

type BookingListResponse struct {
	Reference   string    `json:"reference"`
	ListingID   uuid.UUID `json:"listingId"`
	ListingName string    `json:"listingName"`
	AmountCents int64     `json:"amountCents"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Duration    string    `json:"duration"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListingResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	PricePerPeriod string    `json:"pricePerPeriod"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	RoomsAvailable int32     `json:"roomsAvailable"`
}

// ListingInventoryResponse is the admin projection: it exposes the
// owner and total room count the public view hides.
type ListingInventoryResponse struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"ownerId"`
	Name           string    `json:"name"`
	PricePerPeriod string    `json:"pricePerPeriod"`
	Currency       string    `json:"currency"`
	Status         string    `json:"status"`
	RoomsTotal     int32     `json:"roomsTotal"`
	RoomsAvailable int32     `json:"roomsAvailable"`
}

func FromBookingView(view *queries.BookingView) BookingResponse {
	return BookingResponse{
		Reference:        view.Reference,
		ListingID:        view.ListingID,
		ListingName:      view.ListingName,
		StudentID:        view.StudentID,
		AmountCents:      view.AmountCents,
		Currency:         view.Currency,
		Status:           view.Status,
		Duration:         view.Duration,
		GatewayReference: view.GatewayReference,
		CreatedAt:        view.CreatedAt,
		UpdatedAt:        view.UpdatedAt,
	}
}

func FromCreateResult(view *queries.BookingView, handle *gateway.AuthorizationHandle) CreateBookingResponse {
	resp := CreateBookingResponse{Booking: FromBookingView(view)}
	if handle != nil {
		resp.Payment = &PaymentAuthorizationResponse{
			AuthorizationURL: handle.AuthorizationURL,
			AccessCode:       handle.AccessCode,
		}
	}
	return resp
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		Reference:   item.Reference,
		ListingID:   item.ListingID,
		ListingName: item.ListingName,
		AmountCents: item.AmountCents,
		Currency:    item.Currency,
		Status:      item.Status,
		Duration:    item.Duration,
		CreatedAt:   item.CreatedAt,
	}
}

func FromListingViewInventory(view *queries.ListingView) *ListingInventoryResponse {
	return &ListingInventoryResponse{
		ID:             view.ID,
		OwnerID:        view.OwnerID,
		Name:           view.Name,
		PricePerPeriod: view.PricePerPeriod,
		Currency:       view.Currency,
		Status:         view.Status,
		RoomsTotal:     view.RoomsTotal,
		RoomsAvailable: view.RoomsAvailable,
	}
}

func FromListingView(view *queries.ListingView) ListingResponse {
	return ListingResponse{
		ID:             view.ID,
		Name:           view.Name,
		PricePerPeriod: view.PricePerPeriod,
		Currency:       view.Currency,
		Status:         view.Status,
		RoomsAvailable: view.RoomsAvailable,
	}
}
