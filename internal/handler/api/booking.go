package api

import (
	"errors"
	"net/http"

	reqdto "github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/dto/request"
	resdto "github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/dto/response"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/middleware"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	duration, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid stay duration",
		})
		return
	}

	result, err := h.bookingUseCase.CreateBooking(c.Request.Context(), usecase.CreateBookingParams{
		StudentID: userID,
		ListingID: req.ListingID,
		Duration:  duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
		case errors.Is(err, usecase.ErrListingNotApproved):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Listing is not approved for booking",
			})
		case errors.Is(err, usecase.ErrNoCapacity):
			c.JSON(http.StatusConflict, gin.H{
				"error": "No rooms available",
			})
		case errors.Is(err, usecase.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unreachable, booking was not created",
			})
		case errors.Is(err, usecase.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateResult(result.Booking, result.Authorization))
}

// VerifyBooking resolves the payment outcome for a booking. Safe to
// call repeatedly: an already-settled booking returns its current state.
func (h *BookingHandler) VerifyBooking(c *gin.Context) {
	reference := c.Param("reference")

	view, err := h.bookingUseCase.VerifyBooking(c.Request.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, usecase.ErrGatewayIndeterminate):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Payment status not yet determined, retry shortly",
			})
		case errors.Is(err, usecase.ErrPaymentFailed):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":   "Payment was not successful",
				"booking": resdto.FromBookingView(view),
			})
		case errors.Is(err, usecase.ErrCapacityExhausted):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Payment succeeded but no rooms remained; flagged for reconciliation",
				"booking": resdto.FromBookingView(view),
			})
		case errors.Is(err, usecase.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment gateway unreachable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	reference := c.Param("reference")

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.bookingUseCase.CancelBooking(c.Request.Context(), reference, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to cancel this booking",
			})
		case errors.Is(err, usecase.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking cannot be cancelled in its current state",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	reference := c.Param("reference")

	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.bookingUseCase.GetBooking(c.Request.Context(), actor, reference)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.bookingUseCase.ListBookings(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.BookingListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromBookingListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

func actorFromContext(c *gin.Context) (queries.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return queries.Actor{}, false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return queries.Actor{}, false
	}
	return queries.Actor{ID: userID, Role: role}, true
}
