//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/booking"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/user"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/api"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra/gateway"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// stubBookingUseCase lets each test pin the behavior it needs through
// function fields.
type stubBookingUseCase struct {
	createFn func(ctx context.Context, params usecase.CreateBookingParams) (*usecase.CreateBookingResult, error)
	verifyFn func(ctx context.Context, reference string) (*queries.BookingView, error)
	cancelFn func(ctx context.Context, reference string, requesterID uuid.UUID, role user.Role) (*queries.BookingView, error)
	getFn    func(ctx context.Context, actor queries.Actor, reference string) (*queries.BookingView, error)
	listFn   func(ctx context.Context, actor queries.Actor) ([]*queries.BookingListItem, error)
}

func (s *stubBookingUseCase) CreateBooking(ctx context.Context, params usecase.CreateBookingParams) (*usecase.CreateBookingResult, error) {
	return s.createFn(ctx, params)
}

func (s *stubBookingUseCase) VerifyBooking(ctx context.Context, reference string) (*queries.BookingView, error) {
	return s.verifyFn(ctx, reference)
}

func (s *stubBookingUseCase) CancelBooking(ctx context.Context, reference string, requesterID uuid.UUID, role user.Role) (*queries.BookingView, error) {
	return s.cancelFn(ctx, reference, requesterID, role)
}

func (s *stubBookingUseCase) GetBooking(ctx context.Context, actor queries.Actor, reference string) (*queries.BookingView, error) {
	return s.getFn(ctx, actor, reference)
}

func (s *stubBookingUseCase) ListBookings(ctx context.Context, actor queries.Actor) ([]*queries.BookingListItem, error) {
	return s.listFn(ctx, actor)
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router  *gin.Engine
	stub    *stubBookingUseCase
	userID  uuid.UUID
	role    user.Role
	handler *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.stub = &stubBookingUseCase{}
	s.userID = uuid.New()
	s.role = user.RoleStudent
	s.handler = api.NewBookingHandler(s.stub)

	s.router = gin.New()
	authed := s.router.Group("/", func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
	})
	authed.POST("/bookings", s.handler.CreateBooking)
	authed.GET("/bookings", s.handler.ListBookings)
	authed.GET("/bookings/:reference", s.handler.GetBooking)
	authed.POST("/bookings/:reference/verify", s.handler.VerifyBooking)
	authed.POST("/bookings/:reference/cancel", s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) perform(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sampleView(reference, status string) *queries.BookingView {
	return &queries.BookingView{
		Reference:   reference,
		ListingID:   uuid.New(),
		ListingName: "Unilag Hall A",
		StudentID:   uuid.New(),
		AmountCents: 150000,
		Currency:    "NGN",
		Status:      status,
		Duration:    booking.DurationSemester.String(),
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("created", func() {
		listingID := uuid.New()
		s.stub.createFn = func(_ context.Context, params usecase.CreateBookingParams) (*usecase.CreateBookingResult, error) {
			s.Equal(s.userID, params.StudentID)
			s.Equal(listingID, params.ListingID)
			s.Equal(booking.DurationSemester, params.Duration)
			return &usecase.CreateBookingResult{
				Booking: sampleView("hh_new", "pending"),
				Authorization: &gateway.AuthorizationHandle{
					Reference:        "hh_new",
					AuthorizationURL: "https://pay.example.com/hh_new",
					AccessCode:       "ac_test",
				},
			}, nil
		}

		w := s.perform(http.MethodPost, "/bookings", gin.H{
			"listingId": listingID.String(),
			"duration":   "semester",
		})

		s.Equal(http.StatusCreated, w.Code)
		s.Contains(w.Body.String(), "hh_new")
		s.Contains(w.Body.String(), "authorizationUrl")
	})

	s.Run("invalid duration rejected by binding", func() {
		w := s.perform(http.MethodPost, "/bookings", gin.H{
			"listingId": uuid.New().String(),
			"duration":   "weekend",
		})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("missing body", func() {
		w := s.perform(http.MethodPost, "/bookings", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})

	errCases := []struct {
		name string
		err  error
		code int
	}{
		{name: "listing not found", err: usecase.ErrListingNotFound, code: http.StatusNotFound},
		{name: "listing not approved", err: usecase.ErrListingNotApproved, code: http.StatusUnprocessableEntity},
		{name: "no capacity", err: usecase.ErrNoCapacity, code: http.StatusConflict},
		{name: "gateway unavailable", err: usecase.ErrGatewayUnavailable, code: http.StatusBadGateway},
		{name: "unexpected", err: usecase.ErrDatabaseOperationFailed, code: http.StatusInternalServerError},
	}
	for _, tc := range errCases {
		s.Run(tc.name, func() {
			s.stub.createFn = func(context.Context, usecase.CreateBookingParams) (*usecase.CreateBookingResult, error) {
				return nil, tc.err
			}

			w := s.perform(http.MethodPost, "/bookings", gin.H{
				"listingId": uuid.New().String(),
				"duration":   "semester",
			})
			s.Equal(tc.code, w.Code)
		})
	}
}

func (s *BookingHandlerTestSuite) TestVerifyBooking() {
	s.Run("settled", func() {
		s.stub.verifyFn = func(_ context.Context, reference string) (*queries.BookingView, error) {
			s.Equal("hh_abc", reference)
			return sampleView("hh_abc", "success"), nil
		}

		w := s.perform(http.MethodPost, "/bookings/hh_abc/verify", nil)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"success"`)
	})

	s.Run("payment failed carries the booking body", func() {
		s.stub.verifyFn = func(context.Context, string) (*queries.BookingView, error) {
			return sampleView("hh_abc", "failed"), usecase.ErrPaymentFailed
		}

		w := s.perform(http.MethodPost, "/bookings/hh_abc/verify", nil)
		s.Equal(http.StatusPaymentRequired, w.Code)
		s.Contains(w.Body.String(), `"booking"`)
		s.Contains(w.Body.String(), `"failed"`)
	})

	s.Run("capacity exhausted carries the booking body", func() {
		s.stub.verifyFn = func(context.Context, string) (*queries.BookingView, error) {
			return sampleView("hh_abc", "failed"), usecase.ErrCapacityExhausted
		}

		w := s.perform(http.MethodPost, "/bookings/hh_abc/verify", nil)
		s.Equal(http.StatusConflict, w.Code)
		s.Contains(w.Body.String(), `"booking"`)
	})

	s.Run("indeterminate asks the caller to retry", func() {
		s.stub.verifyFn = func(context.Context, string) (*queries.BookingView, error) {
			return nil, usecase.ErrGatewayIndeterminate
		}

		w := s.perform(http.MethodPost, "/bookings/hh_abc/verify", nil)
		s.Equal(http.StatusServiceUnavailable, w.Code)
	})

	s.Run("not found", func() {
		s.stub.verifyFn = func(context.Context, string) (*queries.BookingView, error) {
			return nil, usecase.ErrBookingNotFound
		}

		w := s.perform(http.MethodPost, "/bookings/hh_missing/verify", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	s.Run("cancelled", func() {
		s.stub.cancelFn = func(_ context.Context, reference string, requesterID uuid.UUID, role user.Role) (*queries.BookingView, error) {
			s.Equal("hh_abc", reference)
			s.Equal(s.userID, requesterID)
			s.Equal(user.RoleStudent, role)
			return sampleView("hh_abc", "cancelled"), nil
		}

		w := s.perform(http.MethodPost, "/bookings/hh_abc/cancel", nil)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"cancelled"`)
	})

	errCases := []struct {
		name string
		err  error
		code int
	}{
		{name: "not found", err: usecase.ErrBookingNotFound, code: http.StatusNotFound},
		{name: "forbidden", err: usecase.ErrForbidden, code: http.StatusForbidden},
		{name: "invalid state", err: usecase.ErrInvalidState, code: http.StatusConflict},
	}
	for _, tc := range errCases {
		s.Run(tc.name, func() {
			s.stub.cancelFn = func(context.Context, string, uuid.UUID, user.Role) (*queries.BookingView, error) {
				return nil, tc.err
			}

			w := s.perform(http.MethodPost, "/bookings/hh_abc/cancel", nil)
			s.Equal(tc.code, w.Code)
		})
	}
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("found", func() {
		s.stub.getFn = func(_ context.Context, actor queries.Actor, reference string) (*queries.BookingView, error) {
			s.Equal(s.userID, actor.ID)
			s.Equal(user.RoleStudent, actor.Role)
			return sampleView(reference, "pending"), nil
		}

		w := s.perform(http.MethodGet, "/bookings/hh_abc", nil)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), "hh_abc")
	})

	s.Run("not found", func() {
		s.stub.getFn = func(context.Context, queries.Actor, string) (*queries.BookingView, error) {
			return nil, usecase.ErrBookingNotFound
		}

		w := s.perform(http.MethodGet, "/bookings/hh_abc", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.stub.listFn = func(_ context.Context, actor queries.Actor) ([]*queries.BookingListItem, error) {
		s.Equal(s.userID, actor.ID)
		return []*queries.BookingListItem{
			{Reference: "hh_one", Status: "pending"},
			{Reference: "hh_two", Status: "success"},
		}, nil
	}

	w := s.perform(http.MethodGet, "/bookings", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "hh_one")
	s.Contains(w.Body.String(), "hh_two")
}

func TestBookingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}
