//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/domain/user"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/api"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/middleware"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/errs"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubListingQueries struct {
	getFn  func(ctx context.Context, id uuid.UUID) (*queries.ListingView, error)
	listFn func(ctx context.Context, limit int32) ([]*queries.ListingView, error)
}

func (s *stubListingQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	return s.getFn(ctx, id)
}

func (s *stubListingQueries) List(ctx context.Context, limit int32) ([]*queries.ListingView, error) {
	return s.listFn(ctx, limit)
}

type ListingHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	stub   *stubListingQueries
	role   user.Role
}

func (s *ListingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.stub = &stubListingQueries{}
	s.role = user.RoleStudent
	handler := api.NewListingHandler(s.stub)
	auth := middleware.NewAuthMiddleware(nil)

	s.router = gin.New()
	authed := s.router.Group("/", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		c.Set("user_role", s.role)
	})
	authed.GET("/listings/:id", handler.GetListing)
	authed.GET("/listings", auth.RequireRoleAtLeast(user.RoleAdmin), handler.ListInventory)
}

func (s *ListingHandlerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sampleListingView(name string) *queries.ListingView {
	return &queries.ListingView{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Name:           name,
		PricePerPeriod: "1500",
		Currency:       "NGN",
		Status:         "approved",
		RoomsTotal:     20,
		RoomsAvailable: 12,
	}
}

func (s *ListingHandlerTestSuite) TestGetListing() {
	s.Run("found", func() {
		view := sampleListingView("Unilag Hall A")
		s.stub.getFn = func(_ context.Context, id uuid.UUID) (*queries.ListingView, error) {
			s.Equal(view.ID, id)
			return view, nil
		}

		w := s.get("/listings/" + view.ID.String())
		s.Equal(http.StatusOK, w.Code)

		var body map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Equal(view.Name, body["name"])
		s.Equal(float64(12), body["roomsAvailable"])
		// The public projection hides the owner and the total room count.
		s.NotContains(body, "ownerId")
		s.NotContains(body, "roomsTotal")
	})

	s.Run("invalid id", func() {
		w := s.get("/listings/not-a-uuid")
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("not found", func() {
		s.stub.getFn = func(_ context.Context, _ uuid.UUID) (*queries.ListingView, error) {
			return nil, infra.WrapRepoErr("listing not found", errs.New("no rows"), infra.KindNotFound)
		}

		w := s.get("/listings/" + uuid.NewString())
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *ListingHandlerTestSuite) TestListInventory() {
	s.Run("admin sees the full projection", func() {
		s.role = user.RoleAdmin
		views := []*queries.ListingView{
			sampleListingView("Unilag Hall A"),
			sampleListingView("Unilag Hall B"),
		}
		views[1].Status = "suspended"
		s.stub.listFn = func(_ context.Context, limit int32) ([]*queries.ListingView, error) {
			s.Positive(limit)
			return views, nil
		}

		w := s.get("/listings")
		s.Equal(http.StatusOK, w.Code)

		var body []map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
		s.Require().Len(body, 2)
		s.Equal(views[0].OwnerID.String(), body[0]["ownerId"])
		s.Equal(float64(20), body[0]["roomsTotal"])
		s.Equal("suspended", body[1]["status"])
	})

	s.Run("student is forbidden", func() {
		s.role = user.RoleStudent
		w := s.get("/listings")
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("owner is forbidden", func() {
		s.role = user.RoleOwner
		w := s.get("/listings")
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("query failure", func() {
		s.role = user.RoleAdmin
		s.stub.listFn = func(_ context.Context, _ int32) ([]*queries.ListingView, error) {
			return nil, errs.New("connection reset")
		}

		w := s.get("/listings")
		s.Equal(http.StatusInternalServerError, w.Code)
	})
}

func TestListingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ListingHandlerTestSuite))
}
