package api

import (
	"net/http"

	resdto "github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/dto/response"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/infra"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	listingQueries queries.ListingQueries
}

func NewListingHandler(listingQueries queries.ListingQueries) *ListingHandler {
	return &ListingHandler{
		listingQueries: listingQueries,
	}
}

func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing ID format",
		})
		return
	}

	view, err := h.listingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

const listingInventoryLimit = 200

// ListInventory is the admin surface over the full listing table,
// drafts and suspended listings included. The router gates it behind
// the admin role.
func (h *ListingHandler) ListInventory(c *gin.Context) {
	views, err := h.listingQueries.List(c.Request.Context(), listingInventoryLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ListingInventoryResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromListingViewInventory(view)
	}

	c.JSON(http.StatusOK, response)
}
