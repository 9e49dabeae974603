package api

import (
	"errors"
	"net/http"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "X-Gateway-Signature"

type WebhookHandler struct {
	webhookUseCase usecase.WebhookUseCase
}

func NewWebhookHandler(webhookUseCase usecase.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{
		webhookUseCase: webhookUseCase,
	}
}

// HandleGatewayEvent acknowledges every authentic delivery with 200 so
// the gateway never enters a redelivery storm; only an invalid
// signature is rejected.
func (h *WebhookHandler) HandleGatewayEvent(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unable to read payload",
		})
		return
	}

	err = h.webhookUseCase.Ingest(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidSignature):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid signature",
			})
		case errors.Is(err, usecase.ErrMalformedPayload):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Malformed payload",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "acknowledged"})
}
