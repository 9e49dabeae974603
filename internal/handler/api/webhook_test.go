//go:build unit

package api_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/handler/api"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type stubWebhookUseCase struct {
	gotPayload   []byte
	gotSignature string
	err          error
}

func (s *stubWebhookUseCase) Ingest(_ context.Context, payload []byte, signatureHeader string) error {
	s.gotPayload = payload
	s.gotSignature = signatureHeader
	return s.err
}

type WebhookHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	stub   *stubWebhookUseCase
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.stub = &stubWebhookUseCase{}
	s.router = gin.New()
	s.router.POST("/webhooks/payment", api.NewWebhookHandler(s.stub).HandleGatewayEvent)
}

func (s *WebhookHandlerTestSuite) post(body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader([]byte(body)))
	if signature != "" {
		req.Header.Set("X-Gateway-Signature", signature)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *WebhookHandlerTestSuite) TestHandleGatewayEvent() {
	s.Run("acknowledged", func() {
		payload := `{"event":"charge.success","data":{"reference":"hh_abc123"}}`
		w := s.post(payload, "sig")

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), "acknowledged")
		s.Equal([]byte(payload), s.stub.gotPayload)
		s.Equal("sig", s.stub.gotSignature)
	})

	s.Run("invalid signature", func() {
		s.stub.err = usecase.ErrInvalidSignature
		w := s.post(`{}`, "forged")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("malformed payload", func() {
		s.stub.err = usecase.ErrMalformedPayload
		w := s.post(`{not json`, "sig")
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func TestWebhookHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}
