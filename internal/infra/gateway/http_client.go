package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/config"
	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/errs"
)

type HTTPClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewHTTPClient(cfg config.GatewayConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type transactionData struct {
	ID               int64  `json:"id"`
	Status           string `json:"status"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
}

func (c *HTTPClient) Authorize(ctx context.Context, req AuthorizeRequest) (*AuthorizationHandle, error) {
	payload := map[string]any{
		"amount":    req.AmountCents,
		"currency":  req.Currency,
		"reference": req.Reference,
		"metadata":  req.Metadata,
	}

	data, err := c.post(ctx, "/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}

	var tx transactionData
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, errs.Wrap(err, "failed to decode authorization response")
	}

	return &AuthorizationHandle{
		Reference:        tx.Reference,
		AuthorizationURL: tx.AuthorizationURL,
		AccessCode:       tx.AccessCode,
	}, nil
}

func (c *HTTPClient) CheckStatus(ctx context.Context, reference string) (*StatusResult, error) {
	data, err := c.get(ctx, "/transaction/verify/"+reference)
	if err != nil {
		return nil, err
	}

	var tx transactionData
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, errs.Wrap(err, "failed to decode status response")
	}

	return &StatusResult{
		Paid:             tx.Status == "success",
		GatewayReference: tx.Reference,
		Raw:              data,
	}, nil
}

func (c *HTTPClient) VerifyWebhookSignature(payload []byte, signatureHeader string) bool {
	if signatureHeader == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signatureHeader))
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, errs.Wrap(err, "failed to build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *HTTPClient) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build gateway request")
	}

	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		// Transport errors and timeouts: the charge may have gone
		// through on the provider side.
		return nil, errs.Mark(err, ErrIndeterminate)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.Mark(err, ErrIndeterminate)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, errs.Mark(errs.New("gateway returned "+resp.Status), ErrIndeterminate)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errs.Mark(errs.New("gateway returned "+resp.Status), ErrRejected)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errs.Wrap(err, "failed to decode gateway envelope")
	}
	if !env.Status {
		return nil, errs.Mark(errs.New("gateway error: "+env.Message), ErrRejected)
	}

	return env.Data, nil
}
