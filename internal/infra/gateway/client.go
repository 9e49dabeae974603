// Package gateway wraps the external payment provider. The provider
// speaks a REST API: a charge is initialized against a booking
// reference, completed by the payer out-of-band, and its authoritative
// status is read back by reference. Webhooks are authenticated with an
// HMAC-SHA512 signature over the raw body.
package gateway

import (
	"context"
	"encoding/json"

	"github.com/codesmoothcreations-source/hostelHub-sub001/internal/pkg/errs"

	"github.com/cockroachdb/errors"
)

var (
	// ErrIndeterminate marks timeouts and 5xx responses: the charge may
	// or may not have gone through, so the caller must re-verify later
	// rather than assume failure.
	ErrIndeterminate = errs.New("gateway response indeterminate")
	// ErrRejected marks definite 4xx rejections of our own request.
	ErrRejected = errs.New("gateway rejected request")
)

func IsIndeterminate(err error) bool {
	return errors.Is(err, ErrIndeterminate)
}

type AuthorizeRequest struct {
	AmountCents int64          // smallest currency unit, always
	Currency    string
	Reference   string
	Metadata    map[string]any
}

// AuthorizationHandle is what the payer needs to complete the charge.
type AuthorizationHandle struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
}

// StatusResult is the provider's authoritative answer for a reference.
// Raw carries the unparsed provider response for the ledger's metadata
// blob.
type StatusResult struct {
	Paid             bool
	GatewayReference string
	Raw              json.RawMessage
}

type Client interface {
	Authorize(ctx context.Context, req AuthorizeRequest) (*AuthorizationHandle, error)
	CheckStatus(ctx context.Context, reference string) (*StatusResult, error)
	VerifyWebhookSignature(payload []byte, signatureHeader string) bool
}
