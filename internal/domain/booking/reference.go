package booking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewReference generates the opaque booking reference used as the
// idempotency key across the gateway cycle. Uniqueness is additionally
// enforced by the ledger's unique constraint.
func NewReference() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively fatal; fall back to a
		// timestamp so the unique constraint can still catch collisions.
		return fmt.Sprintf("hh_%d", time.Now().UnixNano())
	}
	return "hh_" + hex.EncodeToString(buf)
}
