package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Store failures are fatal and
// abort a load with no partial result; everything else is collected as
// diagnostics alongside the partial result.
var (
	ErrStoreUnavailable   = errors.New("transaction store unavailable")
	ErrPriceUnavailable   = errors.New("price unavailable")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// DiagnosticKind classifies a non-fatal condition found during load or
// computation.
type DiagnosticKind string

const (
	// DiagInvalidTransaction marks a malformed record that was skipped.
	DiagInvalidTransaction DiagnosticKind = "invalid_transaction"
	// DiagPriceUnavailable marks an asset valued with a cached or zero price.
	DiagPriceUnavailable DiagnosticKind = "price_unavailable"
	// DiagGroupImbalance marks a restructure group missing OUT or IN legs;
	// cost transfer is skipped and original cost retained. Not an error.
	DiagGroupImbalance DiagnosticKind = "group_imbalance"
)

// Diagnostic is a non-fatal condition attached to a partial result so
// callers can render data plus what went wrong. Ref identifies the
// transaction id, symbol, or group id the condition is scoped to.
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind"`
	Ref    string         `json:"ref"`
	Detail string         `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Ref)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Ref, d.Detail)
}
