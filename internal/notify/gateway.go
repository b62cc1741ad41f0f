// Package notify wraps the host's one-shot alert facility. Callers only ever
// hold opaque handles; everything else about a scheduled alert belongs to the
// gateway.
package notify

import (
	"errors"
	"time"
)

var ErrPermissionDenied = errors.New("notification permission denied")

// Gateway is the host notification facility: one-shot alerts scheduled by
// instant, cancellable by handle.
type Gateway interface {
	// EnsureChannel performs the one-time permission and channel setup. It is
	// a startup concern; Schedule callers do not retry on denial.
	EnsureChannel() error

	// Schedule registers a one-shot alert and returns its handle.
	Schedule(at time.Time, title string, body string) (string, error)

	// Cancel retracts a scheduled alert. Unknown or already-fired handles are
	// a no-op, never an error.
	Cancel(handle string)
}
