package events

import (
	"time"

	"lycosidae/internal/auth/models"
	"lycosidae/pkg/apierrors"
)

// Typed payloads, one per event kind. Events are transient: they exist
// only for the duration of delivery and are never stored.

// APIErrorEvent is published once per failed API call, after
// classification and before the error is returned to the caller.
type APIErrorEvent struct {
	Err      *apierrors.APIError
	Endpoint string
	Body     map[string]any
}

// RateLimitWarningEvent is advisory: the remaining quota reported by the
// backend dropped below the warning threshold. It fires on success and
// failure alike, independent of the status-code check.
type RateLimitWarningEvent struct {
	Remaining int
	Limit     int
}

// UserLoginEvent carries the identity persisted on register or login.
type UserLoginEvent struct {
	User models.User
}

// UserLogoutEvent signals that the session was cleared.
type UserLogoutEvent struct{}

// ConnectivityEvent signals a backend reachability transition observed
// by the health poller.
type ConnectivityEvent struct {
	Online bool
	At     time.Time
}
