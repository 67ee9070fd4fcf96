package notify

import (
	"log/slog"
	"time"
)

// Severity tags a notification for display styling.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Kind groups notifications by origin.
type Kind string

const (
	KindAPIError     Kind = "api_error"
	KindRateLimit    Kind = "rate_limit"
	KindConnectivity Kind = "connectivity"
	KindMaintenance  Kind = "maintenance"
)

// Display durations per notification class. Zero means the message
// stays until explicitly cleared.
const (
	durationDefault       = 5 * time.Second
	durationRateLimited   = 8 * time.Second
	durationQuotaCritical = 6 * time.Second
	durationQuotaWarning  = 4 * time.Second
	durationBackOnline    = 3 * time.Second
	durationPersistent    = 0
)

// Notification is an ephemeral, severity-tagged user message. It exists
// only for the duration of its display and is never stored.
type Notification struct {
	Kind        Kind
	Title       string
	Description string
	Severity    Severity
	Duration    time.Duration
}

// Sink renders notifications. The CLI wires a terminal sink; tests wire
// a capturing one.
type Sink interface {
	Show(n Notification)
}

// SlogSink renders notifications to a structured logger.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink constructs a logger-backed sink.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Show(n Notification) {
	attrs := []any{
		"kind", string(n.Kind),
		"title", n.Title,
		"description", n.Description,
		"duration", n.Duration,
	}
	switch n.Severity {
	case SeverityCritical:
		s.logger.Error("notification", attrs...)
	case SeverityWarning:
		s.logger.Warn("notification", attrs...)
	default:
		s.logger.Info("notification", attrs...)
	}
}

var _ Sink = (*SlogSink)(nil)
