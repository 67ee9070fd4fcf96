package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// New registers on the global registry via promauto, so it runs exactly
// once for the whole test binary.
func TestMetricsHelpers(t *testing.T) {
	m := New()

	m.ObserveRequest("POST", "201", "/route/register", 0.05)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "201")))

	m.SetRateLimitRemaining(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(m.RateLimitRemaining))

	m.IncrementRateLimitWarnings()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RateLimitWarnings))

	m.SetAPIOnline(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.APIOnline))
	m.SetAPIOnline(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.APIOnline))

	m.IncrementAuthFailures()
	m.IncrementAuthFailures()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.AuthFailures))

	m.IncrementUsersRegistered()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.UsersRegistered))
}
