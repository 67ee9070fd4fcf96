package api

import (
	"net/http"
	"strconv"

	"lycosidae/pkg/apierrors"
)

// Response headers carrying quota accounting.
const (
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
	headerRetryAfter         = "Retry-After"
)

// Fallback retry delay in seconds when Retry-After is absent or not a
// number.
const defaultRetryAfter = 60

// parseRateLimitInfo extracts quota accounting from response headers.
// Missing or malformed values degrade to zero; Retry-After degrades to
// the 60s default. All fields come out non-negative.
func parseRateLimitInfo(h http.Header) apierrors.RateLimitInfo {
	info := apierrors.RateLimitInfo{
		Limit:      headerInt(h, headerRateLimitLimit, 0),
		Remaining:  headerInt(h, headerRateLimitRemaining, 0),
		ResetTime:  headerInt(h, headerRateLimitReset, 0),
		RetryAfter: headerInt(h, headerRetryAfter, defaultRetryAfter),
	}
	return info
}

func headerInt(h http.Header, key string, fallback int) int {
	v := h.Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
