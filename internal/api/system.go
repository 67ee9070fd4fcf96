package api

import (
	"context"

	"lycosidae/pkg/apierrors"
)

// HealthStatus is the body of GET /system/health.
type HealthStatus struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	Service        string `json:"service"`
	Timestamp      string `json:"timestamp"`
	Version        string `json:"version"`
	DatabaseStatus string `json:"database_status"`
}

// PingResponse is the body of GET /.
type PingResponse struct {
	Message string `json:"message"`
}

// HealthCheck verifies that the API is functioning.
func (c *Client) HealthCheck(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	err := c.Get(ctx, "/system/health", nil, &out)
	return out, err
}

// RateLimitStatus fetches the caller's current quota accounting.
func (c *Client) RateLimitStatus(ctx context.Context) (apierrors.RateLimitInfo, error) {
	var out apierrors.RateLimitInfo
	err := c.Get(ctx, "/system/rate-limit/info", nil, &out)
	return out, err
}

// Ping checks that the API answers at all.
func (c *Client) Ping(ctx context.Context) (PingResponse, error) {
	var out PingResponse
	err := c.Get(ctx, "/", nil, &out)
	return out, err
}
