package utils

import (
	"context"
	"time"
)

// DefaultUpstreamTimeout bounds a single CRM call made while serving a request.
const DefaultUpstreamTimeout = 15 * time.Second

// ProbeTimeout is used by the scheduled connectivity check.
const ProbeTimeout = 10 * time.Second

// GetUpstreamContext returns a context with timeout for outbound calls.
// If parent context is nil, it derives from context.Background().
func GetUpstreamContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	if timeout <= 0 {
		timeout = DefaultUpstreamTimeout
	}
	return context.WithTimeout(parentCtx, timeout)
}
