// Package cache provides a small string cache used by read-heavy lookups
// such as the lender comparison catalog. Verdict computations themselves are
// never cached; each invocation is computed fresh from its inputs.
package cache

import (
	"context"
	"time"
)

// Cache is a best-effort key/value store. A miss and a backend error look
// the same to readers; callers fall through to recomputation either way.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
