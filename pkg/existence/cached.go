package existence

import (
	"context"

	"github.com/dmitrymomot/formkit/pkg/cache"
)

// CachedChecker remembers answers from another Checker. Errors are never
// cached, so a failed lookup is retried on the next call.
type CachedChecker struct {
	next  Checker
	store *cache.LRU[string, bool]
}

// NewCachedChecker wraps next with an LRU holding up to size answers.
// Pass cache.WithTTL to bound how long an answer is trusted.
func NewCachedChecker(next Checker, size int, opts ...cache.Option) *CachedChecker {
	return &CachedChecker{
		next:  next,
		store: cache.NewLRU[string, bool](size, opts...),
	}
}

func (c *CachedChecker) Exists(ctx context.Context, name string) (bool, error) {
	if taken, ok := c.store.Get(name); ok {
		return taken, nil
	}
	taken, err := c.next.Exists(ctx, name)
	if err != nil {
		return false, err
	}
	c.store.Put(name, taken)
	return taken, nil
}

// Forget drops a cached answer, e.g. after the name was registered.
func (c *CachedChecker) Forget(name string) {
	c.store.Remove(name)
}
