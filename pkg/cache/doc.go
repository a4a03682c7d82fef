// Package cache provides a generic least-recently-used cache with optional
// per-entry expiry.
//
//	c := cache.NewLRU[string, bool](128, cache.WithTTL(time.Minute))
//	c.Put("Thomas", true)
//	taken, ok := c.Get("Thomas")
//
// All methods are safe for concurrent use.
package cache
