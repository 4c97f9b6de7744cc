// Package cache provides a generic, thread-safe LRU cache.
//
//	c := cache.New[cellKey, *Cell](256)
//	c.Set(key, cell)
//	cell, ok := c.Get(key)
//
// The cache holds at most its capacity; inserting into a full cache evicts
// the least recently used entry. Hit, miss and eviction counts are kept for
// [Cache.Stats].
//
// Cache is safe for concurrent use and must not be copied after creation
// (it contains a mutex).
package cache
