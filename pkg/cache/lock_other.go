//go:build !unix

package cache

// cacheLock is a no-op where flock is unavailable; updates still swap the
// pages directory in with a rename.
type cacheLock struct{}

func (c *Cache) acquireLock(string) (*cacheLock, error) {
	return &cacheLock{}, nil
}

// Release is a no-op.
func (l *cacheLock) Release() {}
