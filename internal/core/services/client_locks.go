package services

import "sync"

// clientLocks hands out one mutex per client ID so invoice generation can
// serialize itself per client without blocking unrelated clients. Locks are
// never evicted; the per-entry footprint is two words and the client
// population is bounded.
type clientLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newClientLocks() *clientLocks {
	return &clientLocks{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for a client, creating it on first use.
func (c *clientLocks) get(clientID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[clientID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[clientID] = lock
	}
	return lock
}
