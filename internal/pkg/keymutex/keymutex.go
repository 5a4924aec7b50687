// Package keymutex provides per-key mutual exclusion for serializing
// access to guild- and user-scoped state.
package keymutex

import "sync"

// KeyMutex hands out one mutex per string key. Mutexes are never
// released; the key space here (guilds, users) is small and bounded by
// actual usage.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key, creating it on first use.
func (k *KeyMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never
// locked panics, same as sync.Mutex.
func (k *KeyMutex) Unlock(key string) {
	k.get(key).Unlock()
}

func (k *KeyMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
