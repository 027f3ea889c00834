package mutex

import (
	"sync"
	"sync/atomic"
	"time"
)

// KeyedMutex provides per-key locking so concurrent lookups for the same
// wallet address or network collapse into a single provider call. The second
// caller blocks until the first populates the cache, then hits it.
type KeyedMutex struct {
	mutexes    map[string]*mutexEntry
	mapMutex   sync.RWMutex
	cleanupTTL time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// lastAccess is atomic so concurrent Get calls touching the same entry
// under the map's read lock do not race.
type mutexEntry struct {
	mutex      *sync.Mutex
	lastAccess atomic.Int64
}

func (e *mutexEntry) touch() {
	e.lastAccess.Store(time.Now().UnixNano())
}

// New creates a KeyedMutex with automatic cleanup of idle entries.
func New(cleanupTTL time.Duration) *KeyedMutex {
	km := &KeyedMutex{
		mutexes:    make(map[string]*mutexEntry),
		cleanupTTL: cleanupTTL,
		stopCh:     make(chan struct{}),
	}

	go km.cleanup()

	return km
}

// Get returns the mutex for the given key, creating one if needed.
func (km *KeyedMutex) Get(key string) *sync.Mutex {
	km.mapMutex.RLock()
	if e, exists := km.mutexes[key]; exists {
		e.touch()
		km.mapMutex.RUnlock()
		return e.mutex
	}
	km.mapMutex.RUnlock()

	km.mapMutex.Lock()
	defer km.mapMutex.Unlock()

	// Another goroutine may have created it between the two locks.
	if e, exists := km.mutexes[key]; exists {
		e.touch()
		return e.mutex
	}

	e := &mutexEntry{mutex: &sync.Mutex{}}
	e.touch()
	km.mutexes[key] = e

	return e.mutex
}

// Size returns the number of mutexes currently stored.
func (km *KeyedMutex) Size() int {
	km.mapMutex.RLock()
	defer km.mapMutex.RUnlock()
	return len(km.mutexes)
}

func (km *KeyedMutex) cleanup() {
	ticker := time.NewTicker(km.cleanupTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			km.removeIdle()
		case <-km.stopCh:
			return
		}
	}
}

// removeIdle drops entries that are not locked and have not been touched
// within the cleanup TTL.
func (km *KeyedMutex) removeIdle() {
	km.mapMutex.Lock()
	defer km.mapMutex.Unlock()

	now := time.Now().UnixNano()
	for key, e := range km.mutexes {
		if now-e.lastAccess.Load() > int64(km.cleanupTTL) {
			if e.mutex.TryLock() {
				e.mutex.Unlock()
				delete(km.mutexes, key)
			}
		}
	}
}

// Stop stops the cleanup goroutine.
func (km *KeyedMutex) Stop() {
	km.stopOnce.Do(func() { close(km.stopCh) })
}
