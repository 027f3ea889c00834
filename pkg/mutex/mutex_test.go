package mutex

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex(t *testing.T) {
	km := New(time.Minute)
	defer km.Stop()

	t.Run("SameKeyReturnsSameMutex", func(t *testing.T) {
		first := km.Get("wallet:ethereum:0xabc")
		second := km.Get("wallet:ethereum:0xabc")
		assert.Same(t, first, second)
	})

	t.Run("DistinctKeysIndependent", func(t *testing.T) {
		first := km.Get("network:ethereum")
		second := km.Get("network:bitcoin")
		assert.NotSame(t, first, second)
	})

	t.Run("ConcurrentGetSameKey", func(t *testing.T) {
		const goroutines = 50

		results := make([]*sync.Mutex, goroutines)
		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func(i int) {
				defer wg.Done()
				results[i] = km.Get("network:solana")
			}(i)
		}
		wg.Wait()

		for i := 1; i < goroutines; i++ {
			assert.Same(t, results[0], results[i])
		}
	})

	t.Run("IdleEntriesRemoved", func(t *testing.T) {
		km := New(time.Minute)
		defer km.Stop()

		km.Get("network:polygon")
		require.Equal(t, 1, km.Size())

		km.mapMutex.Lock()
		for _, e := range km.mutexes {
			e.lastAccess.Store(time.Now().Add(-2 * time.Minute).UnixNano())
		}
		km.mapMutex.Unlock()

		km.removeIdle()
		assert.Equal(t, 0, km.Size())
	})

	t.Run("LockedEntrySurvivesCleanup", func(t *testing.T) {
		km := New(time.Minute)
		defer km.Stop()

		lock := km.Get("network:ethereum")
		lock.Lock()
		defer lock.Unlock()

		km.mapMutex.Lock()
		for _, e := range km.mutexes {
			e.lastAccess.Store(time.Now().Add(-2 * time.Minute).UnixNano())
		}
		km.mapMutex.Unlock()

		km.removeIdle()
		assert.Equal(t, 1, km.Size())
	})
}
