package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_StartsAtZero(t *testing.T) {
	assert.Equal(t, int64(0), NewClock().Current())
}

func TestClock_ResumesFrom(t *testing.T) {
	c := NewClockAt(41)
	assert.Equal(t, int64(41), c.Current())
	assert.Equal(t, int64(42), c.Next())
}

func TestClock_NextIsDense(t *testing.T) {
	c := NewClock()
	for want := int64(1); want <= 5; want++ {
		assert.Equal(t, want, c.Next())
	}
	assert.Equal(t, int64(5), c.Current())
	assert.Equal(t, int64(5), c.Current(), "reading does not advance")
}

func TestClock_ConcurrentNextNeverRepeats(t *testing.T) {
	c := NewClock()
	const workers, perWorker = 16, 250

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]struct{}, workers*perWorker)
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				seq := c.Next()
				mu.Lock()
				seen[seq] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, int64(workers*perWorker), c.Current())
}
