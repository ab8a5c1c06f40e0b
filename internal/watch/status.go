package watch

import (
	"sync"
	"time"
)

// buildStatus tracks the outcome of the most recent rebuild for /healthz.
type buildStatus struct {
	mu           sync.RWMutex
	lastError    error
	lastBuildAt  time.Time
	buildCount   int
	hasGoodBuild bool
}

func (bs *buildStatus) setError(err error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = err
	bs.lastBuildAt = time.Now()
	bs.buildCount++
}

func (bs *buildStatus) setSuccess() {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.lastError = nil
	bs.lastBuildAt = time.Now()
	bs.buildCount++
	bs.hasGoodBuild = true
}

func (bs *buildStatus) snapshot() (lastErr error, at time.Time, count int, good bool) {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.lastError, bs.lastBuildAt, bs.buildCount, bs.hasGoodBuild
}
