package vars

import (
	"github.com/stretchr/testify/assert"
	"infinitech-web/model"
	"sync"
	"testing"
	"time"
)

func TestBackendStatus(t *testing.T) {
	ResetBackendStatus()
	assert.False(t, GetBackendStatus().Up)
	assert.True(t, GetBackendStatus().CheckedAt.IsZero())

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	SetBackendStatus(model.BackendStatus{Up: true, CheckedAt: now, LatencyMs: 12})

	got := GetBackendStatus()
	assert.True(t, got.Up)
	assert.Equal(t, now, got.CheckedAt)
	assert.Equal(t, int64(12), got.LatencyMs)
}

func TestBackendStatusConcurrentAccess(t *testing.T) {
	ResetBackendStatus()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			SetBackendStatus(model.BackendStatus{Up: i%2 == 0, LatencyMs: int64(i)})
		}(i)
		go func() {
			defer wg.Done()
			_ = GetBackendStatus()
		}()
	}
	wg.Wait()

	assert.False(t, GetBackendStatus().CheckedAt.After(time.Now()))
}
