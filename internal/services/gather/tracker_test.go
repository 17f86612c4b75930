package gather

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shauntjh92/Wifey-app/internal/models"
)

func TestTracker_StartsIdle(t *testing.T) {
	tracker := NewTracker()
	status := tracker.Snapshot()

	assert.Equal(t, models.GatherIdle, status.Status)
	assert.Empty(t, status.JobID)
	assert.False(t, tracker.Running())
}

func TestTracker_ResetClearsPreviousRun(t *testing.T) {
	tracker := NewTracker()

	total := 10
	completed := 7
	errMsg := "upstream gone"
	errState := models.GatherError
	tracker.Reset("job_one")
	tracker.Update(StatusPatch{
		Status:         &errState,
		TotalMalls:     &total,
		CompletedMalls: &completed,
		Error:          &errMsg,
	})

	tracker.Reset("job_two")
	status := tracker.Snapshot()

	assert.Equal(t, "job_two", status.JobID)
	assert.Equal(t, models.GatherRunning, status.Status)
	assert.Zero(t, status.TotalMalls)
	assert.Zero(t, status.CompletedMalls)
	assert.Empty(t, status.Error)
	assert.True(t, tracker.Running())
}

func TestTracker_PartialUpdate(t *testing.T) {
	tracker := NewTracker()
	tracker.Reset("job_x")

	total := 5
	tracker.Update(StatusPatch{TotalMalls: &total})

	current := "VivoCity"
	completed := 2
	tracker.Update(StatusPatch{CurrentMall: &current, CompletedMalls: &completed})

	status := tracker.Snapshot()
	assert.Equal(t, 5, status.TotalMalls, "earlier field kept through later patch")
	assert.Equal(t, 2, status.CompletedMalls)
	assert.Equal(t, "VivoCity", status.CurrentMall)
	assert.Equal(t, models.GatherRunning, status.Status)
}

func TestTracker_ConcurrentReadsAndWrites(t *testing.T) {
	tracker := NewTracker()
	tracker.Reset("job_concurrent")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			tracker.Update(StatusPatch{CompletedMalls: &n})
		}(i)
		go func() {
			defer wg.Done()
			_ = tracker.Snapshot()
		}()
	}
	wg.Wait()

	status := tracker.Snapshot()
	assert.Equal(t, "job_concurrent", status.JobID)
	assert.Equal(t, models.GatherRunning, status.Status)
}
