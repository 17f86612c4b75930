package gather

import (
	"sync"

	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// Tracker holds the observable state of the current gather run. All access
// goes through the mutex so the status endpoint can poll while the run
// mutates state from its own goroutine.
type Tracker struct {
	mu     sync.RWMutex
	status models.GatherStatus
}

// StatusPatch is a partial status update; nil fields are left unchanged
type StatusPatch struct {
	Status         *models.GatherState
	TotalMalls     *int
	CompletedMalls *int
	CurrentMall    *string
	Error          *string
}

// NewTracker creates a tracker in the idle state
func NewTracker() *Tracker {
	return &Tracker{
		status: models.GatherStatus{Status: models.GatherIdle},
	}
}

// Snapshot returns a copy of the current status
func (t *Tracker) Snapshot() models.GatherStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Reset clears all fields and marks the run as running under a new job ID
func (t *Tracker) Reset(jobID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = models.GatherStatus{
		JobID:  jobID,
		Status: models.GatherRunning,
	}
}

// Update applies the non-nil fields of the patch atomically
func (t *Tracker) Update(patch StatusPatch) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if patch.Status != nil {
		t.status.Status = *patch.Status
	}
	if patch.TotalMalls != nil {
		t.status.TotalMalls = *patch.TotalMalls
	}
	if patch.CompletedMalls != nil {
		t.status.CompletedMalls = *patch.CompletedMalls
	}
	if patch.CurrentMall != nil {
		t.status.CurrentMall = *patch.CurrentMall
	}
	if patch.Error != nil {
		t.status.Error = *patch.Error
	}
}

// Running reports whether a run is currently in flight
func (t *Tracker) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status.Status == models.GatherRunning
}
