package models

// GatherState is the lifecycle state of a gather run
type GatherState string

const (
	GatherIdle    GatherState = "idle"
	GatherRunning GatherState = "running"
	GatherDone    GatherState = "done"
	GatherError   GatherState = "error"
)

// GatherStatus is a point-in-time snapshot of the gather run,
// safe to poll frequently from the status endpoint.
type GatherStatus struct {
	JobID          string      `json:"job_id"`
	Status         GatherState `json:"status"`
	TotalMalls     int         `json:"total_malls"`
	CompletedMalls int         `json:"completed_malls"`
	CurrentMall    string      `json:"current_mall,omitempty"`
	Error          string      `json:"error,omitempty"`
}

// MallListing is a raw mall fact produced by a source adapter
type MallListing struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Address string `json:"address,omitempty"`
	Website string `json:"website,omitempty"`
}

// StoreListing is a raw store-directory fact produced by a source adapter
type StoreListing struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Unit     string `json:"unit,omitempty"`
}
