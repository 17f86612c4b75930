package interfaces

import (
	"context"

	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// MallSource produces raw mall and store-directory facts from one upstream.
// Implementations return an empty slice with a nil error when the upstream
// is merely unavailable (recoverable). A non-nil error from FetchMallList
// is fatal to the run; a FetchStoreDirectory error is isolated to that mall
// and the run continues.
type MallSource interface {
	Name() string
	FetchMallList(ctx context.Context) ([]models.MallListing, error)
	FetchStoreDirectory(ctx context.Context, listing models.MallListing) ([]models.StoreListing, error)
}

// RegionMapper provides the best-effort normalized-name -> region lookup
// used as the first step of the region resolution priority chain.
type RegionMapper interface {
	FetchRegionMap(ctx context.Context) map[string]models.Region
}

// GatherService owns the background ingestion run and its observable state
type GatherService interface {
	// StartGather schedules a background run and returns its job ID.
	// If a run is already in flight it returns that run's ID with
	// started=false instead of starting a concurrent run.
	StartGather(ctx context.Context) (jobID string, started bool, err error)

	// Status returns an atomic snapshot of the latest run's state
	Status() models.GatherStatus
}
