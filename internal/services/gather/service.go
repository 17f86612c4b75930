package gather

import (
	"context"
	"fmt"
	"sync"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// Service orchestrates a gather run: mall lists and the region map first,
// then each mall's store directory, source by source. Runs are sequential
// and paced; a failure inside one mall's directory is logged and skipped so
// the rest of the run proceeds.
type Service struct {
	logger    arbor.ILogger
	storage   interfaces.StorageManager
	primary   interfaces.MallSource
	secondary interfaces.MallSource
	regions   interfaces.RegionMapper
	tracker   *Tracker
	limiter   *rate.Limiter

	startMu sync.Mutex
}

// NewService creates the gather orchestrator. secondary may be nil when the
// secondary source is disabled.
func NewService(logger arbor.ILogger, storage interfaces.StorageManager, primary, secondary interfaces.MallSource, regions interfaces.RegionMapper, config *common.GatherConfig) interfaces.GatherService {
	return &Service{
		logger:    logger,
		storage:   storage,
		primary:   primary,
		secondary: secondary,
		regions:   regions,
		tracker:   NewTracker(),
		limiter:   rate.NewLimiter(rate.Every(config.InterRequestDelay), 1),
	}
}

// StartGather launches a background run unless one is already in flight, in
// which case the in-flight run's job ID is returned with started=false.
func (s *Service) StartGather(ctx context.Context) (string, bool, error) {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	if s.tracker.Running() {
		jobID := s.tracker.Snapshot().JobID
		s.logger.Info().Str("job_id", jobID).Msg("Gather already in progress")
		return jobID, false, nil
	}

	jobID := common.NewJobID()
	s.tracker.Reset(jobID)

	common.SafeGo(s.logger, "gather-run", func() {
		s.run(context.Background(), jobID)
	})

	return jobID, true, nil
}

// Status returns a snapshot of the latest run's state
func (s *Service) Status() models.GatherStatus {
	return s.tracker.Snapshot()
}

func (s *Service) run(ctx context.Context, jobID string) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(fmt.Sprintf("gather run panicked: %v", r))
		}
	}()

	logger := s.logger.WithCorrelationId(jobID)

	// Phase 1: mall lists and region map
	s.setCurrentMall("Fetching mall list...")
	primaryMalls, err := s.primary.FetchMallList(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch primary mall list")
		s.fail(fmt.Sprintf("failed to fetch mall list from %s: %v", s.primary.Name(), err))
		return
	}
	if len(primaryMalls) == 0 {
		s.fail(fmt.Sprintf("no malls returned by %s", s.primary.Name()))
		return
	}

	s.setCurrentMall("Fetching region data...")
	regionMap := s.regions.FetchRegionMap(ctx)

	var secondaryMalls []models.MallListing
	if s.secondary != nil {
		s.setCurrentMall("Fetching secondary mall list...")
		secondaryMalls, err = s.secondary.FetchMallList(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to fetch secondary mall list")
			s.fail(fmt.Sprintf("failed to fetch mall list from %s: %v", s.secondary.Name(), err))
			return
		}
	}

	total := len(primaryMalls) + len(secondaryMalls)
	s.tracker.Update(StatusPatch{TotalMalls: &total})
	logger.Info().
		Int("primary", len(primaryMalls)).
		Int("secondary", len(secondaryMalls)).
		Msg("Mall lists fetched")

	// Phase 2: primary store directories
	for i, listing := range primaryMalls {
		if ctx.Err() != nil {
			s.fail(ctx.Err().Error())
			return
		}
		s.setProgress(listing.Name, i)
		s.processMall(ctx, logger, s.primary, listing, regionMap)
	}

	// Phase 3: secondary store directories
	for j, listing := range secondaryMalls {
		if ctx.Err() != nil {
			s.fail(ctx.Err().Error())
			return
		}
		s.setProgress("["+s.secondary.Name()+"] "+listing.Name, len(primaryMalls)+j)
		s.processMall(ctx, logger, s.secondary, listing, regionMap)
	}

	done := models.GatherDone
	empty := ""
	s.tracker.Update(StatusPatch{
		Status:         &done,
		CompletedMalls: &total,
		CurrentMall:    &empty,
	})
	logger.Info().Int("malls", total).Msg("Gather run complete")
}

// processMall reconciles one mall and its store directory. Failures are
// logged and swallowed so one bad mall never aborts the run.
func (s *Service) processMall(ctx context.Context, logger arbor.ILogger, source interfaces.MallSource, listing models.MallListing, regionMap map[string]models.Region) {
	if err := s.limiter.Wait(ctx); err != nil {
		return
	}

	region := ResolveRegion(regionMap, models.NormalizeName(listing.Name), listing.Address)

	mall, err := s.storage.Malls().UpsertMall(ctx, &models.Mall{
		Name:    listing.Name,
		Address: listing.Address,
		Region:  region,
		Website: listing.Website,
	})
	if err != nil {
		logger.Warn().Err(err).Str("mall", listing.Name).Msg("Failed to upsert mall")
		return
	}

	stores, err := source.FetchStoreDirectory(ctx, listing)
	if err != nil {
		logger.Warn().Err(err).Str("mall", listing.Name).Msg("Failed to fetch store directory")
		return
	}

	saved := 0
	for _, entry := range stores {
		store, err := s.storage.Stores().UpsertStore(ctx, entry.Name, entry.Category)
		if err != nil {
			logger.Warn().Err(err).Str("store", entry.Name).Msg("Failed to upsert store")
			continue
		}
		floor := ParseFloor(entry.Unit)
		if err := s.storage.MallStores().UpsertMallStore(ctx, mall.ID, store.ID, floor, entry.Unit); err != nil {
			logger.Warn().Err(err).Str("store", entry.Name).Msg("Failed to record mall-store relation")
			continue
		}
		saved++
	}

	logger.Info().
		Str("mall", listing.Name).
		Str("source", source.Name()).
		Int("stores", saved).
		Msg("Mall reconciled")
}

func (s *Service) setCurrentMall(label string) {
	s.tracker.Update(StatusPatch{CurrentMall: &label})
}

func (s *Service) setProgress(currentMall string, completed int) {
	s.tracker.Update(StatusPatch{
		CurrentMall:    &currentMall,
		CompletedMalls: &completed,
	})
}

func (s *Service) fail(msg string) {
	errState := models.GatherError
	s.tracker.Update(StatusPatch{
		Status: &errState,
		Error:  &msg,
	})
}
