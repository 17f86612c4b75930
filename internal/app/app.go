package app

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/handlers"
	"github.com/Shauntjh92/Wifey-app/internal/httpclient"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/services/gather"
	"github.com/Shauntjh92/Wifey-app/internal/services/scheduler"
	"github.com/Shauntjh92/Wifey-app/internal/services/search"
	"github.com/Shauntjh92/Wifey-app/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	GatherService interfaces.GatherService
	SearchService interfaces.SearchService
	Scheduler     *scheduler.Scheduler

	// HTTP handlers
	APIHandler    *handlers.APIHandler
	DataHandler   *handlers.DataHandler
	MallHandler   *handlers.MallHandler
	SearchHandler *handlers.SearchHandler
}

// New creates the application with all services wired
func New(config *common.Config) (*App, error) {
	logger := common.GetLogger()

	storageManager, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Upstream sites set session cookies; keep them across the run
	client, err := httpclient.NewSessionHTTPClient(config.Gather.RequestTimeout)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	fetcher := gather.NewFetcher(client, logger, config.Gather.UserAgent, config.Gather.MaxRetries, time.Second)

	primary := gather.NewSingMallsSource(fetcher, logger, config.Gather.PrimaryBaseURL)
	regions := gather.NewWikipediaRegionMapper(fetcher, logger, config.Gather.RegionSourceURL)

	var secondary interfaces.MallSource
	if config.Gather.SecondaryEnabled {
		secondary = gather.NewCapitaLandSource(
			fetcher, logger,
			config.Gather.SecondaryBaseURL,
			config.Gather.UserAgent,
			config.Gather.BrowserHeadless,
			config.Gather.BrowserNavTimeout,
			config.Gather.BrowserAPIWait,
			config.Gather.DirectoryPageSize,
		)
	}

	gatherService := gather.NewService(logger, storageManager, primary, secondary, regions, &config.Gather)
	searchService := search.NewService(logger, storageManager)

	application := &App{
		Config:         config,
		Logger:         logger,
		StorageManager: storageManager,
		GatherService:  gatherService,
		SearchService:  searchService,
		APIHandler:     handlers.NewAPIHandler(),
		DataHandler:    handlers.NewDataHandler(gatherService),
		MallHandler:    handlers.NewMallHandler(storageManager),
		SearchHandler:  handlers.NewSearchHandler(searchService),
	}

	if config.Scheduler.Enabled {
		application.Scheduler = scheduler.NewScheduler(gatherService, logger)
		if err := application.Scheduler.Start(config.Scheduler.Schedule); err != nil {
			storageManager.Close()
			return nil, fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	logger.Info().
		Bool("secondary_enabled", config.Gather.SecondaryEnabled).
		Bool("scheduler_enabled", config.Scheduler.Enabled).
		Msg("Application initialized")

	return application, nil
}

// Close releases all application resources
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	return nil
}
