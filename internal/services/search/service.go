package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// Service ranks malls against a shopping list. Store names are resolved by
// normalized exact match against the canonical record set, then malls are
// ordered by how many of the matched stores each one contains.
type Service struct {
	logger  arbor.ILogger
	storage interfaces.StorageManager
}

// NewService creates a search service
func NewService(logger arbor.ILogger, storage interfaces.StorageManager) interfaces.SearchService {
	return &Service{
		logger:  logger,
		storage: storage,
	}
}

// Search resolves the requested names and returns malls ranked by match
// count, most matches first, ties broken by mall name.
func (s *Service) Search(ctx context.Context, storeNames []string) (*models.SearchResponse, error) {
	if len(storeNames) == 0 {
		return nil, fmt.Errorf("at least one store name is required")
	}

	allStores, err := s.storage.Stores().ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	if len(allStores) == 0 {
		return &models.SearchResponse{
			Results:         []models.MallSearchResult{},
			UnmatchedStores: storeNames,
		}, nil
	}

	byNormalized := make(map[string]*models.Store, len(allStores))
	for _, store := range allStores {
		byNormalized[store.NormalizedName] = store
	}

	var found []models.MatchedStore
	var unmatched []string
	for _, requested := range storeNames {
		store, ok := byNormalized[models.NormalizeName(requested)]
		if !ok {
			unmatched = append(unmatched, requested)
			continue
		}
		found = append(found, models.MatchedStore{
			Requested:   requested,
			MatchedID:   store.ID,
			MatchedName: store.Name,
			Found:       true,
		})
	}

	if len(found) == 0 {
		return &models.SearchResponse{
			Results:         []models.MallSearchResult{},
			UnmatchedStores: unmatched,
		}, nil
	}

	matchedIDs := make([]string, len(found))
	for i, m := range found {
		matchedIDs[i] = m.MatchedID
	}

	relations, err := s.storage.MallStores().ListByStores(ctx, matchedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find malls for stores: %w", err)
	}

	// Group hit store IDs by mall
	mallHits := make(map[string]map[string]bool)
	for _, rel := range relations {
		if mallHits[rel.MallID] == nil {
			mallHits[rel.MallID] = make(map[string]bool)
		}
		mallHits[rel.MallID][rel.StoreID] = true
	}

	results := make([]models.MallSearchResult, 0, len(mallHits))
	for mallID, hits := range mallHits {
		mall, err := s.storage.Malls().GetMall(ctx, mallID)
		if err != nil {
			s.logger.Warn().Err(err).Str("mall_id", mallID).Msg("Skipping mall missing from storage")
			continue
		}

		matchedStores := make([]models.MatchedStore, 0, len(found))
		for _, m := range found {
			if hits[m.MatchedID] {
				matchedStores = append(matchedStores, m)
			}
		}
		for _, m := range found {
			if !hits[m.MatchedID] {
				matchedStores = append(matchedStores, models.MatchedStore{
					Requested: m.Requested,
					Found:     false,
				})
			}
		}

		results = append(results, models.MallSearchResult{
			Mall:           mall,
			MatchedCount:   len(hits),
			TotalRequested: len(storeNames),
			MatchedStores:  matchedStores,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].MatchedCount != results[j].MatchedCount {
			return results[i].MatchedCount > results[j].MatchedCount
		}
		return results[i].Mall.Name < results[j].Mall.Name
	})

	return &models.SearchResponse{
		Results:         results,
		UnmatchedStores: unmatched,
	}, nil
}
