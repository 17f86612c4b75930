package search

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
	"github.com/Shauntjh92/Wifey-app/internal/storage/badger"
)

func newSearchFixture(t *testing.T) (interfaces.SearchService, interfaces.StorageManager) {
	t.Helper()

	storage, err := badger.NewManager(arbor.NewLogger(), &common.BadgerConfig{
		Path: filepath.Join(t.TempDir(), "badger"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	return NewService(arbor.NewLogger(), storage), storage
}

func seedMall(t *testing.T, storage interfaces.StorageManager, name string, storeNames ...string) *models.Mall {
	t.Helper()
	ctx := context.Background()

	mall, err := storage.Malls().UpsertMall(ctx, &models.Mall{Name: name})
	require.NoError(t, err)

	for _, storeName := range storeNames {
		store, err := storage.Stores().UpsertStore(ctx, storeName, "")
		require.NoError(t, err)
		require.NoError(t, storage.MallStores().UpsertMallStore(ctx, mall.ID, store.ID, "", ""))
	}
	return mall
}

func TestSearch_RanksMallsByMatchCount(t *testing.T) {
	service, storage := newSearchFixture(t)

	seedMall(t, storage, "Tampines Mall", "Uniqlo")
	seedMall(t, storage, "VivoCity", "Uniqlo", "Starbucks", "Din Tai Fung")
	seedMall(t, storage, "Westgate", "Starbucks", "Uniqlo")

	resp, err := service.Search(context.Background(), []string{"uniqlo", "STARBUCKS", "Din Tai Fung"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Empty(t, resp.UnmatchedStores)

	assert.Equal(t, "VivoCity", resp.Results[0].Mall.Name)
	assert.Equal(t, 3, resp.Results[0].MatchedCount)
	assert.Equal(t, "Westgate", resp.Results[1].Mall.Name)
	assert.Equal(t, 2, resp.Results[1].MatchedCount)
	assert.Equal(t, "Tampines Mall", resp.Results[2].Mall.Name)
	assert.Equal(t, 1, resp.Results[2].MatchedCount)

	top := resp.Results[0]
	assert.Equal(t, 3, top.TotalRequested)
	require.Len(t, top.MatchedStores, 3)
	for _, m := range top.MatchedStores {
		assert.True(t, m.Found)
	}

	// Stores the mall lacks are reported as not found in that mall
	last := resp.Results[2]
	foundCount := 0
	for _, m := range last.MatchedStores {
		if m.Found {
			foundCount++
		}
	}
	assert.Equal(t, 1, foundCount)
}

func TestSearch_TieBreaksByMallName(t *testing.T) {
	service, storage := newSearchFixture(t)

	seedMall(t, storage, "Westgate", "Uniqlo")
	seedMall(t, storage, "AMK Hub", "Uniqlo")

	resp, err := service.Search(context.Background(), []string{"Uniqlo"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "AMK Hub", resp.Results[0].Mall.Name)
	assert.Equal(t, "Westgate", resp.Results[1].Mall.Name)
}

func TestSearch_ReportsUnmatchedNames(t *testing.T) {
	service, storage := newSearchFixture(t)

	seedMall(t, storage, "VivoCity", "Uniqlo")

	resp, err := service.Search(context.Background(), []string{"Uniqlo", "No Such Store"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, []string{"No Such Store"}, resp.UnmatchedStores)
}

func TestSearch_NothingMatches(t *testing.T) {
	service, storage := newSearchFixture(t)

	seedMall(t, storage, "VivoCity", "Uniqlo")

	resp, err := service.Search(context.Background(), []string{"Nope", "Also Nope"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, []string{"Nope", "Also Nope"}, resp.UnmatchedStores)
}

func TestSearch_EmptyDatabase(t *testing.T) {
	service, _ := newSearchFixture(t)

	resp, err := service.Search(context.Background(), []string{"Uniqlo"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, []string{"Uniqlo"}, resp.UnmatchedStores)
}

func TestSearch_RequiresInput(t *testing.T) {
	service, _ := newSearchFixture(t)

	_, err := service.Search(context.Background(), nil)
	assert.Error(t, err)
}
