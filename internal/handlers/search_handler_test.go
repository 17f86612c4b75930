package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// mockSearchService implements interfaces.SearchService for testing
type mockSearchService struct {
	searchFunc func(ctx context.Context, storeNames []string) (*models.SearchResponse, error)
}

func (m *mockSearchService) Search(ctx context.Context, storeNames []string) (*models.SearchResponse, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, storeNames)
	}
	return &models.SearchResponse{}, nil
}

func executeSearchRequest(handler *SearchHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.SearchMallsHandler(rec, req)
	return rec
}

func TestSearchMallsHandler_Success(t *testing.T) {
	var gotNames []string
	handler := NewSearchHandler(&mockSearchService{
		searchFunc: func(ctx context.Context, storeNames []string) (*models.SearchResponse, error) {
			gotNames = storeNames
			return &models.SearchResponse{
				Results: []models.MallSearchResult{
					{
						Mall:           &models.Mall{Name: "VivoCity"},
						MatchedCount:   1,
						TotalRequested: 1,
					},
				},
				UnmatchedStores: []string{},
			}, nil
		},
	})

	rec := executeSearchRequest(handler, `{"stores": ["Uniqlo"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Uniqlo"}, gotNames)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "VivoCity", resp.Results[0].Mall.Name)
}

func TestSearchMallsHandler_EmptyStoreList(t *testing.T) {
	handler := NewSearchHandler(&mockSearchService{})

	rec := executeSearchRequest(handler, `{"stores": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = executeSearchRequest(handler, `{"stores": ["  ", ""]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "blank names do not count")
}

func TestSearchMallsHandler_MalformedBody(t *testing.T) {
	handler := NewSearchHandler(&mockSearchService{})

	rec := executeSearchRequest(handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchMallsHandler_MethodNotAllowed(t *testing.T) {
	handler := NewSearchHandler(&mockSearchService{})

	req := httptest.NewRequest("GET", "/api/search", nil)
	rec := httptest.NewRecorder()
	handler.SearchMallsHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSearchMallsHandler_ServiceError(t *testing.T) {
	handler := NewSearchHandler(&mockSearchService{
		searchFunc: func(ctx context.Context, storeNames []string) (*models.SearchResponse, error) {
			return nil, fmt.Errorf("storage offline")
		},
	})

	rec := executeSearchRequest(handler, `{"stores": ["Uniqlo"]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
