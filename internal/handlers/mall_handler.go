package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// MallHandler serves the reconciled mall and store records
type MallHandler struct {
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

func NewMallHandler(storage interfaces.StorageManager) *MallHandler {
	return &MallHandler{
		storage: storage,
		logger:  common.GetLogger(),
	}
}

// ListMallsHandler returns all malls, optionally filtered by ?region=
func (h *MallHandler) ListMallsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	malls, err := h.storage.Malls().ListMalls(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list malls")
		WriteError(w, http.StatusInternalServerError, "Failed to list malls")
		return
	}

	if region := r.URL.Query().Get("region"); region != "" {
		filtered := make([]*models.Mall, 0, len(malls))
		for _, mall := range malls {
			if strings.EqualFold(string(mall.Region), region) {
				filtered = append(filtered, mall)
			}
		}
		malls = filtered
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"malls": malls,
		"count": len(malls),
	})
}

// GetMallHandler returns one mall with its resident stores
func (h *MallHandler) GetMallHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/malls/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "Invalid mall ID")
		return
	}

	mall, err := h.storage.Malls().GetMall(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Mall not found")
		return
	}

	relations, err := h.storage.MallStores().ListByMall(r.Context(), mall.ID)
	if err != nil {
		h.logger.Error().Err(err).Str("mall_id", mall.ID).Msg("Failed to list mall stores")
		WriteError(w, http.StatusInternalServerError, "Failed to load mall stores")
		return
	}

	stores, err := h.storage.Stores().ListStores(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list stores")
		WriteError(w, http.StatusInternalServerError, "Failed to load stores")
		return
	}
	storesByID := make(map[string]*models.Store, len(stores))
	for _, store := range stores {
		storesByID[store.ID] = store
	}

	entries := make([]models.MallStoreEntry, 0, len(relations))
	for _, rel := range relations {
		store, ok := storesByID[rel.StoreID]
		if !ok {
			continue
		}
		entries = append(entries, models.MallStoreEntry{
			StoreID:    store.ID,
			StoreName:  store.Name,
			Category:   store.Category,
			Floor:      rel.Floor,
			UnitNumber: rel.UnitNumber,
		})
	}

	WriteJSON(w, http.StatusOK, models.MallDetail{
		Mall:   *mall,
		Stores: entries,
	})
}

// ListStoresHandler returns all known stores
func (h *MallHandler) ListStoresHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	stores, err := h.storage.Stores().ListStores(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list stores")
		WriteError(w, http.StatusInternalServerError, "Failed to list stores")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stores": stores,
		"count":  len(stores),
	})
}
