package handlers

import (
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
	"github.com/Shauntjh92/Wifey-app/internal/models"
)

// SearchHandler ranks malls against a user's shopping list
type SearchHandler struct {
	search interfaces.SearchService
	logger arbor.ILogger
}

func NewSearchHandler(search interfaces.SearchService) *SearchHandler {
	return &SearchHandler{
		search: search,
		logger: common.GetLogger(),
	}
}

// SearchMallsHandler accepts a list of store names and returns malls ranked
// by how many of them each mall contains
func (h *SearchHandler) SearchMallsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req models.SearchRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	stores := make([]string, 0, len(req.Stores))
	for _, name := range req.Stores {
		if strings.TrimSpace(name) != "" {
			stores = append(stores, name)
		}
	}
	if len(stores) == 0 {
		WriteError(w, http.StatusBadRequest, "Provide at least one store name")
		return
	}

	response, err := h.search.Search(r.Context(), stores)
	if err != nil {
		h.logger.Error().Err(err).Msg("Search failed")
		WriteError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	WriteJSON(w, http.StatusOK, response)
}
