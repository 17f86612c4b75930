package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/Shauntjh92/Wifey-app/internal/common"
	"github.com/Shauntjh92/Wifey-app/internal/interfaces"
)

// DataHandler exposes the gather pipeline: kick off a run and poll it
type DataHandler struct {
	gather interfaces.GatherService
	logger arbor.ILogger
}

func NewDataHandler(gather interfaces.GatherService) *DataHandler {
	return &DataHandler{
		gather: gather,
		logger: common.GetLogger(),
	}
}

// GatherHandler starts a background gather run. When a run is already in
// flight its job ID is returned instead of starting another.
func (h *DataHandler) GatherHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	jobID, started, err := h.gather.StartGather(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to start gather")
		WriteError(w, http.StatusInternalServerError, "Failed to start gather run")
		return
	}

	message := "Data gathering started"
	if !started {
		message = "Data gathering already in progress"
	}

	WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  jobID,
		"started": started,
		"message": message,
	})
}

// StatusHandler returns the state of the latest gather run
func (h *DataHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, h.gather.Status())
}
