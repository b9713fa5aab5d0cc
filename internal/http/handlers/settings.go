package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/dna-dashboard/internal/settings"
)

func GetSettingsHandler(store settings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeData(w, store.Get(r.Context()))
	}
}

func UpdateSettingsHandler(store settings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch settings.Patch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch == nil {
			writeError(w, http.StatusBadRequest, "Request body must be a JSON object of settings")
			return
		}

		updated, err := store.Update(r.Context(), patch)
		if err != nil {
			if settings.IsValidationError(err) {
				log.Warn("Rejected settings update", "error", err)
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeUpstreamError(w, "updating game settings", err)
			return
		}
		writeData(w, updated)
	}
}

// ExportSettingsHandler serves the bare settings object to game clients.
func ExportSettingsHandler(store settings.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Cache-Control", "max-age=300, s-maxage=300")
		writeJSON(w, http.StatusOK, store.Get(r.Context()))
	}
}
