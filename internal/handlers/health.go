package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "creatives/internal/log"
)

type healthResponse struct {
	Status  string    `json:"status"`
	Time    time.Time `json:"time"`
	Origins int       `json:"origins"`
}

// Health reports readiness. It never opens an origin.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Time:   time.Now().UTC(),
	}
	if registry != nil {
		resp.Origins = registry.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
