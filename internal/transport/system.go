package transport

import (
	"net/http"
	"time"
)

func (h *handler) heartbeat(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"timestamp":   float64(time.Now().UnixMilli()) / 1000,
		"version":     Version,
		"api_version": APIVersion,
	})
}

func (h *handler) serverInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "operational",
		"version":     Version,
		"api_version": APIVersion,
		"upload_config": map[string]any{
			"supported_formats":          []string{"csv"},
			"automatic_engine_selection": true,
			"engine_selection_rules": map[string]string{
				"in-memory":   "Files <= 2GB",
				"partitioned": "Files > 2GB (automatic)",
			},
		},
		"engines": map[string]any{
			"in-memory":   map[string]string{"description": "Eager engine for files that fit in memory"},
			"partitioned": map[string]string{"description": "Chunked engine automatically used for files > 2GB"},
		},
	})
}

func (h *handler) listTransformations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"transformations": h.registry.Names()})
}
