package handlers

import (
	"net/http"
	"time"
)

// ServiceInfo describes the running service for /health and /version.
type ServiceInfo struct {
	Name        string
	Version     string
	Description string
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type versionResponse struct {
	Version     string `json:"version"`
	Service     string `json:"service"`
	Description string `json:"description"`
}

// timestampLayout is ISO-8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// now is replaced in tests.
var now = time.Now

// Health handles GET /health.
func Health(info ServiceInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "healthy",
			Service:   info.Name,
			Version:   info.Version,
			Timestamp: now().UTC().Format(timestampLayout),
		})
	}
}

// Version handles GET /version.
func Version(info ServiceInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, versionResponse{
			Version:     info.Version,
			Service:     info.Name,
			Description: info.Description,
		})
	}
}
