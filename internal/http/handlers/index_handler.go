package handlers

import "net/http"

// NewIndexHandler returns the GET / service descriptor.
func NewIndexHandler(version string) http.HandlerFunc {
	descriptor := map[string]interface{}{
		"name":        "Energy Ingestion Engine",
		"status":      "ok",
		"version":     version,
		"description": "High-scale telemetry ingestion for smart meters and EV fleets",
		"endpoints": map[string]map[string]string{
			"ingestion": {
				"POST /v1/ingestion/meter":         "Ingest a single smart meter reading",
				"POST /v1/ingestion/vehicle":       "Ingest a single vehicle/charger reading",
				"POST /v1/ingestion/meter/batch":   "Bulk ingest meter readings",
				"POST /v1/ingestion/vehicle/batch": "Bulk ingest vehicle readings",
			},
			"analytics": {
				"GET /v1/analytics/performance/{vehicleId}": "24-hour energy performance summary for a vehicle",
			},
			"live": {
				"GET /v1/live/meter/{meterId}":     "Current live status for a meter",
				"GET /v1/live/vehicle/{vehicleId}": "Current live status for a vehicle",
			},
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, descriptor)
	}
}
