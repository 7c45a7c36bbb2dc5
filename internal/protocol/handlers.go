package protocol

import (
	"encoding/json"
	"net/http"
)

// HandleTimeline handles GET /v1/protocol/timeline
func HandleTimeline(catalog *Catalog, calorieGoalKcal, waterGoalMl int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TimelineResponse{
			TotalDays:       TotalDays,
			CalorieGoalKcal: calorieGoalKcal,
			WaterGoalMl:     waterGoalMl,
			Events:          catalog.Events(),
		})
	}
}
