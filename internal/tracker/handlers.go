package tracker

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/mfreitas/bariatrack/internal/protocol"
)

// HandleGetDay handles GET /v1/day
func HandleGetDay(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeDay(w, store.CurrentDay(), store.CurrentLog())
	}
}

// HandleListDays handles GET /v1/days
func HandleListDays(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := store.Snapshot()

		days := make([]int, 0, len(snap.Logs))
		for day := range snap.Logs {
			days = append(days, day)
		}
		sort.Ints(days)

		summaries := make([]DaySummary, 0, len(days))
		for _, day := range days {
			log := snap.Logs[day]
			summaries = append(summaries, DaySummary{
				Day:              day,
				HasLog:           true,
				IsCompleted:      log.IsCompleted,
				ConsumedCalories: log.ConsumedCalories,
				WaterIntake:      log.WaterIntake,
				Weight:           log.Weight,
			})
		}

		writeJSON(w, http.StatusOK, DaysResponse{
			CurrentDay: snap.CurrentDay,
			TotalDays:  protocol.TotalDays,
			Days:       summaries,
		})
	}
}

// HandleSelectDay handles POST /v1/day/select
func HandleSelectDay(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectDayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		if err := store.SelectDay(r.Context(), req.Day); err != nil {
			if errors.Is(err, ErrDayOutOfRange) {
				writeError(w, http.StatusBadRequest, "day_out_of_range", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeDay(w, store.CurrentDay(), store.CurrentLog())
	}
}

// HandleAddWater handles POST /v1/day/water
func HandleAddWater(store *Store, defaultAmountMl int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddWaterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}
		if req.AmountMl == 0 {
			req.AmountMl = defaultAmountMl
		}

		log, err := store.AddWater(r.Context(), req.AmountMl)
		if err != nil {
			if errors.Is(err, ErrInvalidAmount) {
				writeError(w, http.StatusBadRequest, "invalid_amount", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeDay(w, store.CurrentDay(), log)
	}
}

// HandleSetWeight handles PUT /v1/day/weight
func HandleSetWeight(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetWeightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		log, err := store.SetWeight(r.Context(), req.WeightKg)
		if err != nil {
			if errors.Is(err, ErrInvalidWeight) {
				writeError(w, http.StatusBadRequest, "invalid_weight", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeDay(w, store.CurrentDay(), log)
	}
}

// HandleToggleItem handles POST /v1/day/items/toggle
func HandleToggleItem(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ToggleItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}
		if req.ItemID == "" {
			writeError(w, http.StatusBadRequest, "missing_item_id", "item_id is required")
			return
		}

		log, err := store.ToggleItem(r.Context(), req.ItemID)
		if err != nil {
			if errors.Is(err, ErrUnknownItem) {
				writeError(w, http.StatusNotFound, "item_not_found", err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeDay(w, store.CurrentDay(), log)
	}
}

// HandleAddCustomItem handles POST /v1/day/custom
func HandleAddCustomItem(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddCustomItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
			return
		}

		item, err := store.AddCustomItem(r.Context(), req.EventID, req.Name, req.Calories)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyName):
				writeError(w, http.StatusBadRequest, "missing_name", err.Error())
			case errors.Is(err, ErrInvalidCalories):
				writeError(w, http.StatusBadRequest, "invalid_calories", err.Error())
			case errors.Is(err, ErrUnknownEvent):
				writeError(w, http.StatusNotFound, "event_not_found", err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			}
			return
		}

		writeJSON(w, http.StatusCreated, item)
	}
}

// HandleRemoveCustomItem handles DELETE /v1/day/custom/{id}
func HandleRemoveCustomItem(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing_id", "custom item id is required")
			return
		}

		log, err := store.RemoveCustomItem(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeDay(w, store.CurrentDay(), log)
	}
}

// HandleFinishDay handles POST /v1/day/finish
func HandleFinishDay(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := store.FinishDay(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func writeDay(w http.ResponseWriter, day int, log DailyLog) {
	writeJSON(w, http.StatusOK, DayResponse{
		Day:       day,
		TotalDays: protocol.TotalDays,
		Log:       log,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
