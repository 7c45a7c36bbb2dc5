package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/mfreitas/bariatrack/internal/protocol"
)

// StateKey is the storage key of the serialized AppState.
const StateKey = "bariatric_app_state"

// DefaultState returns the fresh-install state: day one, no logs.
func DefaultState() AppState {
	return AppState{
		CurrentDay: 1,
		Logs:       map[int]DailyLog{},
	}
}

// DecodeState parses a persisted state blob and applies the additive
// migrations older saves need. It never mutates fields that are
// already present, so re-decoding migrated output is a no-op.
func DecodeState(data []byte) (AppState, error) {
	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return AppState{}, fmt.Errorf("parse state: %w", err)
	}

	if state.Logs == nil {
		state.Logs = map[int]DailyLog{}
	}

	// Saves written before custom items existed lack the field entirely.
	for day, log := range state.Logs {
		if log.CustomItems == nil {
			log.CustomItems = []CustomFoodItem{}
			state.Logs[day] = log
		}
	}

	// Defend against a corrupted day pointer rather than carrying it around.
	if state.CurrentDay < 1 {
		state.CurrentDay = 1
	}
	if state.CurrentDay > protocol.TotalDays {
		state.CurrentDay = protocol.TotalDays
	}

	return state, nil
}

// EncodeState serializes the state in the durable save format.
func EncodeState(state AppState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}
