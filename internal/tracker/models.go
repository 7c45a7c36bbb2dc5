package tracker

// DailyLog is one day's tracked activity. Field names follow the
// persisted save format and must not change without a migration.
type DailyLog struct {
	WaterIntake      int              `json:"waterIntake"`
	ConsumedCalories int              `json:"consumedCalories"`
	Weight           float64          `json:"weight"`
	CheckedItems     []string         `json:"checkedItems"`
	CustomItems      []CustomFoodItem `json:"customItems"`
	IsCompleted      bool             `json:"isCompleted"`
}

// CustomFoodItem is a free-form food entry attached to a meal slot,
// added via estimation or manual entry.
type CustomFoodItem struct {
	ID       string `json:"id"`
	EventID  string `json:"eventId"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// AppState is the durable application state: the selected day and the
// sparse per-day logs. Days without activity have no entry.
type AppState struct {
	CurrentDay int              `json:"currentDay"`
	Logs       map[int]DailyLog `json:"logs"`
}

// DayResponse is the response for GET /v1/day and day mutations.
type DayResponse struct {
	Day       int      `json:"day"`
	TotalDays int      `json:"total_days"`
	Log       DailyLog `json:"log"`
}

// DaySummary is one entry of the day-selector listing.
type DaySummary struct {
	Day              int     `json:"day"`
	HasLog           bool    `json:"has_log"`
	IsCompleted      bool    `json:"is_completed"`
	ConsumedCalories int     `json:"consumed_calories"`
	WaterIntake      int     `json:"water_intake"`
	Weight           float64 `json:"weight"`
}

// DaysResponse is the response for GET /v1/days.
type DaysResponse struct {
	CurrentDay int          `json:"current_day"`
	TotalDays  int          `json:"total_days"`
	Days       []DaySummary `json:"days"`
}

// FinishResult reports the outcome of closing out the current day.
type FinishResult struct {
	CurrentDay       int  `json:"current_day"`
	ProtocolComplete bool `json:"protocol_complete"`
}

// SelectDayRequest is the request body for POST /v1/day/select.
type SelectDayRequest struct {
	Day int `json:"day"`
}

// AddWaterRequest is the request body for POST /v1/day/water.
type AddWaterRequest struct {
	AmountMl int `json:"amount_ml"`
}

// SetWeightRequest is the request body for PUT /v1/day/weight.
type SetWeightRequest struct {
	WeightKg float64 `json:"weight_kg"`
}

// ToggleItemRequest is the request body for POST /v1/day/items/toggle.
type ToggleItemRequest struct {
	ItemID string `json:"item_id"`
}

// AddCustomItemRequest is the request body for POST /v1/day/custom.
type AddCustomItemRequest struct {
	EventID  string `json:"event_id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
