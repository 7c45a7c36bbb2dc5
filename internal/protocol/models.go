package protocol

// TotalDays is the fixed length of the recovery protocol.
const TotalDays = 17

// Timeline event types
const (
	TypeMedication = "medication"
	TypeMeal       = "meal"
	TypeHydration  = "hydration"
	TypeBlock      = "block"
	TypeTea        = "tea"
	TypeInfo       = "info"
)

// Item is a selectable entry of a timeline event. Food items carry
// calories; medication items carry a dose and contribute zero calories.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories,omitempty"`
	Dose     string `json:"dose,omitempty"`
}

// TimelineEvent is one time-of-day slot of the daily routine.
type TimelineEvent struct {
	ID                string   `json:"id"`
	Time              string   `json:"time"` // HH:MM
	Title             string   `json:"title"`
	Type              string   `json:"type"`
	Icon              string   `json:"icon,omitempty"`
	Description       string   `json:"description,omitempty"`
	Warning           string   `json:"warning,omitempty"`
	Tip               string   `json:"tip,omitempty"`
	Items             []Item   `json:"items,omitempty"`
	IsRecipe          bool     `json:"is_recipe,omitempty"`
	RecipeIngredients []string `json:"recipe_ingredients,omitempty"`
}

// TimelineResponse is the response for GET /v1/protocol/timeline.
type TimelineResponse struct {
	TotalDays       int             `json:"total_days"`
	CalorieGoalKcal int             `json:"calorie_goal_kcal"`
	WaterGoalMl     int             `json:"water_goal_ml"`
	Events          []TimelineEvent `json:"events"`
}
