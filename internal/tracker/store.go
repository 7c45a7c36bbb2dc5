package tracker

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mfreitas/bariatrack/internal/protocol"
	"github.com/mfreitas/bariatrack/internal/statestore"
)

var (
	ErrDayOutOfRange   = errors.New("day out of range")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidWeight   = errors.New("weight must be positive")
	ErrUnknownItem     = errors.New("item not in protocol catalog")
	ErrUnknownEvent    = errors.New("event not in protocol catalog")
	ErrEmptyName       = errors.New("name is required")
	ErrInvalidCalories = errors.New("calories must be non-negative")
)

// StateStorage persists the serialized application state.
type StateStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store owns the application state and every mutation over it. All
// operations go through the single merge primitive updateCurrentLog,
// and every state change is written back to storage as a side effect
// (last-write-wins; a failed write is logged, never surfaced).
type Store struct {
	mu              sync.RWMutex
	state           AppState
	catalog         *protocol.Catalog
	storage         StateStorage
	initialWeightKg float64
}

// NewStore creates a store with the fresh-install state. Call Load to
// hydrate it from storage.
func NewStore(catalog *protocol.Catalog, storage StateStorage, initialWeightKg float64) *Store {
	return &Store{
		state:           DefaultState(),
		catalog:         catalog,
		storage:         storage,
		initialWeightKg: initialWeightKg,
	}
}

// Load hydrates the state from storage. A missing blob or a parse
// failure falls back to the default state; neither is an error here.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.storage.Get(ctx, StateKey)
	if err != nil {
		if errors.Is(err, statestore.ErrNotFound) {
			log.Println("tracker: no saved state, starting fresh")
			return nil
		}
		return err
	}

	state, err := DecodeState(data)
	if err != nil {
		log.Printf("WARN tracker: failed to parse saved state, starting fresh: %v", err)
		return nil
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// CurrentDay returns the selected day.
func (s *Store) CurrentDay() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentDay
}

// CurrentLog returns the log for the current day. A day with no log
// yet gets a synthesized default: everything zeroed except the weight,
// which carries forward from the previous day's log (or the initial
// default when there is none). Reading never materializes the log.
func (s *Store) CurrentLog() DailyLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLog(s.currentLogLocked())
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make(map[int]DailyLog, len(s.state.Logs))
	for day, l := range s.state.Logs {
		logs[day] = cloneLog(l)
	}
	return AppState{CurrentDay: s.state.CurrentDay, Logs: logs}
}

// SelectDay moves the selection. Out-of-range days are rejected, not
// clamped: the UI only offers valid days, so anything else is a bug
// worth surfacing.
func (s *Store) SelectDay(ctx context.Context, day int) error {
	if day < 1 || day > protocol.TotalDays {
		return ErrDayOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentDay = day
	s.persistLocked(ctx)
	return nil
}

// AddWater adds a positive amount of milliliters to today's intake.
// No upper bound: going over goal is displayed, not prevented.
func (s *Store) AddWater(ctx context.Context, amountMl int) (DailyLog, error) {
	if amountMl <= 0 {
		return DailyLog{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCurrentLog(ctx, func(l *DailyLog) {
		l.WaterIntake += amountMl
	}), nil
}

// SetWeight overwrites today's weight. Setting it twice in one day
// overwrites; no history is kept beyond the per-day value.
func (s *Store) SetWeight(ctx context.Context, weightKg float64) (DailyLog, error) {
	if weightKg <= 0 {
		return DailyLog{}, ErrInvalidWeight
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCurrentLog(ctx, func(l *DailyLog) {
		l.Weight = weightKg
	}), nil
}

// ToggleItem toggles a catalog item on today's checklist. The calorie
// value is resolved from the catalog here, so the running total cannot
// drift between a check and its uncheck.
func (s *Store) ToggleItem(ctx context.Context, itemID string) (DailyLog, error) {
	if !s.catalog.HasItem(itemID) {
		return DailyLog{}, ErrUnknownItem
	}
	calories := s.catalog.ItemCalories(itemID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCurrentLog(ctx, func(l *DailyLog) {
		for i, id := range l.CheckedItems {
			if id == itemID {
				l.CheckedItems = append(l.CheckedItems[:i], l.CheckedItems[i+1:]...)
				l.ConsumedCalories = max(0, l.ConsumedCalories-calories)
				return
			}
		}
		l.CheckedItems = append(l.CheckedItems, itemID)
		l.ConsumedCalories += calories
	}), nil
}

// AddCustomItem appends a free-form food entry to today's log and adds
// its calories to the running total. Always additive: same-named
// entries coexist.
func (s *Store) AddCustomItem(ctx context.Context, eventID, name string, calories int) (CustomFoodItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CustomFoodItem{}, ErrEmptyName
	}
	if calories < 0 {
		return CustomFoodItem{}, ErrInvalidCalories
	}
	if _, ok := s.catalog.Event(eventID); !ok {
		return CustomFoodItem{}, ErrUnknownEvent
	}

	item := CustomFoodItem{
		ID:       uuid.NewString(),
		EventID:  eventID,
		Name:     name,
		Calories: calories,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCurrentLog(ctx, func(l *DailyLog) {
		l.CustomItems = append(l.CustomItems, item)
		l.ConsumedCalories += calories
	})
	return item, nil
}

// RemoveCustomItem removes a custom entry and subtracts its recorded
// calories. Removing an unknown ID is a no-op, not an error.
func (s *Store) RemoveCustomItem(ctx context.Context, itemID string) (DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCurrentLog(ctx, func(l *DailyLog) {
		for i, item := range l.CustomItems {
			if item.ID == itemID {
				l.CustomItems = append(l.CustomItems[:i], l.CustomItems[i+1:]...)
				l.ConsumedCalories = max(0, l.ConsumedCalories-item.Calories)
				return
			}
		}
	}), nil
}

// FinishDay closes out the current day and advances the selection.
// On the final protocol day the selection stays put and the result
// signals completion instead. The new day's log is not pre-created;
// it materializes lazily on its first mutation.
func (s *Store) FinishDay(ctx context.Context) (FinishResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateCurrentLog(ctx, func(l *DailyLog) {
		l.IsCompleted = true
	})

	if s.state.CurrentDay < protocol.TotalDays {
		s.state.CurrentDay++
		s.persistLocked(ctx)
		return FinishResult{CurrentDay: s.state.CurrentDay}, nil
	}

	return FinishResult{CurrentDay: s.state.CurrentDay, ProtocolComplete: true}, nil
}

// updateCurrentLog is the merge primitive every mutation goes through:
// take the (possibly synthesized) current log, apply the change, store
// it under the current day, persist. Caller must hold s.mu.
func (s *Store) updateCurrentLog(ctx context.Context, mutate func(*DailyLog)) DailyLog {
	l := cloneLog(s.currentLogLocked())
	mutate(&l)
	s.state.Logs[s.state.CurrentDay] = l
	s.persistLocked(ctx)
	return cloneLog(l)
}

// currentLogLocked synthesizes the default log for a day that has none
// yet. Pure: calling it twice before any write yields identical
// results. Caller must hold s.mu (read or write).
func (s *Store) currentLogLocked() DailyLog {
	if l, ok := s.state.Logs[s.state.CurrentDay]; ok {
		return l
	}

	weight := s.initialWeightKg
	if prev, ok := s.state.Logs[s.state.CurrentDay-1]; ok {
		weight = prev.Weight
	}

	return DailyLog{
		Weight:       weight,
		CheckedItems: []string{},
		CustomItems:  []CustomFoodItem{},
	}
}

// persistLocked writes the serialized state through the storage
// collaborator. Last-write-wins; failures are logged and swallowed so
// a flaky disk never breaks a tracking action. Caller must hold s.mu.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := EncodeState(s.state)
	if err != nil {
		log.Printf("WARN tracker: failed to encode state: %v", err)
		return
	}
	if err := s.storage.Set(ctx, StateKey, data); err != nil {
		log.Printf("WARN tracker: failed to persist state: %v", err)
	}
}

func cloneLog(l DailyLog) DailyLog {
	out := l
	out.CheckedItems = append([]string{}, l.CheckedItems...)
	out.CustomItems = append([]CustomFoodItem{}, l.CustomItems...)
	return out
}
