package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/mfreitas/bariatrack/internal/protocol"
	"github.com/mfreitas/bariatrack/internal/statestore"
)

func newTestStore(t *testing.T) (*Store, *statestore.MemoryStore) {
	t.Helper()
	storage := statestore.NewMemoryStore()
	store := NewStore(protocol.NewCatalog(protocol.DefaultTimeline()), storage, 95.0)
	return store, storage
}

func TestCurrentLogDefaultsOnFreshState(t *testing.T) {
	store, _ := newTestStore(t)

	log := store.CurrentLog()
	if log.Weight != 95.0 {
		t.Fatalf("expected initial weight 95.0, got %v", log.Weight)
	}
	if log.WaterIntake != 0 || log.ConsumedCalories != 0 || log.IsCompleted {
		t.Fatalf("expected zeroed log, got %+v", log)
	}
	if len(log.CheckedItems) != 0 || len(log.CustomItems) != 0 {
		t.Fatalf("expected empty item lists, got %+v", log)
	}

	// Reading must not materialize the log.
	if _, ok := store.Snapshot().Logs[1]; ok {
		t.Fatal("expected no log entry after a read")
	}
}

func TestCurrentLogCarriesWeightForward(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.SetWeight(ctx, 93.5); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := store.FinishDay(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	log := store.CurrentLog()
	if log.Weight != 93.5 {
		t.Fatalf("expected day 2 to inherit weight 93.5, got %v", log.Weight)
	}

	// Day 3 has no predecessor log yet, so the chain falls back to the
	// initial default rather than walking further than one day back.
	if err := store.SelectDay(ctx, 3); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := store.CurrentLog().Weight; got != 95.0 {
		t.Fatalf("expected day 3 to fall back to 95.0, got %v", got)
	}
}

func TestSelectDayRange(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, day := range []int{0, -1, protocol.TotalDays + 1} {
		if err := store.SelectDay(ctx, day); !errors.Is(err, ErrDayOutOfRange) {
			t.Fatalf("expected ErrDayOutOfRange for day %d, got %v", day, err)
		}
	}

	if err := store.SelectDay(ctx, protocol.TotalDays); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.CurrentDay() != protocol.TotalDays {
		t.Fatalf("expected day %d selected, got %d", protocol.TotalDays, store.CurrentDay())
	}
}

func TestAddWaterAccumulates(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.AddWater(ctx, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}
	if _, err := store.AddWater(ctx, -300); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	if _, err := store.AddWater(ctx, 300); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	log, err := store.AddWater(ctx, 500)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if log.WaterIntake != 800 {
		t.Fatalf("expected 800ml, got %d", log.WaterIntake)
	}
}

func TestSetWeightOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.SetWeight(ctx, 0); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight, got %v", err)
	}

	if _, err := store.SetWeight(ctx, 94.0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	log, err := store.SetWeight(ctx, 93.2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if log.Weight != 93.2 {
		t.Fatalf("expected latest weight to win, got %v", log.Weight)
	}
}

func TestToggleItemAddsAndRemoves(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	log, err := store.ToggleItem(ctx, "food_eggs")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if log.ConsumedCalories != 160 {
		t.Fatalf("expected 160 kcal after check, got %d", log.ConsumedCalories)
	}
	if len(log.CheckedItems) != 1 || log.CheckedItems[0] != "food_eggs" {
		t.Fatalf("expected food_eggs checked, got %v", log.CheckedItems)
	}

	log, err = store.ToggleItem(ctx, "food_eggs")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if log.ConsumedCalories != 0 {
		t.Fatalf("expected calories restored to 0, got %d", log.ConsumedCalories)
	}
	if len(log.CheckedItems) != 0 {
		t.Fatalf("expected checklist empty after uncheck, got %v", log.CheckedItems)
	}
}

func TestToggleItemCaloriesMatchChecklist(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// Checked calories must always equal the catalog sum of the list.
	items := []string{"food_eggs", "food_cheese", "food_chicken_veg", "med_venvanse"}
	for _, id := range items {
		if _, err := store.ToggleItem(ctx, id); err != nil {
			t.Fatalf("expected no error for %s, got %v", id, err)
		}
	}

	log := store.CurrentLog()
	if want := 160 + 120 + 220; log.ConsumedCalories != want {
		t.Fatalf("expected %d kcal (medication counts zero), got %d", want, log.ConsumedCalories)
	}

	if _, err := store.ToggleItem(ctx, "food_cheese"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	log = store.CurrentLog()
	if want := 160 + 220; log.ConsumedCalories != want {
		t.Fatalf("expected %d kcal after uncheck, got %d", want, log.ConsumedCalories)
	}
}

func TestToggleItemUnknownID(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.ToggleItem(context.Background(), "food_pizza"); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}

func TestAddCustomItemValidation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.AddCustomItem(ctx, "evt_0700_bkf", "   ", 100); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := store.AddCustomItem(ctx, "evt_0700_bkf", "Banana", -1); !errors.Is(err, ErrInvalidCalories) {
		t.Fatalf("expected ErrInvalidCalories, got %v", err)
	}
	if _, err := store.AddCustomItem(ctx, "evt_nope", "Banana", 60); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestAddAndRemoveCustomItemRestoresCalories(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.ToggleItem(ctx, "food_eggs"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	item, err := store.AddCustomItem(ctx, "evt_0700_bkf", "Banana", 60)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.ID == "" {
		t.Fatal("expected a generated item ID")
	}

	log := store.CurrentLog()
	if log.ConsumedCalories != 220 {
		t.Fatalf("expected 220 kcal with custom item, got %d", log.ConsumedCalories)
	}

	log, err = store.RemoveCustomItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if log.ConsumedCalories != 160 {
		t.Fatalf("expected 160 kcal after removal, got %d", log.ConsumedCalories)
	}
	if len(log.CustomItems) != 0 {
		t.Fatalf("expected empty custom items, got %v", log.CustomItems)
	}
}

func TestAddCustomItemIsAlwaysAdditive(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.AddCustomItem(ctx, "evt_0700_bkf", "Banana", 60)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := store.AddCustomItem(ctx, "evt_0700_bkf", "Banana", 60)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct IDs for repeated entries")
	}

	log := store.CurrentLog()
	if len(log.CustomItems) != 2 {
		t.Fatalf("expected two coexisting entries, got %d", len(log.CustomItems))
	}
	if log.ConsumedCalories != 120 {
		t.Fatalf("expected 120 kcal, got %d", log.ConsumedCalories)
	}
}

func TestRemoveCustomItemUnknownIDIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.AddCustomItem(ctx, "evt_0700_bkf", "Banana", 60); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	log, err := store.RemoveCustomItem(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("expected no error for unknown ID, got %v", err)
	}
	if len(log.CustomItems) != 1 || log.ConsumedCalories != 60 {
		t.Fatalf("expected log untouched, got %+v", log)
	}
}

func TestFinishDayAdvancesWithoutCreatingNextLog(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.AddWater(ctx, 500); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	result, err := store.FinishDay(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.CurrentDay != 2 || result.ProtocolComplete {
		t.Fatalf("expected advance to day 2, got %+v", result)
	}

	snap := store.Snapshot()
	if !snap.Logs[1].IsCompleted {
		t.Fatal("expected day 1 marked completed")
	}
	if _, ok := snap.Logs[2]; ok {
		t.Fatal("expected day 2 log to stay absent until its first mutation")
	}
}

func TestFinishDayOnFinalDaySignalsCompletion(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.SelectDay(ctx, protocol.TotalDays); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	result, err := store.FinishDay(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.ProtocolComplete {
		t.Fatal("expected protocol completion signal")
	}
	if result.CurrentDay != protocol.TotalDays {
		t.Fatalf("expected selection to stay on day %d, got %d", protocol.TotalDays, result.CurrentDay)
	}
	if !store.Snapshot().Logs[protocol.TotalDays].IsCompleted {
		t.Fatal("expected final day marked completed")
	}
}

func TestMutationsPersistAndReload(t *testing.T) {
	storage := statestore.NewMemoryStore()
	catalog := protocol.NewCatalog(protocol.DefaultTimeline())
	store := NewStore(catalog, storage, 95.0)
	ctx := context.Background()

	if _, err := store.ToggleItem(ctx, "food_eggs"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := store.AddWater(ctx, 500); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := store.FinishDay(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// A second store over the same storage sees the same state.
	reloaded := NewStore(catalog, storage, 95.0)
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if reloaded.CurrentDay() != 2 {
		t.Fatalf("expected reloaded day 2, got %d", reloaded.CurrentDay())
	}
	day1 := reloaded.Snapshot().Logs[1]
	if day1.WaterIntake != 500 || day1.ConsumedCalories != 160 || !day1.IsCompleted {
		t.Fatalf("expected day 1 state to survive reload, got %+v", day1)
	}
}

func TestLoadStartsFreshOnMissingOrCorruptState(t *testing.T) {
	storage := statestore.NewMemoryStore()
	catalog := protocol.NewCatalog(protocol.DefaultTimeline())
	ctx := context.Background()

	store := NewStore(catalog, storage, 95.0)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("expected no error on missing state, got %v", err)
	}
	if store.CurrentDay() != 1 {
		t.Fatalf("expected fresh day 1, got %d", store.CurrentDay())
	}

	if err := storage.Set(ctx, StateKey, []byte("{broken")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	store = NewStore(catalog, storage, 95.0)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("expected corrupt state to fall back, got %v", err)
	}
	if store.CurrentDay() != 1 {
		t.Fatalf("expected fresh day 1 after corrupt state, got %d", store.CurrentDay())
	}
}

func TestTrackingScenario(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := store.ToggleItem(ctx, "food_eggs"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := store.AddWater(ctx, 500); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	item, err := store.AddCustomItem(ctx, "evt_0700_bkf", "Banana", 60)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	log := store.CurrentLog()
	if log.ConsumedCalories != 220 || log.WaterIntake != 500 {
		t.Fatalf("expected 220 kcal / 500ml, got %+v", log)
	}

	log, err = store.RemoveCustomItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if log.ConsumedCalories != 160 {
		t.Fatalf("expected 160 kcal after removal, got %d", log.ConsumedCalories)
	}
}
