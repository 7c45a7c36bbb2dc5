package tracker

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandleGetDayFreshState(t *testing.T) {
	store, _ := newTestStore(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/day", nil)
	w := httptest.NewRecorder()
	HandleGetDay(store)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp DayResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Day != 1 || resp.TotalDays != 17 {
		t.Fatalf("expected day 1 of 17, got %d of %d", resp.Day, resp.TotalDays)
	}
	if resp.Log.Weight != 95.0 {
		t.Fatalf("expected default weight 95.0, got %v", resp.Log.Weight)
	}
}

func TestHandleSelectDayOutOfRange(t *testing.T) {
	store, _ := newTestStore(t)

	body := []byte(`{"day":18}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/day/select", bytes.NewReader(body))
	w := httptest.NewRecorder()
	HandleSelectDay(store)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", w.Code, w.Body.String())
	}

	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Error.Code != "day_out_of_range" {
		t.Fatalf("expected day_out_of_range, got %s", resp.Error.Code)
	}
}

func TestHandleAddWaterDefaultAmount(t *testing.T) {
	store, _ := newTestStore(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/day/water", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	HandleAddWater(store, 300)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp DayResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Log.WaterIntake != 300 {
		t.Fatalf("expected default 300ml, got %d", resp.Log.WaterIntake)
	}
}

func TestHandleAddWaterNegativeAmount(t *testing.T) {
	store, _ := newTestStore(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/day/water", bytes.NewReader([]byte(`{"amount_ml":-100}`)))
	w := httptest.NewRecorder()
	HandleAddWater(store, 300)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestHandleToggleItemFlow(t *testing.T) {
	store, _ := newTestStore(t)

	body := []byte(`{"item_id":"food_eggs"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/day/items/toggle", bytes.NewReader(body))
	w := httptest.NewRecorder()
	HandleToggleItem(store)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp DayResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Log.ConsumedCalories != 160 {
		t.Fatalf("expected 160 kcal, got %d", resp.Log.ConsumedCalories)
	}
}

func TestHandleToggleItemUnknown(t *testing.T) {
	store, _ := newTestStore(t)

	body := []byte(`{"item_id":"food_pizza"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/day/items/toggle", bytes.NewReader(body))
	w := httptest.NewRecorder()
	HandleToggleItem(store)(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestHandleCustomItemLifecycle(t *testing.T) {
	store, _ := newTestStore(t)

	body := []byte(`{"event_id":"evt_0700_bkf","name":"Banana","calories":60}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/day/custom", bytes.NewReader(body))
	w := httptest.NewRecorder()
	HandleAddCustomItem(store)(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d body=%s", w.Code, w.Body.String())
	}

	var item CustomFoodItem
	if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if item.ID == "" || item.Name != "Banana" {
		t.Fatalf("expected created item, got %+v", item)
	}

	reqDel := httptest.NewRequest(http.MethodDelete, "/v1/day/custom/"+item.ID, nil)
	reqDel.SetPathValue("id", item.ID)
	wDel := httptest.NewRecorder()
	HandleRemoveCustomItem(store)(wDel, reqDel)

	if wDel.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", wDel.Code, wDel.Body.String())
	}

	var resp DayResponse
	if err := json.NewDecoder(wDel.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Log.ConsumedCalories != 0 || len(resp.Log.CustomItems) != 0 {
		t.Fatalf("expected calories restored, got %+v", resp.Log)
	}
}

func TestHandleAddCustomItemEmptyName(t *testing.T) {
	store, _ := newTestStore(t)

	body := []byte(`{"event_id":"evt_0700_bkf","name":"  ","calories":60}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/day/custom", bytes.NewReader(body))
	w := httptest.NewRecorder()
	HandleAddCustomItem(store)(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestHandleFinishDay(t *testing.T) {
	store, _ := newTestStore(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/day/finish", nil)
	w := httptest.NewRecorder()
	HandleFinishDay(store)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}

	var resp FinishResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.CurrentDay != 2 || resp.ProtocolComplete {
		t.Fatalf("expected advance to day 2, got %+v", resp)
	}
}

func TestHandleListDays(t *testing.T) {
	store, _ := newTestStore(t)

	// Materialize a couple of days.
	reqWater := httptest.NewRequest(http.MethodPost, "/v1/day/water", bytes.NewReader([]byte(`{"amount_ml":500}`)))
	HandleAddWater(store, 300)(httptest.NewRecorder(), reqWater)
	reqFinish := httptest.NewRequest(http.MethodPost, "/v1/day/finish", nil)
	HandleFinishDay(store)(httptest.NewRecorder(), reqFinish)

	req := httptest.NewRequest(http.MethodGet, "/v1/days", nil)
	w := httptest.NewRecorder()
	HandleListDays(store)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp DaysResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.CurrentDay != 2 || resp.TotalDays != 17 {
		t.Fatalf("expected current day 2 of 17, got %+v", resp)
	}
	if len(resp.Days) != 1 || resp.Days[0].Day != 1 || !resp.Days[0].IsCompleted {
		t.Fatalf("expected one completed day 1 summary, got %+v", resp.Days)
	}
}
