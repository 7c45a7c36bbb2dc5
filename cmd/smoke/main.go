package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultAPIBase = "http://localhost:8080"
)

var (
	apiBase      string
	client       = &http.Client{Timeout: 30 * time.Second}
	customItemID string
)

func main() {
	fmt.Println("=== BariaTrack E2E Smoke Test ===")
	fmt.Println()

	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Println()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Get Timeline", testGetTimeline},
		{"Get Current Day", testGetCurrentDay},
		{"Toggle Item", testToggleItem},
		{"Add Water", testAddWater},
		{"Set Weight", testSetWeight},
		{"Add Custom Item", testAddCustomItem},
		{"Remove Custom Item", testRemoveCustomItem},
		{"Untoggle Item", testUntoggleItem},
		{"List Days", testListDays},
		{"Download Progress CSV", testDownloadProgressCSV},
	}

	failed := false
	for i, step := range steps {
		fmt.Printf("[%d/%d] %s... ", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("❌ FAILED\n")
			fmt.Printf("  Error: %v\n\n", err)
			failed = true
			break
		}
		fmt.Printf("✅ OK\n")
	}

	fmt.Println()
	if failed {
		fmt.Println("❌ SMOKE TEST FAILED")
		os.Exit(1)
	}

	fmt.Println("✅ ALL SMOKE TESTS PASSED")
}

func testHealthz() error {
	resp, err := client.Get(apiBase + "/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func testGetTimeline() error {
	resp, err := client.Get(apiBase + "/v1/protocol/timeline")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	var timeline struct {
		TotalDays int `json:"total_days"`
		Events    []struct {
			ID string `json:"id"`
		} `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&timeline); err != nil {
		return err
	}
	if timeline.TotalDays == 0 || len(timeline.Events) == 0 {
		return fmt.Errorf("empty timeline: %+v", timeline)
	}
	return nil
}

func testGetCurrentDay() error {
	resp, err := client.Get(apiBase + "/v1/day")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func testToggleItem() error {
	return postJSON("/v1/day/items/toggle", map[string]any{"item_id": "food_eggs"}, nil)
}

func testUntoggleItem() error {
	return postJSON("/v1/day/items/toggle", map[string]any{"item_id": "food_eggs"}, nil)
}

func testAddWater() error {
	return postJSON("/v1/day/water", map[string]any{"amount_ml": 500}, nil)
}

func testSetWeight() error {
	body, err := json.Marshal(map[string]any{"weight_kg": 94.5})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, apiBase+"/v1/day/weight", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func testAddCustomItem() error {
	var created struct {
		ID string `json:"id"`
	}
	if err := postJSON("/v1/day/custom", map[string]any{
		"event_id": "evt_0700_bkf",
		"name":     "Smoke Banana",
		"calories": 60,
	}, &created); err != nil {
		return err
	}
	if created.ID == "" {
		return fmt.Errorf("no item id returned")
	}
	customItemID = created.ID
	return nil
}

func testRemoveCustomItem() error {
	req, err := http.NewRequest(http.MethodDelete, apiBase+"/v1/day/custom/"+customItemID, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func testListDays() error {
	resp, err := client.Get(apiBase + "/v1/days")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

func testDownloadProgressCSV() error {
	resp, err := client.Get(apiBase + "/v1/reports/progress?format=csv")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		return fmt.Errorf("unexpected content type %q", ct)
	}
	return nil
}

func postJSON(path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := client.Post(apiBase+path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("status=%d body=%s", resp.StatusCode, string(body))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
