// Dev smoke test: trigger a full sync against a locally running server and
// spot-check the read endpoints. Run with `go run scripts/smoke-sync.go`.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const apiBase = "http://localhost:8080/api/v1"

type syncResult struct {
	Status         string `json:"status"`
	EntityType     string `json:"entity_type"`
	CurrentVersion string `json:"current_version"`
	Synced         int    `json:"synced"`
	Failed         int    `json:"failed"`
}

type syncAllResponse struct {
	Results []syncResult      `json:"results"`
	Errors  map[string]string `json:"errors"`
}

func syncAll() (*syncAllResponse, error) {
	body, _ := json.Marshal(map[string]bool{"force": false})

	resp, err := http.Post(apiBase+"/sync/all", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sync failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var out syncAllResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func countOf(path, field string) (int, error) {
	resp, err := http.Get(apiBase + path)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	var n int
	if raw, ok := body[field]; ok {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func main() {
	start := time.Now()

	fmt.Println("Syncing all entity types...")
	all, err := syncAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sync/all: %v\n", err)
		os.Exit(1)
	}
	for _, result := range all.Results {
		fmt.Printf("  %-16s %-8s version=%s synced=%d failed=%d\n",
			result.EntityType, result.Status, result.CurrentVersion, result.Synced, result.Failed)
	}
	for family, msg := range all.Errors {
		fmt.Printf("  %-16s ERROR: %s\n", family, msg)
	}

	champions, err := countOf("/champions/", "count")
	if err != nil {
		fmt.Fprintf(os.Stderr, "champions: %v\n", err)
		os.Exit(1)
	}
	items, err := countOf("/items/", "total")
	if err != nil {
		fmt.Fprintf(os.Stderr, "items: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nRead back %d champions, %d items (total %s)\n",
		champions, items, time.Since(start).Round(time.Millisecond))

	if len(all.Errors) > 0 {
		os.Exit(1)
	}
}
