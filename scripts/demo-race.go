//go:build ignore

// Drives a full Race to Liberty week against a locally running engine:
// registers three entrants, approves them, buys boost packs, prints the
// leaderboard, resolves the week and schedules the winner rewards.
//
// Usage: go run scripts/demo-race.go [http://localhost:8080]
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

var baseURL = "http://localhost:8080"

func main() {
	if len(os.Args) > 1 {
		baseURL = os.Args[1]
	}

	fmt.Println("=== Registering entrants ===")
	entrants := map[string]string{}
	for _, tok := range []struct{ symbol, name string }{
		{"LBRT", "Liberty Token"},
		{"FREE", "Freedom Coin"},
		{"RACE", "Race Finance"},
	} {
		id, err := registerEntrant(tok.symbol, tok.name)
		if err != nil {
			fmt.Printf("✗ register %s: %v\n", tok.symbol, err)
			return
		}
		entrants[tok.symbol] = id
		fmt.Printf("✓ %s registered (%s)\n", tok.symbol, id)

		if err := approveEntrant(id); err != nil {
			fmt.Printf("✗ approve %s: %v\n", tok.symbol, err)
			return
		}
		fmt.Printf("✓ %s approved\n", tok.symbol)
	}

	fmt.Println()
	fmt.Println("=== Buying boost packs ===")
	for symbol, pack := range map[string]string{
		"LBRT": "helicopter",
		"FREE": "motor",
		"RACE": "paddle",
	} {
		if err := applyBoost(entrants[symbol], pack); err != nil {
			fmt.Printf("✗ boost %s: %v\n", symbol, err)
			return
		}
		fmt.Printf("✓ %s bought a %s pack\n", symbol, pack)
	}

	fmt.Println()
	fmt.Println("=== Current leaderboard ===")
	if err := printLeaderboard(); err != nil {
		fmt.Printf("✗ leaderboard: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("=== Resolving previous week ===")
	winnerID, err := resolveWeek()
	if err != nil {
		fmt.Printf("✗ resolve: %v\n", err)
		return
	}
	fmt.Printf("✓ winner resolved (%s)\n", winnerID)

	fmt.Println()
	fmt.Println("=== Scheduling rewards ===")
	if err := schedulePromotions(winnerID); err != nil {
		fmt.Printf("✗ promotions: %v\n", err)
		return
	}
	fmt.Println("✓ cross promotions scheduled")

	fmt.Println()
	fmt.Println("=== Processing announcement queue ===")
	time.Sleep(time.Second)
	if err := processAnnouncements(); err != nil {
		fmt.Printf("✗ announcements: %v\n", err)
		return
	}
	fmt.Println("✓ sweep completed")
}

func registerEntrant(symbol, name string) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	err := post("/api/v1/entrants", map[string]string{
		"symbol":     symbol,
		"name":       name,
		"blockchain": "ethereum",
	}, &resp)
	return resp.ID, err
}

func approveEntrant(id string) error {
	return put("/api/v1/entrants/"+id+"/status", map[string]string{"status": "approved"}, nil)
}

func applyBoost(tokenID, pack string) error {
	return post("/api/v1/boosts", map[string]string{
		"token_id":        tokenID,
		"pack_type":       pack,
		"idempotency_key": fmt.Sprintf("demo-%s-%s-%d", tokenID, pack, time.Now().UnixNano()),
	}, nil)
}

func printLeaderboard() error {
	var entries []struct {
		Position int    `json:"position"`
		Symbol   string `json:"symbol"`
		Score    string `json:"score"`
	}
	if err := get("/api/v1/leaderboard?timeframe=current", &entries); err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("  #%d %-6s %s pts\n", e.Position, e.Symbol, e.Score)
	}
	return nil
}

func resolveWeek() (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	err := post("/api/v1/winners/resolve", map[string]string{}, &resp)
	return resp.ID, err
}

func schedulePromotions(winnerID string) error {
	return post("/api/v1/promotions", map[string]string{
		"weekly_winner_id": winnerID,
		"podcast_episode":  "liberty-weekly-demo",
	}, nil)
}

func processAnnouncements() error {
	return put("/api/v1/announcements/process", nil, nil)
}

func get(path string, out any) error {
	resp, err := http.Get(baseURL + path)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func post(path string, body, out any) error {
	return send(http.MethodPost, path, body, out)
}

func put(path string, body, out any) error {
	return send(http.MethodPut, path, body, out)
}

func send(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}
