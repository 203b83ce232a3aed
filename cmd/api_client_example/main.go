package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "weather-widget server URL")
	location := flag.String("location", "London", "location to search for")
	flag.Parse()

	fmt.Println("Weather Widget API Client Example")
	fmt.Println("=================================")

	client := &http.Client{Timeout: 15 * time.Second}

	// Search for a location
	fmt.Printf("\nSearching for %s...\n", *location)
	body, _ := json.Marshal(map[string]string{"location": *location})
	resp, err := client.Post(*baseURL+"/api/search", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error calling search: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode != http.StatusOK {
		var errBody map[string]string
		json.Unmarshal(respBody, &errBody)
		fmt.Printf("Search failed (%d): %s\n", resp.StatusCode, errBody["error"])
		os.Exit(1)
	}

	var state struct {
		Current struct {
			Name        string  `json:"name"`
			Temperature float64 `json:"temperature"`
			FeelsLike   float64 `json:"feelsLike"`
		} `json:"current"`
		Daily []struct {
			Timestamp   string  `json:"timestamp"`
			Temperature float64 `json:"temperature"`
		} `json:"daily"`
		Dark bool `json:"darkMode"`
	}
	if err := json.Unmarshal(respBody, &state); err != nil {
		fmt.Printf("Error parsing response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nCurrent weather in %s: %.1f°C (feels like %.1f°C)\n",
		state.Current.Name, state.Current.Temperature, state.Current.FeelsLike)
	fmt.Println("\nDaily forecast:")
	for _, day := range state.Daily {
		fmt.Printf("  %s  %.1f°C\n", day.Timestamp, day.Temperature)
	}

	// Flip the theme and show the new mode
	themeResp, err := client.Post(*baseURL+"/api/theme/toggle", "application/json", nil)
	if err != nil {
		fmt.Printf("Error toggling theme: %v\n", err)
		os.Exit(1)
	}
	defer themeResp.Body.Close()

	var themeState map[string]interface{}
	json.NewDecoder(themeResp.Body).Decode(&themeState)
	prettyJSON, _ := json.MarshalIndent(themeState, "", "  ")
	fmt.Printf("\nTheme after toggle:\n%s\n", string(prettyJSON))
}
