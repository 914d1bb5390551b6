package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting smoke test against", baseURL)

	fmt.Println("1. Health...")
	if _, ok := sendRequest(baseURL, "GET", "/healthz", nil); !ok {
		fail("Health")
	}
	fmt.Println("PASSED: Health")

	fmt.Println("2. Reading graph...")
	body, ok := sendRequest(baseURL, "GET", "/graph", nil)
	if !ok {
		fail("Graph")
	}
	var graph struct {
		Nodes []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"nodes"`
		Links []json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(body, &graph); err != nil {
		fail("Graph decode: " + err.Error())
	}
	fmt.Printf("PASSED: Graph (%d nodes, %d links)\n", len(graph.Nodes), len(graph.Links))

	fmt.Println("3. Clustering...")
	if _, ok := sendRequest(baseURL, "GET", "/clusters", nil); !ok {
		fail("Clusters")
	}
	fmt.Println("PASSED: Clusters")

	surname := ""
	for _, n := range graph.Nodes {
		if n.Type == "surname" {
			surname = n.ID
			break
		}
	}
	if surname == "" {
		fmt.Println("SKIPPED: no surname nodes, seed the store to run lookups")
		return
	}

	fmt.Println("4. Matches by surname", surname, "...")
	if _, ok := sendRequest(baseURL, "GET", "/matches/by-surname?surname="+url.QueryEscape(surname), nil); !ok {
		fail("Matches by surname")
	}
	fmt.Println("PASSED: Matches by surname")

	fmt.Println("5. Disabling", surname, "...")
	payload := map[string]interface{}{"toggle": []string{surname}}
	if _, ok := sendRequest(baseURL, "POST", "/graph/visibility", payload); !ok {
		fail("Visibility")
	}
	fmt.Println("PASSED: Visibility")
}

func fail(step string) {
	fmt.Println("FAILED:", step)
	os.Exit(1)
}

func sendRequest(baseURL, method, endpoint string, payload interface{}) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}

	return respBody, true
}
