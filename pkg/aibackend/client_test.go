package aibackend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freefind/freefind-backend/pkg/config"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(config.AIBackendConfig{
		BaseURL:      server.URL,
		ImageTimeout: 5 * time.Second,
		TextTimeout:  5 * time.Second,
	})
}

func TestEstimateCO2Success(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/estimate-co2" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body EstimateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body.Category != "furniture" || body.Condition != "good" {
			t.Fatalf("unexpected request %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"result": map[string]any{
				"co2Savings": 62.5,
				"unit":       "kg",
				"confidence": 0.9,
			},
		})
	}))

	result, err := client.EstimateCO2(context.Background(), EstimateRequest{Category: "furniture", Condition: "good"})
	if err != nil {
		t.Fatalf("EstimateCO2 returned error: %v", err)
	}
	if result.CO2Savings != 62.5 {
		t.Fatalf("unexpected savings %f", result.CO2Savings)
	}
	if result.Unit != "kg" {
		t.Fatalf("unexpected unit %q", result.Unit)
	}
}

func TestEstimateCO2SuccessFalseIsDependencyError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "model overloaded",
		})
	}))

	_, err := client.EstimateCO2(context.Background(), EstimateRequest{Category: "books", Condition: "fair"})
	if err == nil {
		t.Fatal("expected error for success=false")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestEstimateCO2Non200IsDependencyError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	_, err := client.EstimateCO2(context.Background(), EstimateRequest{Category: "toys", Condition: "good"})
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestAnalyzeImageEncodesBase64(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze-image" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["image"] == "" {
			t.Fatal("expected base64 image payload")
		}
		if body["task"] != TaskCategorize {
			t.Fatalf("unexpected task %q", body["task"])
		}
		category := "furniture"
		json.NewEncoder(w).Encode(analysisResponse{
			Success: true,
			Task:    TaskCategorize,
			Result:  &AnalysisResult{Category: &category},
		})
	}))

	result, err := client.AnalyzeImage(context.Background(), []byte{0xff, 0xd8, 0xff}, "")
	if err != nil {
		t.Fatalf("AnalyzeImage returned error: %v", err)
	}
	if result.Category == nil || *result.Category != "furniture" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestAnalyzeTextSuccess(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze-text" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		title := "Wooden bookshelf"
		json.NewEncoder(w).Encode(analysisResponse{
			Success: true,
			Task:    TaskAnalyze,
			Result:  &AnalysisResult{Title: &title},
		})
	}))

	result, err := client.AnalyzeText(context.Background(), "old shelf, solid oak", "")
	if err != nil {
		t.Fatalf("AnalyzeText returned error: %v", err)
	}
	if result.Title == nil || *result.Title != "Wooden bookshelf" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestNilClientFailsWithDependencyError(t *testing.T) {
	var c *Client
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error from nil client")
	}
	if _, err := c.EstimateCO2(context.Background(), EstimateRequest{}); err == nil {
		t.Fatal("expected error from nil client")
	}
	if New(config.AIBackendConfig{}) != nil {
		t.Fatal("New without base url should return nil client")
	}
}

func TestPingHealthy(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}
