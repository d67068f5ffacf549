// Package aibackend is the HTTP client for the remote analysis service that
// suggests item metadata from photos and estimates CO2 savings. Every call is
// best-effort: callers fall back to local computation on any failure.
package aibackend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/freefind/freefind-backend/pkg/config"
	pkgerrors "github.com/freefind/freefind-backend/pkg/errors"
)

const (
	// TaskCategorize asks the model to propose listing metadata from a photo.
	TaskCategorize = "categorize"
	// TaskAnalyze asks the model to enrich free text.
	TaskAnalyze = "analyze"
	// TaskEstimateCO2 asks the model for a savings estimate.
	TaskEstimateCO2 = "estimate_co2"
)

// AnalysisResult carries the model's metadata suggestions.
type AnalysisResult struct {
	Category    *string  `json:"category"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Condition   *string  `json:"condition"`
	Confidence  *float64 `json:"confidence"`
}

// EstimateResult carries the model's CO2 estimate.
type EstimateResult struct {
	CO2Savings  float64  `json:"co2Savings"`
	Unit        string   `json:"unit"`
	Confidence  *float64 `json:"confidence"`
	Explanation *string  `json:"explanation"`
}

// EstimateRequest describes the item being estimated.
type EstimateRequest struct {
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type analysisResponse struct {
	Success bool            `json:"success"`
	Task    string          `json:"task"`
	Result  *AnalysisResult `json:"result"`
	Error   *string         `json:"error"`
}

type estimateResponse struct {
	Success bool            `json:"success"`
	Result  *EstimateResult `json:"result"`
	Error   *string         `json:"error"`
}

// Client talks to the AI backend over HTTP.
type Client struct {
	baseURL      string
	imageTimeout time.Duration
	textTimeout  time.Duration
	httpClient   *http.Client
}

// New builds a client from config. Returns nil when no base URL is set; a nil
// client fails every call with a dependency error, which callers treat as
// "remote layer unavailable".
func New(cfg config.AIBackendConfig) *Client {
	if !cfg.Enabled() {
		return nil
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		imageTimeout: cfg.ImageTimeout,
		textTimeout:  cfg.TextTimeout,
		httpClient:   &http.Client{},
	}
}

var errDisabled = pkgerrors.New(pkgerrors.CodeDependency, "ai backend not configured")

// Ping checks GET /health.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return errDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, c.textTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build health request")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ai backend unreachable")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("ai backend unhealthy: status %d", resp.StatusCode))
	}
	return nil
}

// AnalyzeImage submits a photo for metadata suggestions.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, task string) (*AnalysisResult, error) {
	if c == nil {
		return nil, errDisabled
	}
	if task == "" {
		task = TaskCategorize
	}
	body := map[string]string{
		"image": base64.StdEncoding.EncodeToString(image),
		"task":  task,
	}

	var parsed analysisResponse
	if err := c.post(ctx, "/analyze-image", body, c.imageTimeout, &parsed); err != nil {
		return nil, err
	}
	if !parsed.Success || parsed.Result == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, responseError(parsed.Error, "image analysis failed"))
	}
	return parsed.Result, nil
}

// AnalyzeText submits listing text for enrichment.
func (c *Client) AnalyzeText(ctx context.Context, text, task string) (*AnalysisResult, error) {
	if c == nil {
		return nil, errDisabled
	}
	if task == "" {
		task = TaskAnalyze
	}
	body := map[string]string{
		"text": text,
		"task": task,
	}

	var parsed analysisResponse
	if err := c.post(ctx, "/analyze-text", body, c.textTimeout, &parsed); err != nil {
		return nil, err
	}
	if !parsed.Success || parsed.Result == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, responseError(parsed.Error, "text analysis failed"))
	}
	return parsed.Result, nil
}

// EstimateCO2 asks the model for a kg-CO2e savings figure.
func (c *Client) EstimateCO2(ctx context.Context, req EstimateRequest) (*EstimateResult, error) {
	if c == nil {
		return nil, errDisabled
	}

	var parsed estimateResponse
	if err := c.post(ctx, "/estimate-co2", req, c.textTimeout, &parsed); err != nil {
		return nil, err
	}
	if !parsed.Success || parsed.Result == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, responseError(parsed.Error, "co2 estimation failed"))
	}
	return parsed.Result, nil
}

func (c *Client) post(ctx context.Context, path string, body any, timeout time.Duration, dest any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ai backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("ai backend returned status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode ai backend response")
	}
	return nil
}

func responseError(msg *string, fallback string) string {
	if msg != nil && *msg != "" {
		return *msg
	}
	return fallback
}
