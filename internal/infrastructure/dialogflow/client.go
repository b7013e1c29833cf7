package dialogflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/storechat/backend/config"
	"github.com/storechat/backend/internal/domain"
)

// cloudPlatformScope is the OAuth scope the Dialogflow API requires.
const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Client handles communication with the Dialogflow CX detectIntent API
type Client struct {
	httpClient   *http.Client
	baseURL      string
	projectID    string
	location     string
	agentID      string
	languageCode string
	maxProducts  int
	debug        bool
}

// NewClient creates a Dialogflow CX client. Credentials come from the
// configured service account file, or Application Default Credentials when no
// file is set. Credential resolution failures surface here, at construction
// time, not on the first request.
func NewClient(ctx context.Context, cfg config.DialogflowConfig) (*Client, error) {
	source, err := tokenSource(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMissingCredentials, err)
	}

	httpClient := oauth2.NewClient(ctx, source)
	httpClient.Timeout = 30 * time.Second

	return newClientWithHTTPClient(httpClient, cfg), nil
}

// newClientWithHTTPClient wires a client around a prebuilt HTTP client; tests
// use it to bypass credential resolution.
func newClientWithHTTPClient(httpClient *http.Client, cfg config.DialogflowConfig) *Client {
	return &Client{
		httpClient:   httpClient,
		baseURL:      endpointFor(cfg),
		projectID:    cfg.ProjectID,
		location:     cfg.Location,
		agentID:      cfg.AgentID,
		languageCode: cfg.LanguageCode,
		maxProducts:  cfg.MaxProducts,
	}
}

// SetDebug enables verbose request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// tokenSource resolves an OAuth token source from a service account key file
// or from the ambient environment.
func tokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse credentials file: %w", err)
		}
		return creds.TokenSource, nil
	}

	creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
	if err != nil {
		return nil, err
	}
	return creds.TokenSource, nil
}

// endpointFor returns the regional API endpoint for the configured agent
// location. An explicit endpoint override (tests) wins.
func endpointFor(cfg config.DialogflowConfig) string {
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	if cfg.Location == "" || cfg.Location == "global" {
		return "https://dialogflow.googleapis.com"
	}
	return fmt.Sprintf("https://%s-dialogflow.googleapis.com", cfg.Location)
}

// detectIntentRequest is the detectIntent request body. queryParams asks the
// agent's fulfillment for more product cards than its default.
type detectIntentRequest struct {
	QueryInput  queryInput  `json:"queryInput"`
	QueryParams queryParams `json:"queryParams"`
}

type queryInput struct {
	Text         textInput `json:"text"`
	LanguageCode string    `json:"languageCode"`
}

type textInput struct {
	Text string `json:"text"`
}

type queryParams struct {
	Parameters map[string]any `json:"parameters"`
}

// DetectIntent sends one user utterance to the agent and returns the raw
// query result. One attempt, no retry: a failed round trip degrades to the
// fallback reply at the delivery layer.
func (c *Client) DetectIntent(ctx context.Context, sessionID, text string) (*domain.QueryResult, error) {
	reqURL := fmt.Sprintf("%s/v3/projects/%s/locations/%s/agents/%s/sessions/%s:detectIntent",
		c.baseURL, c.projectID, c.location, c.agentID, sessionID)

	body, err := json.Marshal(detectIntentRequest{
		QueryInput: queryInput{
			Text:         textInput{Text: text},
			LanguageCode: c.languageCode,
		},
		QueryParams: queryParams{
			Parameters: map[string]any{"max_products": c.maxProducts},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "StoreChat/1.0")

	c.debugLog("detectIntent session=%s text=%q", sessionID, text)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDialogflowFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrDialogflowFailure, resp.StatusCode, string(respBody))
	}

	var detectResp domain.DetectIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&detectResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if detectResp.QueryResult == nil {
		return nil, domain.ErrEmptyResponse
	}

	c.debugLog("detectIntent session=%s messages=%d", sessionID, len(detectResp.QueryResult.ResponseMessages))

	return detectResp.QueryResult, nil
}

// debugLog logs a message only when debug mode is enabled
func (c *Client) debugLog(format string, args ...any) {
	if c.debug {
		log.Printf("[DIALOGFLOW] "+format, args...)
	}
}
