package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"newsrelay/internal/config"
	"newsrelay/internal/logging"
	"newsrelay/internal/upstream"

	"github.com/sirupsen/logrus"
)

const serviceName = "Ollama"

// Client talks to an Ollama server's native HTTP API
type Client struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewClient creates a client for the configured server and model
func NewClient(cfg config.OllamaConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Generate runs a single non-streaming completion and returns the
// "response" field untouched.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	jsonData, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"service": serviceName,
		"model":   c.model,
	})
	log.WithField("prompt_chars", len(prompt)).Debug("sending prompt")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &upstream.Error{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &upstream.Error{Service: serviceName, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WithField("status", resp.StatusCode).Warn("generate request rejected")
		return "", &upstream.Error{Service: serviceName, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &upstream.Error{Service: serviceName, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if result.Response == nil {
		return "", &upstream.MissingFieldError{Service: serviceName, Field: "response"}
	}

	log.WithField("response_chars", len(*result.Response)).Debug("response received")
	return *result.Response, nil
}

// Ping checks that the server answers its model listing endpoint
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &upstream.Error{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &upstream.Error{Service: serviceName, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}
