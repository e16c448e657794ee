package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"elmora-backend/utilities"
)

// Client talks to a generative-AI text completion endpoint. A single request
// per call, no retries; callers that need a guaranteed answer bring their
// own fallback.
type Client struct {
	url    string
	model  string
	apiKey string
	client *http.Client
}

// NewClient builds a client for the given endpoint. The timeout bounds the
// whole request so a slow provider cannot hang a submission.
func NewClient(url, model, apiKey string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		model:  model,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// HasCredential reports whether an API key is configured. Without one the
// caller should not attempt the AI path at all.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// Complete sends the prompt and returns the raw completion text.
func (c *Client) Complete(prompt string) (string, error) {
	requestBody, _ := json.Marshal(map[string]interface{}{
		"model":  c.model,
		"prompt": prompt,
	})

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	fullBody := string(bodyBytes)

	// Streamed responses arrive as one JSON object per line; aggregate the
	// response fields into a single string.
	if strings.Contains(strings.TrimSpace(fullBody), "\n") {
		return AggregateStreamedResponse(fullBody), nil
	}

	var result map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", err
	}
	if responseText, ok := result["response"].(string); ok {
		return responseText, nil
	}

	return "", errors.New("invalid response from completion endpoint")
}

// ResponseChunk is one line of a streamed completion.
type ResponseChunk struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// AggregateStreamedResponse concatenates the response fields of a
// newline-separated stream of JSON chunks into one final string.
func AggregateStreamedResponse(body string) string {
	lines := strings.Split(body, "\n")
	var builder strings.Builder
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		var chunk ResponseChunk
		if err := json.Unmarshal([]byte(trimmed), &chunk); err != nil {
			utilities.Warn("skipping malformed stream chunk: %v", err)
			continue
		}
		builder.WriteString(chunk.Response)
	}
	return builder.String()
}

// ExtractJSON trims markdown code fences and surrounding prose from a model
// completion so the embedded JSON object can be unmarshalled.
func ExtractJSON(completion string) string {
	s := strings.TrimSpace(completion)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}
