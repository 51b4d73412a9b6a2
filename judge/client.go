package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client is a thin, stateless wrapper over the external judge's
// batched HTTP API. It never interprets results; the evaluation
// orchestrator does that.
type Client struct {
	logger  *slog.Logger
	httpc   *http.Client
	baseUrl string
	authKey string // judge api key, sent as X-Auth-Token when set
}

func NewClient(logger *slog.Logger, baseUrl string, authKey string) *Client {
	return &Client{
		logger:  logger.With("module", "judge"),
		httpc:   &http.Client{Timeout: 20 * time.Second},
		baseUrl: strings.TrimRight(baseUrl, "/"),
		authKey: authKey,
	}
}

// NewClientFromEnv builds a client from JUDGE_BASE_URL and the
// optional JUDGE_AUTH_TOKEN.
func NewClientFromEnv() *Client {
	baseUrl := os.Getenv("JUDGE_BASE_URL")
	if baseUrl == "" {
		panic("JUDGE_BASE_URL is not set")
	}
	return NewClient(slog.Default(), baseUrl, os.Getenv("JUDGE_AUTH_TOKEN"))
}

// SubmitBatch creates one judge submission per item and returns their
// tokens in item order. Any transport, auth or decoding failure is an
// error; callers must treat an error (or an empty token list) as the
// judge being unavailable, never as "zero test cases".
func (c *Client) SubmitBatch(ctx context.Context, items []BatchItem) ([]string, error) {
	reqBody := struct {
		Submissions []BatchItem `json:"submissions"`
	}{Submissions: items}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal judge batch: %w", err)
	}

	submitUrl := c.baseUrl + "/submissions/batch?base64_encoded=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, submitUrl, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create judge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authKey != "" {
		req.Header.Set("X-Auth-Token", c.authKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge batch submit failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Warn("judge rejected batch submit",
			"status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("judge batch submit returned status %d", resp.StatusCode)
	}

	var created []struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode judge batch response: %w", err)
	}

	tokens := make([]string, 0, len(created))
	for _, entry := range created {
		if entry.Token == "" {
			return nil, fmt.Errorf("judge returned a submission without a token")
		}
		tokens = append(tokens, entry.Token)
	}
	if len(tokens) != len(items) {
		return nil, fmt.Errorf("judge returned %d tokens for %d submissions",
			len(tokens), len(items))
	}

	c.logger.Debug("submitted batch to judge", "tokens", len(tokens))
	return tokens, nil
}

// PollBatch fetches the current status of every token in one call.
// Results come back in token order and may still be non-terminal.
func (c *Client) PollBatch(ctx context.Context, tokens []string) ([]Result, error) {
	query := url.Values{}
	query.Set("tokens", strings.Join(tokens, ","))
	query.Set("base64_encoded", "false")
	query.Set("fields", "*")

	pollUrl := c.baseUrl + "/submissions/batch?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pollUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create judge poll request: %w", err)
	}
	if c.authKey != "" {
		req.Header.Set("X-Auth-Token", c.authKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("judge batch poll failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("judge batch poll returned status %d", resp.StatusCode)
	}

	var polled struct {
		Submissions []Result `json:"submissions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&polled); err != nil {
		return nil, fmt.Errorf("failed to decode judge poll response: %w", err)
	}
	if len(polled.Submissions) != len(tokens) {
		return nil, fmt.Errorf("judge returned %d results for %d tokens",
			len(polled.Submissions), len(tokens))
	}

	return polled.Submissions, nil
}
