// Package ai provides summary enhancement and narration synthesis through an
// OpenAI-compatible API. The client is optional: without an API key every
// operation returns ErrDisabled and the rest of the server works normally.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bookbriefapp/bookbrief-server/internal/ratelimit"
)

const (
	// Rate limit outbound calls; burst covers a create-book request that
	// needs both an enhancement and a narration.
	defaultRPS   = 1.0
	defaultBurst = 3

	defaultTimeout = 120 * time.Second

	defaultBaseURL        = "https://api.openai.com/v1"
	defaultChatModel      = "gpt-4o-mini"
	defaultSpeechModel    = "gpt-4o-mini-tts"
	defaultVoice          = "alloy"
	maxEnhanceInputLength = 32 * 1024
)

// Config configures the AI client.
type Config struct {
	APIKey      string // Empty disables the client
	BaseURL     string // OpenAI-compatible endpoint, default api.openai.com
	ChatModel   string
	SpeechModel string
	Voice       string
}

// Client is a rate-limited client for an OpenAI-compatible API.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger

	apiKey      string
	baseURL     string
	chatModel   string
	speechModel string
	voice       string
}

// New creates a new AI client. A client with no API key is valid but
// disabled; Enabled reports false and calls return ErrDisabled.
func New(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = defaultChatModel
	}
	speechModel := cfg.SpeechModel
	if speechModel == "" {
		speechModel = defaultSpeechModel
	}
	voice := cfg.Voice
	if voice == "" {
		voice = defaultVoice
	}

	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:     ratelimit.New(defaultRPS, defaultBurst),
		logger:      logger,
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		chatModel:   chatModel,
		speechModel: speechModel,
		voice:       voice,
	}
}

// Enabled reports whether the client has an API key.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const enhanceSystemPrompt = "You are an editor for a book summary service. " +
	"Rewrite the provided book summary to be clear, engaging and faithful to the source. " +
	"Keep it under 400 words. Return only the rewritten summary with no preamble."

// EnhanceSummary rewrites a draft summary into polished copy.
// Returns the draft's replacement text, or an error.
func (c *Client) EnhanceSummary(ctx context.Context, title, author, draft string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if strings.TrimSpace(draft) == "" {
		return "", ErrEmptyInput
	}
	if len(draft) > maxEnhanceInputLength {
		return "", ErrInputTooLarge
	}

	reqBody := chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: enhanceSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Book: %s by %s\n\nSummary draft:\n%s", title, author, draft)},
		},
	}

	body, err := c.doRequest(ctx, "/chat/completions", reqBody)
	if err != nil {
		return "", wrapError("enhance", err)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", wrapError("enhance", fmt.Errorf("parse response: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", wrapError("enhance", fmt.Errorf("no choices in response"))
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", wrapError("enhance", fmt.Errorf("empty completion"))
	}

	return content, nil
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// SynthesizeNarration converts summary text into spoken audio and returns it
// as a data URL (data:audio/mp3;base64,...) ready to store on the summary.
func (c *Client) SynthesizeNarration(ctx context.Context, text string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}

	reqBody := speechRequest{
		Model:          c.speechModel,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: "mp3",
	}

	audio, err := c.doRequest(ctx, "/audio/speech", reqBody)
	if err != nil {
		return "", wrapError("narrate", err)
	}
	if len(audio) == 0 {
		return "", wrapError("narrate", fmt.Errorf("empty audio response"))
	}

	return "data:audio/mp3;base64," + base64.StdEncoding.EncodeToString(audio), nil
}

// doRequest executes a rate-limited POST with the API key attached.
func (c *Client) doRequest(ctx context.Context, path string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx, "openai"); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("ai request", "path", path, "model", c.chatModel)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
