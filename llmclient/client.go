package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medcart-agent/config"
	apperrors "medcart-agent/errors"
	"medcart-agent/web/types"

	"go.uber.org/zap"
)

type chatRequest struct {
	Model       string          `json:"model"`
	Messages    []types.Message `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
	Stream      bool            `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message types.Message `json:"message"`
	} `json:"choices"`
}

// Client talks to a Groq-hosted OpenAI-compatible chat-completions endpoint.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.LLMRequestTimeout},
		logger:     logger,
	}
}

// Chat performs a non-streaming chat completion call against the given model.
// Transient upstream failures (rate limit, model loading) are retried with
// exponential backoff; everything else surfaces immediately.
func (c *Client) Chat(ctx context.Context, model string, messages []types.Message) (string, error) {
	if c.cfg.GroqAPIKey == "" {
		return "", apperrors.WrapError(apperrors.ErrConfiguration, "GROQ_API_KEY not found in environment variables")
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Stream:      false,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", strings.TrimRight(c.cfg.GroqBaseURL, "/"))

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
		if err != nil {
			return "", fmt.Errorf("create chat request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.GroqAPIKey)

		resp, err = c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			// Do not retry on context cancellation/deadline
			if ctx.Err() != nil {
				break
			}
		} else if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			c.logger.Warn("LLM service throttled or unavailable, retrying",
				zap.Int("status", resp.StatusCode), zap.Int("attempt", attempt+1))
			resp = nil
			c.backoffSleep(attempt)
			continue
		} else {
			break
		}
	}
	if resp == nil {
		return "", apperrors.WrapErrorf(apperrors.ErrLLMCommunication, "no response from LLM server: %v", lastErr)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.WrapErrorf(apperrors.ErrLLMCommunication, "read chat response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.WrapErrorf(apperrors.ErrLLMCommunication, "llm server status %s: %s", resp.Status, string(bodyBytes))
	}

	var cr chatResponse
	if err := json.Unmarshal(bodyBytes, &cr); err != nil {
		return "", apperrors.WrapErrorf(apperrors.ErrLLMCommunication, "decode chat response: %v", err)
	}
	if len(cr.Choices) == 0 {
		return "", apperrors.WrapError(apperrors.ErrLLMCommunication, "no response choices from llm server")
	}
	return cr.Choices[0].Message.Content, nil
}

func (c *Client) backoffSleep(attempt int) {
	// Exponential backoff with configurable jitter and cap
	base := c.cfg.RetryDelaySeconds
	if base <= 0 {
		base = time.Second
	}
	d := base * time.Duration(1<<attempt)
	maxWait := c.cfg.LLMBackoffMaxSeconds
	if maxWait > 0 && d > maxWait {
		d = maxWait
	}
	jitterRatio := c.cfg.LLMBackoffJitterRatio
	if jitterRatio < 0 || jitterRatio > 1 {
		jitterRatio = 0.1
	}
	jitter := time.Duration(float64(d) * jitterRatio)
	time.Sleep(d - jitter + time.Duration(time.Now().UnixNano()%int64(2*jitter+1)))
}
