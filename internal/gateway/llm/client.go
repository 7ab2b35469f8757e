package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/medatlas/medatlas/internal/metrics"
	"github.com/medatlas/medatlas/pkg/apperrors"
)

const (
	defaultBaseURL    = "https://api.openai.com/v1"
	defaultTimeout    = 20 * time.Second
	defaultMaxTokens  = 800
	defaultTemp       = 0.3
	roleSystem        = "system"
	roleUser          = "user"
	roleAssistant     = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// System builds a system message.
func System(content string) Message { return Message{Role: roleSystem, Content: content} }

// User builds a user message.
func User(content string) Message { return Message{Role: roleUser, Content: content} }

// Assistant builds an assistant message.
func Assistant(content string) Message { return Message{Role: roleAssistant, Content: content} }

// Client is the text-generation collaborator. Implementations make a single
// attempt per call; retries are the caller's concern (and are deliberately
// absent here).
type Client interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// OpenAIClient implements Client against an OpenAI-compatible chat completions
// endpoint.
type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient creates a client. An empty API key is rejected; callers
// choose the demo client in that case.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	return NewOpenAIClientWithOptions(apiKey, model, "", nil)
}

// NewOpenAIClientWithOptions allows overriding base URL and HTTP client (used
// for tests).
func NewOpenAIClientWithOptions(apiKey, model, baseURL string, httpClient *http.Client) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Chat sends the message list and returns the generated text.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: defaultTemp,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", apperrors.Internal("failed to encode chat request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Internal("failed to build chat request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest("llm", "chat", "error", time.Since(start))
		return "", apperrors.UpstreamProvider("chat request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordUpstreamRequest("llm", "chat", "error", time.Since(start))
		return "", apperrors.UpstreamProvider("chat request failed",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		metrics.RecordUpstreamRequest("llm", "chat", "error", time.Since(start))
		return "", apperrors.UpstreamProvider("failed to decode chat response", err)
	}
	if len(envelope.Choices) == 0 || envelope.Choices[0].Message.Content == "" {
		metrics.RecordUpstreamRequest("llm", "chat", "error", time.Since(start))
		return "", apperrors.UpstreamProvider("chat response missing content", nil)
	}

	metrics.RecordUpstreamRequest("llm", "chat", "success", time.Since(start))
	return envelope.Choices[0].Message.Content, nil
}

// StripJSONFences removes surrounding Markdown code fences so structured
// responses can be unmarshalled directly.
func StripJSONFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}
