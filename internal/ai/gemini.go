package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// ErrEmptyResponse is returned when the model answers with no candidate text.
var ErrEmptyResponse = errors.New("gemini returned no candidates")

// GeminiClient talks to the Gemini generateContent REST endpoint.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

var _ TextGenerator = (*GeminiClient)(nil)

// NewGeminiClient builds a client. baseURL is e.g.
// https://generativelanguage.googleapis.com/v1beta.
func NewGeminiClient(apiKey, baseURL, model string, httpClient *http.Client) *GeminiClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GeminiClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

// StartChat returns an empty chat whose history grows with each successful turn.
func (c *GeminiClient) StartChat() Conversation {
	return &geminiChat{client: c}
}

func (c *GeminiClient) generate(ctx context.Context, contents []geminiContent) (string, error) {
	payload, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini status %d: %s", res.StatusCode, string(body))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

type geminiChat struct {
	client *GeminiClient

	mu      sync.Mutex
	history []geminiContent
}

// Send posts the whole history plus prompt. History is only extended when
// the model answers, so a failed call leaves the chat as it was.
func (g *geminiChat) Send(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	turn := geminiContent{Role: RoleUser, Parts: []geminiPart{{Text: prompt}}}
	contents := make([]geminiContent, 0, len(g.history)+1)
	contents = append(contents, g.history...)
	contents = append(contents, turn)

	text, err := g.client.generate(ctx, contents)
	if err != nil {
		return "", err
	}

	g.history = append(contents, geminiContent{Role: RoleModel, Parts: []geminiPart{{Text: text}}})
	return text, nil
}
