package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Message is one turn of a conversation sent to the remote model.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request is a single completion request against one model identifier.
type Request struct {
	System   string
	Messages []Message
	Options  Options
}

// Backend abstracts the remote completion endpoint. An implementation issues
// one request to one model and returns the text completion; transport and
// auth failures surface as errors. The backend's own failure behavior is the
// timeout boundary; the gateway imposes none of its own.
type Backend interface {
	Generate(ctx context.Context, model string, req Request) (string, error)
	Close() error
}

// GeminiBackend implements Backend over the Google Gemini API.
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend creates a Gemini-backed completion endpoint.
func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBackend{client: client}, nil
}

// Generate issues one completion request against the named model.
func (b *GeminiBackend) Generate(ctx context.Context, model string, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("no messages in request")
	}

	m := b.client.GenerativeModel(model)
	m.SetTemperature(req.Options.Temperature)
	if req.Options.MaxTokens > 0 {
		m.SetMaxOutputTokens(req.Options.MaxTokens)
	}
	if req.System != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	last := req.Messages[len(req.Messages)-1]
	history := req.Messages[:len(req.Messages)-1]

	if len(history) == 0 {
		resp, err := m.GenerateContent(ctx, genai.Text(last.Content))
		if err != nil {
			return "", fmt.Errorf("failed to generate content: %w", err)
		}
		return extractTextFromResponse(resp)
	}

	cs := m.StartChat()
	cs.History = make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		cs.History = append(cs.History, &genai.Content{
			Role:  toGeminiRole(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("failed to send chat message: %w", err)
	}
	return extractTextFromResponse(resp)
}

// Close releases resources held by the underlying client.
func (b *GeminiBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

// toGeminiRole maps the wire role names onto the Gemini API's role names.
func toGeminiRole(role string) string {
	if role == "assistant" {
		return "model"
	}
	return "user"
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
