package llm

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/career-agent/internal/repair"
)

// ErrExhausted indicates every configured model identifier failed or
// returned an empty body.
var ErrExhausted = errors.New("llm: all models exhausted")

// Apology is what Chat returns when every model fails: a chat surface must
// always answer something.
const Apology = "I'm sorry, I'm having trouble thinking right now. Please try again in a moment."

// jsonInstruction is appended to every structured-mode prompt.
const jsonInstruction = "\n\nRespond with valid JSON only. No markdown formatting."

// Gateway is the single chokepoint for remote model calls. It tries an
// ordered list of model identifiers until one returns a non-empty response.
type Gateway struct {
	backend Backend
	models  []string
	log     *zap.Logger

	// attemptIndex records which model the current call is on. It exists
	// for logging only, is reset at the start of each call, and is not
	// synchronized; it affects no return value.
	attemptIndex int
}

// NewGateway constructs a gateway over the given backend and model config.
func NewGateway(backend Backend, cfg *Config, log *zap.Logger) *Gateway {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		backend: backend,
		models:  cfg.Models(),
		log:     log,
	}
}

// Call sends the prompt to the remote endpoint, iterating the model list in
// order and returning the first non-empty completion. Returns ErrExhausted
// when every model fails or answers empty.
func (g *Gateway) Call(ctx context.Context, prompt, system string, opts Options) (string, error) {
	req := Request{
		System:   system,
		Messages: []Message{{Role: "user", Content: prompt}},
		Options:  opts,
	}
	return g.generate(ctx, req)
}

// CallJSON is Call in structured mode: the prompt is suffixed with a JSON
// instruction and the response is decoded through the four-stage repair
// escalation, which always yields a value. The only error is ErrExhausted.
func (g *Gateway) CallJSON(ctx context.Context, prompt, system string, opts Options) (map[string]any, error) {
	text, err := g.Call(ctx, prompt+jsonInstruction, system, opts)
	if err != nil {
		return nil, err
	}
	return repair.Repair(text), nil
}

// Chat sends a full conversation history and never fails: on total model
// exhaustion it returns the canned apology.
func (g *Gateway) Chat(ctx context.Context, history []Message, system string, opts Options) string {
	req := Request{System: system, Messages: history, Options: opts}
	text, err := g.generate(ctx, req)
	if err != nil {
		return Apology
	}
	return text
}

func (g *Gateway) generate(ctx context.Context, req Request) (string, error) {
	g.attemptIndex = 0
	for i, model := range g.models {
		g.attemptIndex = i
		text, err := g.backend.Generate(ctx, model, req)
		if err != nil {
			g.log.Warn("model attempt failed",
				zap.String("model", model),
				zap.Int("attempt", g.attemptIndex),
				zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			g.log.Warn("model returned empty response",
				zap.String("model", model),
				zap.Int("attempt", g.attemptIndex))
			continue
		}
		g.log.Debug("model responded",
			zap.String("model", model),
			zap.Int("attempt", g.attemptIndex),
			zap.Int("response_length", len(text)))
		return text, nil
	}
	return "", ErrExhausted
}

// Close releases the underlying backend.
func (g *Gateway) Close() error {
	return g.backend.Close()
}
