package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend scripts one response per model identifier and records the
// order of attempts.
type fakeBackend struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeBackend) Generate(_ context.Context, model string, _ Request) (string, error) {
	f.calls = append(f.calls, model)
	if err, ok := f.errs[model]; ok {
		return "", err
	}
	return f.responses[model], nil
}

func (f *fakeBackend) Close() error { return nil }

func testConfig() *Config {
	return &Config{Primary: "model-a", Fallbacks: []string{"model-b", "model-c"}}
}

func TestGatewayCall_FallsThroughToThirdModel(t *testing.T) {
	backend := &fakeBackend{
		errs:      map[string]error{"model-a": errors.New("quota exceeded")},
		responses: map[string]string{"model-b": "", "model-c": "third model answer"},
	}
	gw := NewGateway(backend, testConfig(), nil)

	got, err := gw.Call(context.Background(), "prompt", "system", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "third model answer", got)
	assert.Equal(t, []string{"model-a", "model-b", "model-c"}, backend.calls)
}

func TestGatewayCall_StopsAtFirstSuccess(t *testing.T) {
	backend := &fakeBackend{
		responses: map[string]string{"model-a": "first answer", "model-b": "never reached"},
	}
	gw := NewGateway(backend, testConfig(), nil)

	got, err := gw.Call(context.Background(), "prompt", "", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "first answer", got)
	assert.Equal(t, []string{"model-a"}, backend.calls)
}

func TestGatewayCall_AllModelsExhausted(t *testing.T) {
	backend := &fakeBackend{
		errs: map[string]error{
			"model-a": errors.New("unavailable"),
			"model-b": errors.New("unavailable"),
			"model-c": errors.New("unavailable"),
		},
	}
	gw := NewGateway(backend, testConfig(), nil)

	got, err := gw.Call(context.Background(), "prompt", "", DefaultOptions())
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Empty(t, got)
	assert.Len(t, backend.calls, 3)
}

func TestGatewayCall_EmptyResponseCountsAsFailure(t *testing.T) {
	backend := &fakeBackend{
		responses: map[string]string{"model-a": "   \n", "model-b": "", "model-c": "\t"},
	}
	gw := NewGateway(backend, testConfig(), nil)

	_, err := gw.Call(context.Background(), "prompt", "", DefaultOptions())
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Len(t, backend.calls, 3)
}

func TestGatewayCallJSON_RepairsResponse(t *testing.T) {
	backend := &fakeBackend{
		responses: map[string]string{"model-a": "```json\n{\"score\": 70}\n``` Hope this helps!"},
	}
	gw := NewGateway(backend, testConfig(), nil)

	got, err := gw.CallJSON(context.Background(), "prompt", "", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, float64(70), got["score"])
}

func TestGatewayCallJSON_GarbageYieldsSentinel(t *testing.T) {
	backend := &fakeBackend{
		responses: map[string]string{"model-a": "sorry, I cannot answer that"},
	}
	gw := NewGateway(backend, testConfig(), nil)

	got, err := gw.CallJSON(context.Background(), "prompt", "", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "partial", got["status"])
}

func TestGatewayCallJSON_Exhausted(t *testing.T) {
	backend := &fakeBackend{
		errs: map[string]error{
			"model-a": errors.New("down"),
			"model-b": errors.New("down"),
			"model-c": errors.New("down"),
		},
	}
	gw := NewGateway(backend, testConfig(), nil)

	got, err := gw.CallJSON(context.Background(), "prompt", "", DefaultOptions())
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Nil(t, got)
}

func TestGatewayChat_ReturnsResponse(t *testing.T) {
	backend := &fakeBackend{
		responses: map[string]string{"model-a": "You're making great progress."},
	}
	gw := NewGateway(backend, testConfig(), nil)

	history := []Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: "how am I doing?"},
	}
	got := gw.Chat(context.Background(), history, "coach persona", DefaultOptions())
	assert.Equal(t, "You're making great progress.", got)
}

func TestGatewayChat_ApologizesOnExhaustion(t *testing.T) {
	backend := &fakeBackend{
		errs: map[string]error{
			"model-a": errors.New("down"),
			"model-b": errors.New("down"),
			"model-c": errors.New("down"),
		},
	}
	gw := NewGateway(backend, testConfig(), nil)

	got := gw.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, "", DefaultOptions())
	assert.Equal(t, Apology, got)
}

func TestConfigModels_Order(t *testing.T) {
	cfg := &Config{Primary: "p", Fallbacks: []string{"f1", "f2"}}
	assert.Equal(t, []string{"p", "f1", "f2"}, cfg.Models())

	noPrimary := &Config{Fallbacks: []string{"f1"}}
	assert.Equal(t, []string{"f1"}, noPrimary.Models())
}
