// Package prompts holds the agent prompt bundle, embedded at build time, and
// a placeholder substitution helper for interpolating caller data into them.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed agents.json
var bundleData []byte

// The bundle is parsed once on first use. A parse failure is permanent: the
// embedded file is fixed at build time, so retrying cannot help.
var (
	bundleOnce sync.Once
	bundle     map[string]string
	bundleErr  error
)

func load() (map[string]string, error) {
	bundleOnce.Do(func() {
		bundleErr = json.Unmarshal(bundleData, &bundle)
	})
	if bundleErr != nil {
		return nil, fmt.Errorf("parse prompt bundle: %w", bundleErr)
	}
	return bundle, nil
}

// Get returns the prompt stored under key.
func Get(key string) (string, error) {
	prompts, err := load()
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("unknown prompt key %q", key)
	}
	return prompt, nil
}

// MustGet returns the prompt stored under key, panicking when it does not
// exist. Prompt keys are string literals fixed at build time, so a miss is a
// programming error rather than a runtime condition.
func MustGet(key string) string {
	prompt, err := Get(key)
	if err != nil {
		panic(err)
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders in a prompt with values from data.
// Placeholders without a matching entry are left in place.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
