// Package repair recovers structured values from model output that was
// supposed to be JSON but may be fenced, truncated, or otherwise malformed.
package repair

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// previewLimit bounds how many bytes of the raw text the sentinel carries.
const previewLimit = 200

// Repair produces the best-effort structured value for raw model output.
// It escalates through four strategies and never fails:
//
//  1. direct parse of the fence-stripped text
//  2. parse of the longest balanced leading object (drops trailing prose)
//  3. parse after heuristically closing unbalanced quotes, brackets, braces
//  4. a sentinel value carrying a bounded preview of the original text
func Repair(raw string) map[string]any {
	text := StripFences(raw)

	if result, ok := tryParse(text); ok {
		return result
	}

	if prefix := balancedPrefix(text); prefix != "" {
		if result, ok := tryParse(prefix); ok {
			return result
		}
	}

	if closed := closeBrackets(text); closed != text {
		if result, ok := tryParse(closed); ok {
			return result
		}
	}

	preview := raw
	if len(preview) > previewLimit {
		cut := previewLimit
		// Back up so a multibyte rune is never split mid-sequence.
		for cut > 0 && !utf8.RuneStart(preview[cut]) {
			cut--
		}
		preview = preview[:cut]
	}
	return map[string]any{
		"status":      "partial",
		"message":     "Response was truncated",
		"raw_preview": preview,
	}
}

// StripFences removes a leading and trailing Markdown code-fence token if
// present. This is a textual strip, not a parser; models wrap JSON in
// ```json blocks even when told not to.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func tryParse(text string) (map[string]any, bool) {
	var result map[string]any
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, false
	}
	if result == nil {
		return nil, false
	}
	return result, true
}

// balancedPrefix returns the text up to the last offset where the open-brace
// count returns to zero, honoring quoted strings and escape characters. This
// recovers a complete leading object when the model appended trailing prose
// or was cut off after closing the object. Only object depth is tracked; a
// top-level array falls through to the later stages.
func balancedPrefix(text string) string {
	depth := 0
	inString := false
	escaped := false
	lastBalanced := -1
	seenBrace := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
				seenBrace = true
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 && seenBrace {
					lastBalanced = i + 1
				}
			}
		}
	}

	if lastBalanced < 0 {
		return ""
	}
	return text[:lastBalanced]
}

// closeBrackets appends a closing quote when the quote count is odd, then
// enough ']' and '}' to close open arrays and objects, in that order. The
// counters are depth counts rather than a typed stack; pathological input
// mixing both structures unevenly may over- or under-close, which the final
// sentinel stage absorbs.
func closeBrackets(text string) string {
	openBraces := 0
	openBrackets := 0
	quotes := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			openBraces++
		case '}':
			openBraces--
		case '[':
			openBrackets++
		case ']':
			openBrackets--
		case '"':
			if i == 0 || text[i-1] != '\\' {
				quotes++
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(text)
	if quotes%2 != 0 {
		sb.WriteByte('"')
	}
	for i := 0; i < openBrackets; i++ {
		sb.WriteByte(']')
	}
	for i := 0; i < openBraces; i++ {
		sb.WriteByte('}')
	}
	return sb.String()
}
