// Package structured extracts JSON payloads from free-form model output.
//
// Generation backends routinely wrap JSON in prose or code fences, so a
// rigid single-pass parser would reject a large fraction of otherwise-valid
// completions. Extract therefore tries a direct parse first and falls back
// to the outermost brace-delimited substring.
package structured

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoStructure reports that no JSON payload could be recovered from the
// text. Callers must treat this as "no structure", not as a fault to
// propagate.
var ErrNoStructure = errors.New("no JSON structure found in response text")

// Extract recovers a JSON value from raw model text into v.
func Extract(raw string, v any) error {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ErrNoStructure
	}

	// Models often emit ```json ... ``` fences around the payload.
	if strings.HasPrefix(text, "```") {
		text = stripFences(text)
	}

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), v); err == nil {
			return nil
		}
	}

	return ErrNoStructure
}

func stripFences(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
