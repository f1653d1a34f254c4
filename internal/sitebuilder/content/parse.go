package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNoJSONObject = errors.New("response contains no JSON object")

// extractObject returns the outermost JSON object in a model response,
// tolerating Markdown code fences and surrounding prose.
func extractObject(text string) (map[string]json.RawMessage, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return nil, errNoJSONObject
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	return obj, nil
}

func stringField(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func stringMapField(obj map[string]json.RawMessage, key string) map[string]string {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

func stringListField(obj map[string]json.RawMessage, key string) []string {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	out := list[:0]
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
