package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// parseMetaFlags turns repeated --meta key=value flags into a metadata map.
// Values that parse as JSON keep their type; everything else stays a string,
// so --meta amount=12.5 yields a number and --meta category=Food a string.
func parseMetaFlags(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --meta %q: expected key=value", pair)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		meta[strings.TrimSpace(key)] = v
	}
	return meta, nil
}

// parseDateFlag parses an optional YYYY-MM-DD flag value.
func parseDateFlag(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return &t, nil
}

// parsePayloadFlag parses an optional JSON object flag value.
func parsePayloadFlag(s string) (map[string]any, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(s), &payload); err != nil {
		return nil, fmt.Errorf("invalid --payload: %w", err)
	}
	return payload, nil
}
