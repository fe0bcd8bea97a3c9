package hit

import (
	"encoding/json"
	"strings"
)

// Tags reads a tag attribute stored either as a JSON array or as a
// comma-separated string. Sync jobs have produced both formats.
func Tags(attrs map[string]string, key string) []string {
	raw := strings.TrimSpace(attrs[key])
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err == nil {
			return tags
		}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// HasTag reports whether the tag list contains value, case-insensitively.
func HasTag(tags []string, value string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, value) {
			return true
		}
	}
	return false
}
