package services

import (
	"encoding/json"
	"strings"
)

// Allow-lists for project and asset classification.
var (
	AllowedDisciplines = map[string]bool{
		"graphic": true,
		"3d":      true,
	}
	AllowedStatuses = map[string]bool{
		"draft":     true,
		"published": true,
	}
	AllowedStyleTemplates = map[string]bool{
		"editorial":    true,
		"brutalist":    true,
		"minimal-grid": true,
	}
	AllowedAssetKinds = map[string]bool{
		"image":   true,
		"model3d": true,
		"poster":  true,
	}
	AllowedMimeTypes = map[string]bool{
		"image/jpeg":               true,
		"image/png":                true,
		"image/webp":               true,
		"image/avif":               true,
		"model/gltf-binary":        true,
		"model/gltf+json":          true,
		"application/octet-stream": true,
	}
)

// StringList unmarshals from either a JSON array or a comma-separated
// string; entries are trimmed and empties dropped. Editors paste
// palettes and tags both ways.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*l = splitAndTrim(asString)
		return nil
	}

	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	values := make([]string, 0, len(raw))
	for _, entry := range raw {
		s, ok := entry.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			values = append(values, s)
		}
	}
	*l = values
	return nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

// Slugify lowercases and collapses anything non-alphanumeric to single
// dashes.
func Slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
