package domain

import "strings"

// Tags are persisted as a single comma-joined column. The round trip is
// lossless for tag values without commas, which Validate enforces.

func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags parses the stored form, discarding empty segments.
func SplitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tags = append(tags, p)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
