package utils

import "strings"

// JoinTags stores a tag list as the comma-joined text column used by the
// content tables. Blank entries are dropped.
func JoinTags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ",")
}

// SplitTags is the inverse of JoinTags. An empty column yields an empty
// (non-nil) slice so JSON responses render [] rather than null.
func SplitTags(tags string) []string {
	out := []string{}
	for _, t := range strings.Split(tags, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
