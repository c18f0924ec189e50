// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import "strings"

// ParseTags normalizes a raw comma separated tag string. Tags are trimmed and
// lower-cased, empties are dropped and duplicates removed in first-seen order.
// Malformed input never errors; the worst case is an empty result.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	return normalizeTags(strings.Split(raw, ","))
}

func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
