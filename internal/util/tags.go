package util

import "strings"

// ParseTags splits a comma separated list, trims every entry and drops empty
// ones. Order and duplicates are preserved.
func ParseTags(csv string) []string {
	tags := []string{}
	for _, part := range strings.Split(csv, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
