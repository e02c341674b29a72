// Package strings provides small string-slice helpers shared across packages.
package strings

import (
	"strings"
)

// DedupeAndTrimLower lowercases and trims every element, drops empties and
// removes duplicates, preserving first-appearance order. Participant address
// lists go through this: 0xAbC… and 0xabc… name the same account, and one
// event must never notify it twice.
//
// Example:
//
//	DedupeAndTrimLower([]string{" 0xAbC ", "0xabc", "", "0xdef"})
//	// Returns: []string{"0xabc", "0xdef"}
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}
