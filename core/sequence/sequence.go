// Package sequence allocates the next identifier for an entity type from the keys already in use.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Width is the minimum number of digits in a rendered sequence number.
const Width = 3

// Next returns the key one past the highest numeric suffix among existing keys that carry prefix
// (and scope, when given). Keys that do not parse are ignored. With no match the sequence starts at 1.
//
//	Next([]string{"U001", "U007"}, "U", "")          == "U008"
//	Next(nil, "PR", "2025")                          == "PR-2025-001"
//	Next([]string{"PR-2024-009"}, "PR", "2025")      == "PR-2025-001"
func Next(existing []string, prefix, scope string) string {
	max := 0
	for _, key := range existing {
		if n, ok := Parse(key, prefix, scope); ok && n > max {
			max = n
		}
	}
	return Format(prefix, scope, max+1)
}

// Format renders a key for sequence number n.
func Format(prefix, scope string, n int) string {
	if scope == "" {
		return fmt.Sprintf("%s%0*d", prefix, Width, n)
	}
	return fmt.Sprintf("%s-%s-%0*d", prefix, scope, Width, n)
}

// Parse extracts the sequence number of key. It reports false for keys with another prefix or
// scope, or with a non-numeric suffix.
func Parse(key, prefix, scope string) (int, bool) {
	head := prefix
	if scope != "" {
		head = prefix + "-" + scope + "-"
	}
	if !strings.HasPrefix(key, head) {
		return 0, false
	}
	digits := key[len(head):]
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Year is the scope used by dated documents.
func Year(t time.Time) string {
	return strconv.Itoa(t.Year())
}
