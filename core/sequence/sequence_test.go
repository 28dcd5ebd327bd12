package sequence

import (
	"testing"
	"time"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		prefix   string
		scope    string
		want     string
	}{
		{"empty seeds at one", nil, "U", "", "U001"},
		{"max plus one", []string{"U001", "U007", "U003"}, "U", "", "U008"},
		{"malformed ignored", []string{"U001", "Uxyz", "U", "X999", "U00a"}, "U", "", "U002"},
		{"wide numbers", []string{"I999"}, "I", "", "I1000"},
		{"scoped empty", nil, "PR", "2025", "PR-2025-001"},
		{"scoped max", []string{"PR-2025-001", "PR-2025-004"}, "PR", "2025", "PR-2025-005"},
		{"other year ignored", []string{"PR-2024-009", "PR-2025-002"}, "PR", "2025", "PR-2025-003"},
		{"other prefix ignored", []string{"PO-2025-010"}, "PR", "2025", "PR-2025-001"},
		{"longer prefix does not match", []string{"ADJ005"}, "A", "", "A001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(tt.existing, tt.prefix, tt.scope); got != tt.want {
				t.Errorf("Next(%v, %q, %q) = %q, want %q", tt.existing, tt.prefix, tt.scope, got, tt.want)
			}
		})
	}
}

func TestNext_Monotonic(t *testing.T) {
	var keys []string
	prev := 0
	for i := 0; i < 25; i++ {
		k := Next(keys, "DS", "")
		n, ok := Parse(k, "DS", "")
		if !ok {
			t.Fatalf("Parse(%q) failed", k)
		}
		if n <= prev {
			t.Fatalf("sequence not increasing: %d after %d", n, prev)
		}
		prev = n
		keys = append(keys, k)
	}
	// deleting the highest continues from the new maximum, no gap filling below it
	keys = keys[:len(keys)-1]
	if got := Next(keys, "DS", ""); got != "DS025" {
		t.Errorf("after delete Next = %q, want DS025", got)
	}
	keys = append(keys[:3], keys[4:]...)
	if got := Next(keys, "DS", ""); got != "DS025" {
		t.Errorf("after middle delete Next = %q, want DS025", got)
	}
}

func TestYear(t *testing.T) {
	if got := Year(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)); got != "2025" {
		t.Errorf("Year = %q, want 2025", got)
	}
}
