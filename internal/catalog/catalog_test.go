package catalog

import (
	"strings"
	"testing"
)

func TestMessageFor_DistinctDays(t *testing.T) {
	seen := make(map[string]int)
	for day := 1; day <= 7; day++ {
		msg := MessageFor(day)
		if msg == "" {
			t.Fatalf("MessageFor(%d) returned empty message", day)
		}
		if prev, ok := seen[msg]; ok {
			t.Errorf("MessageFor(%d) duplicates MessageFor(%d): %q", day, prev, msg)
		}
		seen[msg] = day
	}
}

func TestMessageFor_OutOfRange(t *testing.T) {
	for _, day := range []int{0, 8, -1, 100} {
		msg := MessageFor(day)
		if !strings.Contains(msg, "complete. Well done.") {
			t.Errorf("MessageFor(%d) = %q, want generic fallback", day, msg)
		}
		if !strings.Contains(msg, "Day") {
			t.Errorf("MessageFor(%d) = %q, missing day prefix", day, msg)
		}
	}

	if got := MessageFor(0); !strings.Contains(got, "0") {
		t.Errorf("MessageFor(0) = %q, want literal day number", got)
	}
	if got := MessageFor(8); !strings.Contains(got, "8") {
		t.Errorf("MessageFor(8) = %q, want literal day number", got)
	}
}
