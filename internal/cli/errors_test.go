package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestUsageError(t *testing.T) {
	t.Parallel()
	err := newUsageError("spec: bad document", "Location: /tmp/a.json", "Hint: fix it")
	if got, want := err.Error(), "spec: bad document\nLocation: /tmp/a.json\nHint: fix it"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", err), ErrUsage) {
		t.Fatalf("expected wrapped usage error to match ErrUsage")
	}
	if got := usageErrorf("flag %q: %d", "x", 2).Error(); got != `flag "x": 2` {
		t.Fatalf("usageErrorf = %q", got)
	}
	if errors.Is(errors.New("other"), ErrUsage) {
		t.Fatalf("plain error must not match ErrUsage")
	}
}
