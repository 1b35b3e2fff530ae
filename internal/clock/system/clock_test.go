package system

import (
	"testing"
	"time"
)

func TestNowIsCurrentUTC(t *testing.T) {
	t.Parallel()

	clk := New()

	before := time.Now().UTC()
	got := clk.Now()
	if got.Location() != time.UTC {
		t.Fatalf("Now() location = %v, want UTC", got.Location())
	}
	if got.Before(before.Add(-time.Second)) || got.After(before.Add(time.Second)) {
		t.Fatalf("Now() = %v, want within 1s of %v", got, before)
	}
	if next := clk.Now(); next.Before(got) {
		t.Fatalf("Now() went backwards: %v then %v", got, next)
	}
}
