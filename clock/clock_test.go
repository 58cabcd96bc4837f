package clock

import (
	"testing"
	"time"
)

func TestHostClockIsCurrent(t *testing.T) {
	before := time.Now()
	got := Host.Now()
	after := time.Now()
	// Allow a small skew between the two clock sources.
	if got.Before(before.Add(-time.Second)) || got.After(after.Add(time.Second)) {
		t.Errorf("Host.Now() = %v, want between %v and %v", got, before, after)
	}
	if got != got.Round(0) {
		t.Error("Host.Now() carries a monotonic reading")
	}
}

func TestFixed(t *testing.T) {
	date := time.Date(1, 2, 3, 4, 5, 6, 7, time.UTC)
	c := Fixed(date)
	if !c.Now().Equal(date) || !c.Now().Equal(date) {
		t.Fatal("Fixed clock moved")
	}
}
