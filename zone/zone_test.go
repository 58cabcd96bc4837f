package zone

import (
	"errors"
	"testing"
	"time"
)

func TestFixed(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	if got := Fixed(loc).Default(); got != loc {
		t.Errorf("Default() = %v, want %v", got, loc)
	}
	if got := Fixed(nil).Default(); got != time.UTC {
		t.Errorf("Fixed(nil).Default() = %v, want UTC", got)
	}
}

func TestLoad(t *testing.T) {
	loc, err := Host.Load("UTC")
	if err != nil {
		t.Fatal(err)
	}
	if loc.String() != "UTC" {
		t.Errorf("Load(UTC) = %v", loc)
	}

	for _, name := range []string{"", "  ", "Not/AZone"} {
		_, err := Host.Load(name)
		var unknown *UnknownZoneError
		if !errors.As(err, &unknown) {
			t.Errorf("Load(%q) error = %v, want UnknownZoneError", name, err)
		}
	}
}

func TestNamed(t *testing.T) {
	p, err := Named("UTC")
	if err != nil {
		t.Fatal(err)
	}
	if p.Default().String() != "UTC" {
		t.Errorf("Default() = %v", p.Default())
	}
	if _, err := Named("Nowhere/Special"); err == nil {
		t.Error("Named(Nowhere/Special) succeeded")
	}
}
