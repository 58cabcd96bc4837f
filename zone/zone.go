// Package zone supplies the default time zone and the zone-rules table
// used to resolve named zones.
//
// The rules themselves come from the Go runtime's tzdata lookup; this
// package only makes the choice of default zone explicit so it can be
// injected rather than read from global state.
package zone // import "go.chrono.dev/zone"

import (
	"fmt"
	"strings"
	"time"
)

// A Provider resolves zone identifiers and names the default zone.
type Provider interface {
	// Default returns the zone assumed when a conversion needs a zone
	// that its input does not carry.
	Default() *time.Location
	// Load returns the rules of the named zone, e.g. "Europe/Berlin".
	Load(name string) (*time.Location, error)
}

// An UnknownZoneError reports a zone identifier that has no rules.
type UnknownZoneError struct {
	Name string
	Err  error
}

func (e *UnknownZoneError) Error() string {
	return fmt.Sprintf("unknown time zone %q: %v", e.Name, e.Err)
}

func (e *UnknownZoneError) Unwrap() error { return e.Err }

// Host uses the process's local zone as the default.
var Host Provider = host{}

type host struct{}

func (host) Default() *time.Location                  { return time.Local }
func (host) Load(name string) (*time.Location, error) { return load(name) }

// Fixed returns a Provider whose default zone is loc.
func Fixed(loc *time.Location) Provider {
	if loc == nil {
		loc = time.UTC
	}
	return fixed{loc}
}

type fixed struct{ loc *time.Location }

func (f fixed) Default() *time.Location                  { return f.loc }
func (f fixed) Load(name string) (*time.Location, error) { return load(name) }

// Named returns a Provider defaulting to the named zone.
func Named(name string) (Provider, error) {
	loc, err := load(name)
	if err != nil {
		return nil, err
	}
	return Fixed(loc), nil
}

func load(name string) (*time.Location, error) {
	// LoadLocation treats "" as UTC and "Local" as the host zone;
	// neither is an identifier a caller should be able to smuggle in.
	if strings.TrimSpace(name) == "" {
		return nil, &UnknownZoneError{Name: name, Err: fmt.Errorf("empty zone name")}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &UnknownZoneError{Name: name, Err: err}
	}
	return loc, nil
}
