package chrono

import (
	"time"

	"go.chrono.dev/clock"
	"go.chrono.dev/temporal"
	"go.chrono.dev/timefmt"
)

// NowFunc is the source of the current time for the package-level
// functions. It may be overridden, for example by programs that need
// deterministic output.
var NowFunc = clock.Host.Now

var std = New(WithClock(clock.Func(func() time.Time { return NowFunc() })))

// Default returns the Toolkit behind the package-level functions.
func Default() *Toolkit { return std }

func Now() temporal.OffsetTimestamp { return std.Now() }

func ToInstant(v any) (*temporal.Instant, error)                 { return std.ToInstant(v) }
func ToOffsetTimestamp(v any) (*temporal.OffsetTimestamp, error) { return std.ToOffsetTimestamp(v) }
func ToZonedTimestamp(v any) (*temporal.ZonedTimestamp, error)   { return std.ToZonedTimestamp(v) }
func ToSQLTimestamp(v any) (*temporal.SQLTimestamp, error)       { return std.ToSQLTimestamp(v) }
func ToDate(v any) (*temporal.Date, error)                       { return std.ToDate(v) }

func InstantsEqual(values ...any) (bool, error) { return std.InstantsEqual(values...) }

func Add(v any, spec any) (temporal.Value, error) { return std.Add(v, spec) }
func Sub(v any, spec any) (temporal.Value, error) { return std.Sub(v, spec) }

func ToISOString(v any) (*string, error) { return std.ToISOString(v) }

func ToLocaleString(v any, style timefmt.Style) (*string, error) {
	return std.ToLocaleString(v, style)
}
