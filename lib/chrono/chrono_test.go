package chrono_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	libtime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"

	toolkit "go.chrono.dev/chrono"
	"go.chrono.dev/clock"
	"go.chrono.dev/internal/chunkedfile"
	"go.chrono.dev/internal/scripttest"
	"go.chrono.dev/lib/chrono"
	"go.chrono.dev/temporal"
	"go.chrono.dev/zone"
)

var (
	est  = time.FixedZone("EST", -5*3600)
	feb3 = time.Date(2001, 2, 3, 4, 5, 6, 7008009, time.UTC)
)

func newModule() starlark.Value {
	return chrono.NewModule(toolkit.New(
		toolkit.WithClock(clock.Fixed(feb3)),
		toolkit.WithZones(zone.Fixed(est)),
	))
}

func TestExecFile(t *testing.T) {
	filenames, err := filepath.Glob(filepath.Join("testdata", "*.star"))
	require.NoError(t, err)
	require.NotEmpty(t, filenames)

	thread := &starlark.Thread{Name: "chrono_test"}
	scripttest.SetReporter(thread, t)
	for _, filename := range filenames {
		for _, chunk := range chunkedfile.Read(filename, t) {
			predeclared := starlark.StringDict{
				"chrono": newModule(),
				"assert": scripttest.Assert,
				"time":   libtime.Module,
			}

			_, err := starlark.ExecFile(thread, filename, chunk.Source, predeclared)
			switch err := err.(type) {
			case *starlark.EvalError:
				found := false
				for i := range err.CallStack {
					posn := err.CallStack.At(i).Pos
					if posn.Filename() == filename {
						chunk.GotError(int(posn.Line), err.Error())
						found = true
						break
					}
				}
				if !found {
					t.Error(err.Backtrace())
				}
			case nil:
				// success
			default:
				t.Errorf("\n%s", err)
			}
			chunk.Done()
		}
	}
}

func eval(t *testing.T, expr string) starlark.Value {
	t.Helper()
	thread := &starlark.Thread{Name: t.Name()}
	v, err := starlark.Eval(thread, "<expr>", expr, starlark.StringDict{
		"chrono": newModule(),
		"time":   libtime.Module,
	})
	require.NoError(t, err, expr)
	return v
}

func TestTimestampValue(t *testing.T) {
	v := eval(t, `chrono.zoned("2001-02-03T04:05:06.007Z", "UTC")`)
	ts, ok := v.(chrono.Timestamp)
	require.True(t, ok, "got %T", v)
	z, ok := ts.Value().(temporal.ZonedTimestamp)
	require.True(t, ok)
	assert.Equal(t, "UTC", z.Zone())
	assert.Equal(t, int64(981173106007), z.EpochMillis())

	h1, err := ts.Hash()
	require.NoError(t, err)
	h2, err := eval(t, `chrono.instant(981173106007)`).Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	assert.Equal(t, starlark.None, eval(t, `chrono.instant(None)`))
}

func TestTimestampDict(t *testing.T) {
	// Timestamps of different kinds denoting one instant are one key.
	thread := &starlark.Thread{Name: t.Name()}
	globals, err := starlark.ExecFile(thread, "dict.star", `
d = {}
d[chrono.instant(0)] = 1
d[chrono.date(0)] = 2
d[chrono.offset("1970-01-01T01:00:00+01:00")] = 3
d[chrono.instant(1)] = 4
`, starlark.StringDict{"chrono": newModule()})
	require.NoError(t, err)
	d := globals["d"].(*starlark.Dict)
	assert.Equal(t, 2, d.Len())
	v, found, err := d.Get(eval(t, `chrono.sql_timestamp(0)`))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, starlark.MakeInt(3), v)

	// A literal with two such keys is a duplicate.
	_, err = starlark.Eval(thread, "<expr>", `{chrono.instant(0): 1, chrono.date(0): 2}`, starlark.StringDict{"chrono": newModule()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestLoadModule(t *testing.T) {
	globals, err := chrono.LoadModule()
	require.NoError(t, err)
	m, ok := globals[chrono.ModuleName]
	require.True(t, ok)
	assert.Same(t, chrono.Module, m)
	for _, name := range []string{"now", "parse", "add", "sub", "iso", "locale", "format", "equal"} {
		attr, err := chrono.Module.Attr(name)
		require.NoError(t, err)
		assert.NotNil(t, attr, name)
	}
}

func TestNowFunc(t *testing.T) {
	saved := toolkit.NowFunc
	defer func() { toolkit.NowFunc = saved }()
	toolkit.NowFunc = func() time.Time { return feb3 }

	thread := &starlark.Thread{Name: t.Name()}
	v, err := starlark.Eval(thread, "<expr>", `chrono.iso(chrono.now())`, starlark.StringDict{"chrono": chrono.Module})
	require.NoError(t, err)
	assert.Equal(t, starlark.String("2001-02-03T04:05:06.007Z"), v)
}
