package chrono

import (
	"fmt"
	"time"

	libtime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"

	"go.chrono.dev/duration"
	"go.chrono.dev/temporal"
)

// toGo converts a Starlark timestamp-like value to an input accepted by
// the toolkit.
func toGo(v starlark.Value) (interface{}, error) {
	switch x := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case Timestamp:
		return x.v, nil
	case starlark.String:
		return string(x), nil
	case starlark.Int:
		ms, ok := x.Int64()
		if !ok {
			return nil, fmt.Errorf("epoch milliseconds %v out of range", x)
		}
		return temporal.Instant(ms), nil
	case libtime.Time:
		return time.Time(x), nil
	}
	return nil, fmt.Errorf("got %s, want chrono.timestamp, string, int, time.time or None", v.Type())
}

// toSpec converts a Starlark duration spec to a shape accepted by
// duration.Normalize.
func toSpec(v starlark.Value) (interface{}, error) {
	switch x := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Int:
		n, ok := x.Int64()
		if !ok {
			return nil, fmt.Errorf("number of seconds %v out of range", x)
		}
		return n, nil
	case starlark.Float:
		return float64(x), nil
	case starlark.String:
		return string(x), nil
	case libtime.Duration:
		return time.Duration(x), nil
	case *starlark.Dict:
		pairs := make([]interface{}, 0, 2*x.Len())
		for _, item := range x.Items() {
			p, err := pair(item[0], item[1])
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, p...)
		}
		return duration.Of(pairs...)
	case starlark.Indexable: // list or tuple of pairs
		pairs := make([]interface{}, 0, 2*x.Len())
		for i := 0; i < x.Len(); i++ {
			elem, ok := x.Index(i).(starlark.Indexable)
			if !ok || elem.Len() != 2 {
				return nil, fmt.Errorf("spec element %d: got %s, want a (unit, n) pair", i, x.Index(i).Type())
			}
			p, err := pair(elem.Index(0), elem.Index(1))
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, p...)
		}
		return duration.Of(pairs...)
	}
	return nil, fmt.Errorf("got %s, want a duration spec (int, float, string, time.duration, list or dict)", v.Type())
}

func pair(k, n starlark.Value) ([]interface{}, error) {
	key, ok := starlark.AsString(k)
	if !ok {
		return nil, fmt.Errorf("unit key: got %s, want string", k.Type())
	}
	i, ok := n.(starlark.Int)
	if !ok {
		return nil, fmt.Errorf("quantity for %s: got %s, want int", key, n.Type())
	}
	q, ok := i.Int64()
	if !ok {
		return nil, fmt.Errorf("quantity for %s out of range", key)
	}
	return []interface{}{key, q}, nil
}
