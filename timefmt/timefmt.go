// Package timefmt renders timestamps for machines (ISO 8601 in UTC)
// and for people (locale-dependent date and time styles).
package timefmt // import "go.chrono.dev/timefmt"

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"go.chrono.dev/temporal"
)

// ISO returns v as an ISO 8601 string in UTC with exactly three
// fractional digits, e.g. "2001-02-03T04:05:06.007Z", whatever the
// zone or offset of v.
func ISO(v temporal.Value) string {
	return temporal.Instant(v.EpochMillis()).String()
}

// A Style selects how much of a date and time a locale rendering shows.
type Style uint8

const (
	Medium Style = iota // short month name, no zone
	Full                // weekday, long month name and zone
	Long                // long month name and zone
	Short               // numeric date with a two-digit year, no seconds

	numStyles
)

var styleNames = [numStyles]string{
	Medium: "medium",
	Full:   "full",
	Long:   "long",
	Short:  "short",
}

func (s Style) String() string {
	if s < numStyles {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", s)
}

// A StyleError reports a style name that is not one of full, long,
// medium or short.
type StyleError struct {
	Name string
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("invalid locale style %q (want full, long, medium or short)", e.Name)
}

// ParseStyle returns the style with the given case-insensitive name.
// The empty string means Medium.
func ParseStyle(name string) (Style, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Medium, nil
	}
	for s, sn := range styleNames {
		if n == sn {
			return Style(s), nil
		}
	}
	return 0, &StyleError{Name: name}
}

// Locale renders t, in its own location, in the given style using the
// conventions of the supported language that best matches tag.
// Unsupported languages fall back to English.
//
// Locale panics with a temporal.PreconditionViolation if style is not
// one of the declared styles.
func Locale(t time.Time, style Style, tag language.Tag) string {
	if style >= numStyles {
		panic(temporal.PreconditionViolation{Op: "locale", Msg: fmt.Sprintf("invalid style %v", style)})
	}
	loc := lookup(tag)
	return format(t, loc.patterns[style], loc)
}

// Pattern renders t using a CLDR-style date pattern such as
// "EEEE, d MMMM y HH:mm". Letters are fields and text between single
// quotes is copied literally; "''" is a quote. Supported fields:
//
//	EEEE weekday         E   abbreviated weekday
//	MMMM month name      MMM abbreviated month   MM, M month number
//	y    year            yy  two-digit year
//	d, dd day of month
//	H, HH hour (0-23)    h, hh hour (1-12)       a   AM/PM marker
//	mm   minute          ss  second              SSS millisecond
//	z    zone abbreviation, or GMT±hh:mm if the zone has none
//
// Other letters are copied unchanged.
func Pattern(t time.Time, pattern string, tag language.Tag) string {
	return format(t, pattern, lookup(tag))
}

// Languages returns the languages with locale tables, in order of
// preference; the first is the fallback.
func Languages() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match returns the supported language that best matches tag.
func Match(tag language.Tag) language.Tag {
	_, i, _ := matcher.Match(tag)
	return supported[i]
}

func format(t time.Time, pattern string, loc *locale) string {
	var buf strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '\'':
			j := strings.IndexByte(pattern[i+1:], '\'')
			switch {
			case j < 0: // unterminated: rest is literal
				buf.WriteString(pattern[i+1:])
				i = len(pattern)
			case j == 0:
				buf.WriteByte('\'')
				i += 2
			default:
				buf.WriteString(pattern[i+1 : i+1+j])
				i += j + 2
			}
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
			j := i + 1
			for j < len(pattern) && pattern[j] == c {
				j++
			}
			field(&buf, t, c, j-i, loc)
			i = j
		default:
			buf.WriteByte(c)
			i++
		}
	}
	return buf.String()
}

func field(buf *strings.Builder, t time.Time, c byte, n int, loc *locale) {
	num := func(v int) {
		if n >= 2 {
			fmt.Fprintf(buf, "%0*d", n, v)
		} else {
			fmt.Fprintf(buf, "%d", v)
		}
	}
	switch c {
	case 'E':
		name := loc.days[t.Weekday()]
		if n < 4 {
			name = abbrev(name)
		}
		buf.WriteString(name)
	case 'M':
		switch {
		case n >= 4:
			buf.WriteString(loc.months[t.Month()-1])
		case n == 3:
			buf.WriteString(loc.shortMonths[t.Month()-1])
		default:
			num(int(t.Month()))
		}
	case 'y':
		y := t.Year()
		if n == 2 {
			if y < 0 {
				y = -y
			}
			fmt.Fprintf(buf, "%02d", y%100)
		} else {
			num(y)
		}
	case 'd':
		num(t.Day())
	case 'H':
		num(t.Hour())
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		num(h)
	case 'm':
		num(t.Minute())
	case 's':
		num(t.Second())
	case 'S':
		fmt.Fprintf(buf, "%03d", t.Nanosecond()/int(time.Millisecond))
	case 'a':
		if t.Hour() < 12 {
			buf.WriteString(loc.am)
		} else {
			buf.WriteString(loc.pm)
		}
	case 'z':
		buf.WriteString(zoneName(t))
	default:
		buf.WriteString(strings.Repeat(string(c), n))
	}
}

// zoneName returns the zone abbreviation of t, or its offset as
// GMT±hh:mm when the zone has no alphabetic abbreviation.
func zoneName(t time.Time) string {
	name, offset := t.Zone()
	if name != "" && name[0] != '+' && name[0] != '-' && (name[0] < '0' || name[0] > '9') {
		return name
	}
	if offset == 0 {
		return "GMT"
	}
	sign := '+'
	if offset < 0 {
		sign, offset = '-', -offset
	}
	return fmt.Sprintf("GMT%c%02d:%02d", sign, offset/3600, offset/60%60)
}

func abbrev(s string) string {
	r := []rune(s)
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}
