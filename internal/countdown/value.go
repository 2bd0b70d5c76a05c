package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	secsPerMin  = 60
	minsPerHour = 60
	hoursPerDay = 24
	secsPerHour = secsPerMin * minsPerHour
	secsPerDay  = secsPerHour * hoursPerDay
)

// ErrInvalidValue is returned when a countdown string cannot be parsed.
var ErrInvalidValue = errors.New("invalid countdown value")

// Value is a remaining duration in days, hours, minutes and seconds.
// Secs and Mins are in [0,59], Hours in [0,23] and Days is non-negative.
type Value struct {
	Days  int `json:"days"`
	Hours int `json:"hours"`
	Mins  int `json:"mins"`
	Secs  int `json:"secs"`
}

// Initial is the deadline shown when a page mounts.
var Initial = Value{Days: 3, Hours: 22, Mins: 14, Secs: 24}

// Tick applies one borrow-decrement step. When every field is already zero the
// cascade halts: v is returned unchanged and ok is false.
func Tick(v Value) (next Value, ok bool) {
	next = v
	if next.Secs > 0 {
		next.Secs--
		return next, true
	}
	next.Secs = secsPerMin - 1
	if next.Mins > 0 {
		next.Mins--
		return next, true
	}
	next.Mins = minsPerHour - 1
	if next.Hours > 0 {
		next.Hours--
		return next, true
	}
	next.Hours = hoursPerDay - 1
	if next.Days > 0 {
		next.Days--
		return next, true
	}
	return v, false
}

// IsZero reports whether the countdown has reached 00:00:00:00.
func (v Value) IsZero() bool {
	return v == Value{}
}

// Valid reports whether every field is inside its radix.
func (v Value) Valid() bool {
	return v.Days >= 0 &&
		v.Hours >= 0 && v.Hours < hoursPerDay &&
		v.Mins >= 0 && v.Mins < minsPerHour &&
		v.Secs >= 0 && v.Secs < secsPerMin
}

// TotalSeconds decodes the value under the 24h/60m/60s mixed radix.
func (v Value) TotalSeconds() int64 {
	return int64(v.Days)*secsPerDay +
		int64(v.Hours)*secsPerHour +
		int64(v.Mins)*secsPerMin +
		int64(v.Secs)
}

// Duration returns the remaining time as a time.Duration.
func (v Value) Duration() time.Duration {
	return time.Duration(v.TotalSeconds()) * time.Second
}

// FromSeconds encodes a number of seconds. Negative input yields the zero value.
func FromSeconds(total int64) Value {
	if total <= 0 {
		return Value{}
	}
	return Value{
		Days:  int(total / secsPerDay),
		Hours: int(total % secsPerDay / secsPerHour),
		Mins:  int(total % secsPerHour / secsPerMin),
		Secs:  int(total % secsPerMin),
	}
}

// FromDuration encodes d, truncated to whole seconds.
func FromDuration(d time.Duration) Value {
	return FromSeconds(int64(d / time.Second))
}

// Normalize re-encodes v so that every field is inside its radix.
func Normalize(v Value) Value {
	return FromSeconds(v.TotalSeconds())
}

// String formats the value as DD:HH:MM:SS.
func (v Value) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", v.Days, v.Hours, v.Mins, v.Secs)
}

// Cell is one labelled, zero-padded field of the display.
type Cell struct {
	Value string
	Label string
}

// Cells returns the four display cells in Days, Hours, Mins, Secs order.
func (v Value) Cells() []Cell {
	return []Cell{
		{Value: pad(v.Days), Label: "Days"},
		{Value: pad(v.Hours), Label: "Hours"},
		{Value: pad(v.Mins), Label: "Mins"},
		{Value: pad(v.Secs), Label: "Secs"},
	}
}

func pad(n int) string {
	return fmt.Sprintf("%02d", n)
}

// Parse reads a countdown such as "3d22h14m24s". A leading day component is
// optional and the remainder must be a valid Go duration. Plain DD:HH:MM:SS is
// also accepted.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty", ErrInvalidValue)
	}
	if strings.Count(s, ":") == 3 {
		return parseClock(s)
	}

	var days int64
	if i := strings.IndexByte(s, 'd'); i >= 0 {
		n, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil || n < 0 {
			return Value{}, fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}
		days = n
		s = s[i+1:]
	}

	var rest time.Duration
	if s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			return Value{}, fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}
		rest = d
	}
	return FromSeconds(days*secsPerDay + int64(rest/time.Second)), nil
}

func parseClock(s string) (Value, error) {
	parts := strings.Split(s, ":")
	fields := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q", ErrInvalidValue, s)
		}
		fields[i] = n
	}
	v := Value{Days: fields[0], Hours: fields[1], Mins: fields[2], Secs: fields[3]}
	if !v.Valid() {
		return Value{}, fmt.Errorf("%w: %q out of range", ErrInvalidValue, s)
	}
	return v, nil
}
