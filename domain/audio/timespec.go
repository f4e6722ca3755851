package audio

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TimeSpec represents a point in time within a media file, in
// [[H:]M:]S[.fraction] format.
type TimeSpec struct {
	Hours   int
	Minutes int
	Seconds float64
}

var (
	integerFieldRegex = regexp.MustCompile(`^\d+$`)
	secondsFieldRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// ParseTimeSpec parses a time string in [[H:]M:]S[.fraction] format
func ParseTimeSpec(s string) (TimeSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return TimeSpec{}, Usagef("invalid time format %q: expected [[H:]M:]S[.fraction]", s)
	}

	secondsField := parts[len(parts)-1]
	if !secondsFieldRegex.MatchString(secondsField) {
		return TimeSpec{}, Usagef("invalid time format %q: expected [[H:]M:]S[.fraction]", s)
	}
	for _, field := range parts[:len(parts)-1] {
		if !integerFieldRegex.MatchString(field) {
			return TimeSpec{}, Usagef("invalid time format %q: expected [[H:]M:]S[.fraction]", s)
		}
	}

	var spec TimeSpec
	spec.Seconds, _ = strconv.ParseFloat(secondsField, 64)

	switch len(parts) {
	case 2:
		spec.Minutes, _ = strconv.Atoi(parts[0])
	case 3:
		spec.Hours, _ = strconv.Atoi(parts[0])
		spec.Minutes, _ = strconv.Atoi(parts[1])
	}

	if len(parts) > 1 && spec.Seconds >= 60 {
		return TimeSpec{}, Usagef("invalid time %q: seconds must be 0-59", s)
	}
	if len(parts) > 2 && spec.Minutes > 59 {
		return TimeSpec{}, Usagef("invalid time %q: minutes must be 0-59", s)
	}

	return spec, nil
}

// String renders the time in H:MM:SS.fraction form, which both engines accept
// as a position argument.
func (t TimeSpec) String() string {
	// A bare seconds value may exceed 59; carry the overflow so the
	// rendered position stays within the engines' HH:MM:SS grammar.
	carry := int(t.Seconds) / 60
	secs := t.Seconds - float64(carry*60)
	minutes := t.Minutes + carry
	hours := t.Hours + minutes/60
	minutes %= 60

	rendered := strconv.FormatFloat(secs, 'f', -1, 64)
	if secs < 10 {
		rendered = "0" + rendered
	}
	return fmt.Sprintf("%d:%02d:%s", hours, minutes, rendered)
}

// TotalSeconds returns the time as total seconds
func (t TimeSpec) TotalSeconds() float64 {
	return float64(t.Hours)*3600 + float64(t.Minutes)*60 + t.Seconds
}

// Before returns true if t is before other
func (t TimeSpec) Before(other TimeSpec) bool {
	return t.TotalSeconds() < other.TotalSeconds()
}
