package audio

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NoiseWindow designates the slice of a source file that contains only
// background noise, from which the noise profile is derived.
type NoiseWindow struct {
	Start TimeSpec
	End   TimeSpec

	// Source selects the file to slice: a 1-based index into the input
	// list, a literal path, or empty for the first input.
	Source string
}

// DefaultNoiseWindow covers the first second of the first input file.
func DefaultNoiseWindow() NoiseWindow {
	return NoiseWindow{
		Start: TimeSpec{},
		End:   TimeSpec{Seconds: 1},
	}
}

var indexSelectorRegex = regexp.MustCompile(`^\d+$`)

// ParseNoiseWindow parses a window descriptor in START-END[-SOURCE] format.
// START and END must match the [[H:]M:]S[.fraction] time grammar.
func ParseNoiseWindow(s string) (NoiseWindow, error) {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) < 2 {
		return NoiseWindow{}, Usagef("invalid noise window %q: expected START-END[-SOURCE]", s)
	}

	start, err := ParseTimeSpec(parts[0])
	if err != nil {
		return NoiseWindow{}, fmt.Errorf("invalid noise window start: %w", err)
	}

	end, err := ParseTimeSpec(parts[1])
	if err != nil {
		return NoiseWindow{}, fmt.Errorf("invalid noise window end: %w", err)
	}

	w := NoiseWindow{Start: start, End: end}
	if len(parts) == 3 {
		w.Source = parts[2]
	}

	if err := w.Validate(); err != nil {
		return NoiseWindow{}, err
	}

	return w, nil
}

// Validate checks that the window covers a non-empty interval
func (w NoiseWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return Usagef("noise window end %s must be after start %s", w.End, w.Start)
	}
	return nil
}

// ResolveSource resolves the window's source selector against the ordered
// input list. A numeric selector must fall in [1, len(inputs)]; anything else
// is treated as a literal path and must exist.
func (w NoiseWindow) ResolveSource(inputs []string, checker FileChecker) (string, error) {
	if w.Source == "" {
		return inputs[0], nil
	}

	if indexSelectorRegex.MatchString(w.Source) {
		idx, err := strconv.Atoi(w.Source)
		if err != nil || idx < 1 || idx > len(inputs) {
			return "", Usagef("noise window source %q is out of range (have %d input files)", w.Source, len(inputs))
		}
		return inputs[idx-1], nil
	}

	if !checker.Exists(w.Source) {
		return "", fmt.Errorf("noise window source file does not exist: %s", w.Source)
	}
	return w.Source, nil
}
