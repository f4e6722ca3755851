package audio

import (
	"strings"
	"testing"
)

// mapChecker fakes file existence for tests
type mapChecker map[string]bool

func (m mapChecker) Exists(path string) bool {
	return m[path]
}

func TestParseNoiseWindow(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NoiseWindow
		wantErr bool
		errMsg  string
	}{
		{
			name:  "start and end only",
			input: "00:00:01-00:00:05",
			want: NoiseWindow{
				Start: TimeSpec{Seconds: 1},
				End:   TimeSpec{Seconds: 5},
			},
		},
		{
			name:  "bare seconds",
			input: "0-1",
			want: NoiseWindow{
				Start: TimeSpec{},
				End:   TimeSpec{Seconds: 1},
			},
		},
		{
			name:  "index selector",
			input: "0-1-2",
			want: NoiseWindow{
				Start:  TimeSpec{},
				End:    TimeSpec{Seconds: 1},
				Source: "2",
			},
		},
		{
			name:  "path selector",
			input: "0-1-room-tone.wav",
			want: NoiseWindow{
				Start:  TimeSpec{},
				End:    TimeSpec{Seconds: 1},
				Source: "room-tone.wav",
			},
		},
		{
			name:  "fractional times",
			input: "0.5-2.25",
			want: NoiseWindow{
				Start: TimeSpec{Seconds: 0.5},
				End:   TimeSpec{Seconds: 2.25},
			},
		},
		{
			name:    "missing end",
			input:   "5",
			wantErr: true,
			errMsg:  "expected START-END[-SOURCE]",
		},
		{
			name:    "malformed start",
			input:   "abc-5",
			wantErr: true,
			errMsg:  "invalid noise window start",
		},
		{
			name:    "malformed end",
			input:   "1-x",
			wantErr: true,
			errMsg:  "invalid noise window end",
		},
		{
			name:    "end before start",
			input:   "5-1",
			wantErr: true,
			errMsg:  "must be after start",
		},
		{
			name:    "empty interval",
			input:   "5-5",
			wantErr: true,
			errMsg:  "must be after start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNoiseWindow(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseNoiseWindow(%q) expected error, got nil", tt.input)
				}
				if !IsUsage(err) {
					t.Errorf("ParseNoiseWindow(%q) error should be a usage error, got %v", tt.input, err)
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ParseNoiseWindow(%q) error = %v, want error containing %q", tt.input, err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseNoiseWindow(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseNoiseWindow(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNoiseWindow_ResolveSource(t *testing.T) {
	inputs := []string{"a.mkv", "b.mkv", "c.mkv"}
	checker := mapChecker{"room-tone.wav": true}

	tests := []struct {
		name      string
		source    string
		want      string
		wantErr   bool
		wantUsage bool
		errMsg    string
	}{
		{
			name:   "empty selector defaults to first input",
			source: "",
			want:   "a.mkv",
		},
		{
			name:   "index selector",
			source: "2",
			want:   "b.mkv",
		},
		{
			name:   "last index",
			source: "3",
			want:   "c.mkv",
		},
		{
			name:      "index zero is out of range",
			source:    "0",
			wantErr:   true,
			wantUsage: true,
			errMsg:    "out of range",
		},
		{
			name:      "index past end is out of range",
			source:    "4",
			wantErr:   true,
			wantUsage: true,
			errMsg:    "out of range",
		},
		{
			name:   "existing literal path",
			source: "room-tone.wav",
			want:   "room-tone.wav",
		},
		{
			name:    "missing literal path is a runtime failure",
			source:  "missing.wav",
			wantErr: true,
			errMsg:  "does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NoiseWindow{End: TimeSpec{Seconds: 1}, Source: tt.source}
			got, err := w.ResolveSource(inputs, checker)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveSource(%q) expected error, got nil", tt.source)
				}
				if IsUsage(err) != tt.wantUsage {
					t.Errorf("ResolveSource(%q) IsUsage = %v, want %v", tt.source, IsUsage(err), tt.wantUsage)
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ResolveSource(%q) error = %v, want error containing %q", tt.source, err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("ResolveSource(%q) unexpected error: %v", tt.source, err)
			}
			if got != tt.want {
				t.Errorf("ResolveSource(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}
