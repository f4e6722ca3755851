package audio

import (
	"strings"
	"testing"
)

func TestParseTimeSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeSpec
		wantErr bool
		errMsg  string
	}{
		{
			name:  "bare seconds",
			input: "5",
			want:  TimeSpec{Seconds: 5},
		},
		{
			name:  "seconds with fraction",
			input: "5.25",
			want:  TimeSpec{Seconds: 5.25},
		},
		{
			name:  "minutes and seconds",
			input: "1:30",
			want:  TimeSpec{Minutes: 1, Seconds: 30},
		},
		{
			name:  "full hours minutes seconds",
			input: "2:03:04",
			want:  TimeSpec{Hours: 2, Minutes: 3, Seconds: 4},
		},
		{
			name:  "padded fields",
			input: "00:00:01",
			want:  TimeSpec{Seconds: 1},
		},
		{
			name:  "fraction with higher units",
			input: "0:00:01.5",
			want:  TimeSpec{Seconds: 1.5},
		},
		{
			name:  "large bare seconds",
			input: "3600",
			want:  TimeSpec{Seconds: 3600},
		},
		{
			name:  "large hours",
			input: "99:00:00",
			want:  TimeSpec{Hours: 99},
		},
		{
			name:    "too many fields",
			input:   "1:2:3:4",
			wantErr: true,
			errMsg:  "invalid time format",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
			errMsg:  "invalid time format",
		},
		{
			name:    "trailing dot",
			input:   "5.",
			wantErr: true,
			errMsg:  "invalid time format",
		},
		{
			name:    "fraction in minutes field",
			input:   "1.5:30",
			wantErr: true,
			errMsg:  "invalid time format",
		},
		{
			name:    "negative value",
			input:   "-5",
			wantErr: true,
			errMsg:  "invalid time format",
		},
		{
			name:    "seconds too high with minutes present",
			input:   "1:60",
			wantErr: true,
			errMsg:  "seconds must be 0-59",
		},
		{
			name:    "minutes too high with hours present",
			input:   "1:60:00",
			wantErr: true,
			errMsg:  "minutes must be 0-59",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeSpec(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseTimeSpec(%q) expected error, got nil", tt.input)
				}
				if !IsUsage(err) {
					t.Errorf("ParseTimeSpec(%q) error should be a usage error, got %v", tt.input, err)
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ParseTimeSpec(%q) error = %v, want error containing %q", tt.input, err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseTimeSpec(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeSpec(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeSpec_String(t *testing.T) {
	tests := []struct {
		spec TimeSpec
		want string
	}{
		{TimeSpec{}, "0:00:00"},
		{TimeSpec{Seconds: 1}, "0:00:01"},
		{TimeSpec{Seconds: 1.5}, "0:00:01.5"},
		{TimeSpec{Minutes: 2, Seconds: 30}, "0:02:30"},
		{TimeSpec{Hours: 1, Minutes: 2, Seconds: 3}, "1:02:03"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.spec.String(); got != tt.want {
				t.Errorf("TimeSpec.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTimeSpec_TotalSeconds(t *testing.T) {
	tests := []struct {
		spec TimeSpec
		want float64
	}{
		{TimeSpec{}, 0},
		{TimeSpec{Seconds: 1.5}, 1.5},
		{TimeSpec{Minutes: 1}, 60},
		{TimeSpec{Hours: 1, Minutes: 30, Seconds: 45}, 5445},
	}

	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			if got := tt.spec.TotalSeconds(); got != tt.want {
				t.Errorf("TimeSpec.TotalSeconds() = %g, want %g", got, tt.want)
			}
		})
	}
}
