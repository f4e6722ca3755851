package ffmpeg

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"audiosweep/domain/audio"
	"audiosweep/infrastructure/console"
)

// fakeRunner records invocations and serves canned probe output
type fakeRunner struct {
	runs      [][]string
	outputs   [][]string
	probeJSON string
	runErr    error
	outputErr error
}

func (f *fakeRunner) Run(ctx context.Context, tag console.Tag, name string, args ...string) error {
	f.runs = append(f.runs, append([]string{name}, args...))
	return f.runErr
}

func (f *fakeRunner) Output(ctx context.Context, tag console.Tag, name string, args ...string) ([]byte, error) {
	f.outputs = append(f.outputs, append([]string{name}, args...))
	return []byte(f.probeJSON), f.outputErr
}

func TestTranscoder_SliceAudio(t *testing.T) {
	runner := &fakeRunner{}
	tc := NewTranscoder(runner)

	start := audio.TimeSpec{Seconds: 1}
	end := audio.TimeSpec{Seconds: 5}
	if err := tc.SliceAudio(context.Background(), "a.mkv", start, end, "/ws/sample.wav"); err != nil {
		t.Fatalf("SliceAudio() unexpected error: %v", err)
	}

	want := []string{"ffmpeg", "-i", "a.mkv", "-ss", "0:00:01", "-to", "0:00:05", "-vn", "-y", "/ws/sample.wav"}
	if !reflect.DeepEqual(runner.runs[0], want) {
		t.Errorf("SliceAudio() args = %v, want %v", runner.runs[0], want)
	}
}

func TestTranscoder_ExtractAudio(t *testing.T) {
	runner := &fakeRunner{}
	tc := NewTranscoder(runner, WithFFmpegPath("/opt/ffmpeg"))

	if err := tc.ExtractAudio(context.Background(), "a.mkv", "/ws/track.wav"); err != nil {
		t.Fatalf("ExtractAudio() unexpected error: %v", err)
	}

	want := []string{"/opt/ffmpeg", "-i", "a.mkv", "-vn", "-y", "/ws/track.wav"}
	if !reflect.DeepEqual(runner.runs[0], want) {
		t.Errorf("ExtractAudio() args = %v, want %v", runner.runs[0], want)
	}
}

func TestTranscoder_HasVideoStream(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{
			name: "video stream present",
			json: `{"streams":[{"codec_type":"video"}]}`,
			want: true,
		},
		{
			name: "no streams",
			json: `{"streams":[]}`,
			want: false,
		},
		{
			name: "streams key absent",
			json: `{}`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{probeJSON: tt.json}
			tc := NewTranscoder(runner)

			got, err := tc.HasVideoStream(context.Background(), "a.mkv")
			if err != nil {
				t.Fatalf("HasVideoStream() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasVideoStream() = %v, want %v", got, tt.want)
			}

			wantArgs := []string{"ffprobe", "-v", "error", "-print_format", "json", "-show_streams", "-select_streams", "v", "a.mkv"}
			if !reflect.DeepEqual(runner.outputs[0], wantArgs) {
				t.Errorf("HasVideoStream() args = %v, want %v", runner.outputs[0], wantArgs)
			}
		})
	}
}

func TestTranscoder_HasVideoStream_ProbeFailure(t *testing.T) {
	runner := &fakeRunner{outputErr: errors.New("boom")}
	tc := NewTranscoder(runner)

	if _, err := tc.HasVideoStream(context.Background(), "a.mkv"); err == nil {
		t.Fatal("HasVideoStream() expected error, got nil")
	}
}

func TestTranscoder_MergeWithVideo(t *testing.T) {
	runner := &fakeRunner{}
	tc := NewTranscoder(runner)

	sources := []string{"a.mkv", "b.mkv"}
	tracks := []string{"/ws/polished_001.wav", "/ws/polished_002.wav"}
	if err := tc.MergeWithVideo(context.Background(), sources, tracks, "out.mkv"); err != nil {
		t.Fatalf("MergeWithVideo() unexpected error: %v", err)
	}

	want := []string{
		"ffmpeg",
		"-i", "a.mkv",
		"-i", "b.mkv",
		"-i", "/ws/polished_001.wav",
		"-i", "/ws/polished_002.wav",
		"-filter_complex", "[0:v:0][2:a:0][1:v:0][3:a:0]concat=n=2:v=1:a=1[v][a]",
		"-map", "[v]",
		"-map", "[a]",
		"-y",
		"out.mkv",
	}
	if !reflect.DeepEqual(runner.runs[0], want) {
		t.Errorf("MergeWithVideo() args = %v, want %v", runner.runs[0], want)
	}
}

func TestTranscoder_MergeWithVideo_MismatchedInputs(t *testing.T) {
	tc := NewTranscoder(&fakeRunner{})

	err := tc.MergeWithVideo(context.Background(), []string{"a.mkv"}, nil, "out.mkv")
	if err == nil {
		t.Fatal("MergeWithVideo() expected error for mismatched inputs, got nil")
	}
}

func TestConcatFilter(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "[0:v:0][1:a:0]concat=n=1:v=1:a=1[v][a]"},
		{3, "[0:v:0][3:a:0][1:v:0][4:a:0][2:v:0][5:a:0]concat=n=3:v=1:a=1[v][a]"},
	}

	for _, tt := range tests {
		if got := concatFilter(tt.n); got != tt.want {
			t.Errorf("concatFilter(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
