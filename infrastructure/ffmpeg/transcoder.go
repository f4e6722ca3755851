package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"audiosweep/domain/audio"
	"audiosweep/infrastructure/console"
	"audiosweep/infrastructure/execshim"
)

// Transcoder implements audio.Transcoder using the ffmpeg and ffprobe CLIs
type Transcoder struct {
	ffmpegPath  string
	ffprobePath string
	runner      execshim.CommandRunner
}

// Option is a functional option for configuring Transcoder
type Option func(*Transcoder)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) Option {
	return func(t *Transcoder) {
		if path != "" {
			t.ffmpegPath = path
		}
	}
}

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) Option {
	return func(t *Transcoder) {
		if path != "" {
			t.ffprobePath = path
		}
	}
}

// NewTranscoder creates an ffmpeg-backed Transcoder driving all invocations
// through runner
func NewTranscoder(runner execshim.CommandRunner, opts ...Option) *Transcoder {
	t := &Transcoder{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		runner:      runner,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// SliceAudio implements audio.Transcoder
func (t *Transcoder) SliceAudio(ctx context.Context, source string, start, end audio.TimeSpec, outputPath string) error {
	args := []string{
		"-i", source,
		"-ss", start.String(),
		"-to", end.String(),
		"-vn", // No video
		"-y",  // Overwrite output file if it exists
		outputPath,
	}

	if err := t.runner.Run(ctx, console.TagFFmpeg, t.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg noise-sample slice failed: %w", err)
	}
	return nil
}

// ExtractAudio implements audio.Transcoder
func (t *Transcoder) ExtractAudio(ctx context.Context, source, outputPath string) error {
	args := []string{
		"-i", source,
		"-vn",
		"-y",
		outputPath,
	}

	if err := t.runner.Run(ctx, console.TagFFmpeg, t.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg audio extraction failed: %w", err)
	}
	return nil
}

type probeResult struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
}

// HasVideoStream implements audio.Transcoder using ffprobe's JSON output
func (t *Transcoder) HasVideoStream(ctx context.Context, source string) (bool, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "v",
		source,
	}

	out, err := t.runner.Output(ctx, console.TagFFprobe, t.ffprobePath, args...)
	if err != nil {
		return false, fmt.Errorf("ffprobe failed for %s: %w", source, err)
	}

	var result probeResult
	if err := json.Unmarshal(out, &result); err != nil {
		return false, fmt.Errorf("failed to parse ffprobe output for %s: %w", source, err)
	}

	return len(result.Streams) > 0, nil
}

// MergeWithVideo implements audio.Transcoder. A single invocation takes all
// original sources and all polished tracks as parallel inputs and
// concatenates them with an explicit filter graph, preserving input order.
func (t *Transcoder) MergeWithVideo(ctx context.Context, sources, audioTracks []string, outputPath string) error {
	if len(sources) != len(audioTracks) {
		return fmt.Errorf("merge requires one polished track per source: %d sources, %d tracks", len(sources), len(audioTracks))
	}

	var args []string
	for _, src := range sources {
		args = append(args, "-i", src)
	}
	for _, track := range audioTracks {
		args = append(args, "-i", track)
	}

	args = append(args,
		"-filter_complex", concatFilter(len(sources)),
		"-map", "[v]",
		"-map", "[a]",
		"-y",
		outputPath,
	)

	if err := t.runner.Run(ctx, console.TagFFmpeg, t.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg merge failed: %w", err)
	}
	return nil
}

// concatFilter builds the filter graph joining n video streams with their n
// polished audio streams: input i pairs with input n+i.
func concatFilter(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "[%d:v:0][%d:a:0]", i, n+i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=1:a=1[v][a]", n)
	return b.String()
}

// VerifyInstalled checks that ffmpeg and ffprobe are available
func (t *Transcoder) VerifyInstalled(ctx context.Context) error {
	if _, err := t.runner.Output(ctx, console.TagFFmpeg, t.ffmpegPath, "-version"); err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	if _, err := t.runner.Output(ctx, console.TagFFprobe, t.ffprobePath, "-version"); err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}

// Ensure Transcoder implements audio.Transcoder
var _ audio.Transcoder = (*Transcoder)(nil)
