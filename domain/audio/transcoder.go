package audio

import "context"

// Transcoder defines the interface for the audio/video transcoding engine
// This is a port that can be implemented by different infrastructure adapters
type Transcoder interface {
	// SliceAudio extracts the audio-only slice [start,end] of source into outputPath
	SliceAudio(ctx context.Context, source string, start, end TimeSpec, outputPath string) error

	// ExtractAudio extracts the full audio track of source into outputPath
	ExtractAudio(ctx context.Context, source, outputPath string) error

	// HasVideoStream reports whether source contains at least one video stream
	HasVideoStream(ctx context.Context, source string) (bool, error)

	// MergeWithVideo concatenates the video streams of sources and the
	// parallel polished audio tracks into a single output file. Both slices
	// must be the same length and in input order.
	MergeWithVideo(ctx context.Context, sources, audioTracks []string, outputPath string) error
}
