package audio

import "context"

// EffectsProcessor defines the interface for the audio-effects engine
// This is a port that can be implemented by different infrastructure adapters
type EffectsProcessor interface {
	// BuildNoiseProfile derives a reusable noise profile from a sample file
	BuildNoiseProfile(ctx context.Context, samplePath, profilePath string) error

	// Polish applies noise reduction (using the shared profile and the given
	// coefficient) followed by the effect chain, in order
	Polish(ctx context.Context, inputPath, outputPath, profilePath string, reduction float64, chain EffectChain) error

	// Concatenate joins the input files, in order, into outputPath
	Concatenate(ctx context.Context, inputs []string, outputPath string) error
}
