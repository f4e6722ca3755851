package sox

import (
	"context"
	"fmt"
	"strconv"

	"audiosweep/domain/audio"
	"audiosweep/infrastructure/console"
	"audiosweep/infrastructure/execshim"
)

// Processor implements audio.EffectsProcessor using the SoX CLI
type Processor struct {
	soxPath string
	runner  execshim.CommandRunner
}

// Option is a functional option for configuring Processor
type Option func(*Processor)

// WithSoxPath sets a custom sox executable path
func WithSoxPath(path string) Option {
	return func(p *Processor) {
		if path != "" {
			p.soxPath = path
		}
	}
}

// NewProcessor creates a SoX-backed effects processor driving all
// invocations through runner
func NewProcessor(runner execshim.CommandRunner, opts ...Option) *Processor {
	p := &Processor{
		soxPath: "sox",
		runner:  runner,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// BuildNoiseProfile implements audio.EffectsProcessor. Profiling mode writes
// no audio, so the null output device is used.
func (p *Processor) BuildNoiseProfile(ctx context.Context, samplePath, profilePath string) error {
	args := []string{
		samplePath,
		"-n", // null output: noiseprof consumes audio, produces only the profile
		"noiseprof", profilePath,
	}

	if err := p.runner.Run(ctx, console.TagSox, p.soxPath, args...); err != nil {
		return fmt.Errorf("sox noise profiling failed: %w", err)
	}
	return nil
}

// Polish implements audio.EffectsProcessor, applying noise reduction first
// and the effect chain after it, in order.
func (p *Processor) Polish(ctx context.Context, inputPath, outputPath, profilePath string, reduction float64, chain audio.EffectChain) error {
	args := []string{
		inputPath,
		outputPath,
		"noisered", profilePath, strconv.FormatFloat(reduction, 'f', -1, 64),
	}
	args = append(args, chain...)

	if err := p.runner.Run(ctx, console.TagSox, p.soxPath, args...); err != nil {
		return fmt.Errorf("sox polish failed: %w", err)
	}
	return nil
}

// Concatenate implements audio.EffectsProcessor using SoX's multi-input
// mode, which joins inputs in argument order.
func (p *Processor) Concatenate(ctx context.Context, inputs []string, outputPath string) error {
	args := append(append([]string{}, inputs...), outputPath)

	if err := p.runner.Run(ctx, console.TagSox, p.soxPath, args...); err != nil {
		return fmt.Errorf("sox concatenation failed: %w", err)
	}
	return nil
}

// VerifyInstalled checks that sox is available
func (p *Processor) VerifyInstalled(ctx context.Context) error {
	if _, err := p.runner.Output(ctx, console.TagSox, p.soxPath, "--version"); err != nil {
		return fmt.Errorf("sox not found or not executable: %w", err)
	}
	return nil
}

// Ensure Processor implements audio.EffectsProcessor
var _ audio.EffectsProcessor = (*Processor)(nil)
