package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"audiosweep/domain/audio"
)

// RunState carries the state that may change while the pipeline runs. The
// audio-only switch is one-directional: once a source without video flips
// it, the whole batch merges as audio, including files already polished.
type RunState struct {
	AudioOnly bool
}

// Service orchestrates the complete cleaning pipeline: noise profile,
// per-file polish, optional pause, merge.
type Service struct {
	transcoder audio.Transcoder
	effects    audio.EffectsProcessor
	checker    audio.FileChecker
	prompter   audio.Prompter
	workspace  audio.Workspace
	output     io.Writer
}

// NewService creates a new pipeline service
func NewService(
	transcoder audio.Transcoder,
	effects audio.EffectsProcessor,
	checker audio.FileChecker,
	prompter audio.Prompter,
	workspace audio.Workspace,
	output io.Writer,
) *Service {
	return &Service{
		transcoder: transcoder,
		effects:    effects,
		checker:    checker,
		prompter:   prompter,
		workspace:  workspace,
		output:     output,
	}
}

// Run executes the pipeline for req. All validation happens before the
// first engine invocation; any failure is fatal.
func (s *Service) Run(ctx context.Context, req *audio.Request) error {
	noiseSource, err := s.validate(req)
	if err != nil {
		return err
	}

	if err := s.verifyEngines(ctx, req); err != nil {
		return err
	}

	state := &RunState{AudioOnly: req.AudioOnly}

	profilePath, err := s.buildNoiseProfile(ctx, req, noiseSource)
	if err != nil {
		return err
	}

	polished, err := s.polishAll(ctx, req, state, profilePath)
	if err != nil {
		return err
	}

	if req.Pause && !req.DryRun {
		fmt.Fprintf(s.output, "Polished tracks are in %s; edit them now if needed.\n", s.workspace.Root())
		ok, err := s.prompter.Confirm("Continue with merge?", true)
		if err != nil {
			return fmt.Errorf("pause prompt failed: %w", err)
		}
		if !ok {
			return fmt.Errorf("merge aborted by operator")
		}
	}

	if err := s.merge(ctx, req, state, polished); err != nil {
		return err
	}

	if !req.DryRun {
		fmt.Fprintf(s.output, "Successfully created: %s\n", req.OutputPath)
	}
	return nil
}

// validate performs the file-level checks and resolves the noise source.
// Argument problems are usage errors; an existing output without --force is
// a runtime failure, reported before any engine runs.
func (s *Service) validate(req *audio.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	for _, input := range req.Inputs {
		if !s.checker.Exists(input) {
			return "", audio.Usagef("input file does not exist: %s", input)
		}
		if input == req.OutputPath {
			return "", audio.Usagef("input file %s is the same as the output file", input)
		}
	}

	if !req.Force && s.checker.Exists(req.OutputPath) {
		return "", fmt.Errorf("output file already exists: %s (use --force to overwrite)", req.OutputPath)
	}

	return req.Window.ResolveSource(req.Inputs, s.checker)
}

// verifyEngines checks that every engine supporting verification is
// actually installed. Runs after validation so argument problems are
// reported first, and never during a dry run, which must not invoke
// anything.
func (s *Service) verifyEngines(ctx context.Context, req *audio.Request) error {
	if req.DryRun {
		return nil
	}

	for _, engine := range []interface{}{s.transcoder, s.effects} {
		verifiable, ok := engine.(interface{ VerifyInstalled(context.Context) error })
		if !ok {
			continue
		}
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := verifiable.VerifyInstalled(verifyCtx)
		cancel()
		if err != nil {
			return err
		}
	}
	return nil
}

// buildNoiseProfile slices the noise window out of the source and derives
// the profile reused by every polish pass. The sample is discarded as soon
// as the profile exists.
func (s *Service) buildNoiseProfile(ctx context.Context, req *audio.Request, noiseSource string) (string, error) {
	fmt.Fprintf(s.output, "Building noise profile from %s (%s to %s)...\n",
		noiseSource, req.Window.Start, req.Window.End)

	samplePath := s.workspace.Join("noise-sample.wav")
	if err := s.transcoder.SliceAudio(ctx, noiseSource, req.Window.Start, req.Window.End, samplePath); err != nil {
		return "", err
	}

	profilePath := s.workspace.Join("noise.prof")
	if err := s.effects.BuildNoiseProfile(ctx, samplePath, profilePath); err != nil {
		return "", err
	}

	if !req.DryRun {
		if err := s.workspace.Discard(samplePath); err != nil {
			return "", fmt.Errorf("failed to discard noise sample: %w", err)
		}
	}

	return profilePath, nil
}

// polishAll extracts and polishes every input in order, returning the
// polished track paths. Raw extracts are discarded immediately after each
// polish pass.
func (s *Service) polishAll(ctx context.Context, req *audio.Request, state *RunState, profilePath string) ([]string, error) {
	polished := make([]string, 0, len(req.Inputs))

	for i, input := range req.Inputs {
		fmt.Fprintf(s.output, "Processing %s...\n", input)

		// Probing would invoke an engine, so dry runs decide the merge
		// mode from the explicit flag alone.
		if !state.AudioOnly && !req.DryRun {
			hasVideo, err := s.transcoder.HasVideoStream(ctx, input)
			if err != nil {
				return nil, err
			}
			if !hasVideo {
				fmt.Fprintf(s.output, "%s has no video stream; switching to audio-only output\n", input)
				state.AudioOnly = true
			}
		}

		rawPath := s.workspace.Join(fmt.Sprintf("track_%03d.wav", i+1))
		if err := s.transcoder.ExtractAudio(ctx, input, rawPath); err != nil {
			return nil, err
		}

		polishedPath := s.workspace.Join(fmt.Sprintf("polished_%03d.wav", i+1))
		if err := s.effects.Polish(ctx, rawPath, polishedPath, profilePath, req.NoiseReduction, req.Chain); err != nil {
			return nil, err
		}

		if !req.DryRun {
			if err := s.workspace.Discard(rawPath); err != nil {
				return nil, fmt.Errorf("failed to discard raw extract: %w", err)
			}
		}

		polished = append(polished, polishedPath)
	}

	return polished, nil
}

// merge produces the output file, concatenating polished audio directly or
// recombining it with the original video streams.
func (s *Service) merge(ctx context.Context, req *audio.Request, state *RunState, polished []string) error {
	if state.AudioOnly {
		fmt.Fprintf(s.output, "Concatenating %d polished tracks...\n", len(polished))
		return s.effects.Concatenate(ctx, polished, req.OutputPath)
	}

	fmt.Fprintf(s.output, "Merging video with %d polished tracks...\n", len(polished))
	return s.transcoder.MergeWithVideo(ctx, req.Inputs, polished, req.OutputPath)
}
