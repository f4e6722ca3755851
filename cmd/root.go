package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"audiosweep/application/pipeline"
	"audiosweep/domain/audio"
	"audiosweep/infrastructure/config"
	"audiosweep/infrastructure/console"
	"audiosweep/infrastructure/execshim"
	"audiosweep/infrastructure/ffmpeg"
	"audiosweep/infrastructure/filesystem"
	"audiosweep/infrastructure/prompt"
	"audiosweep/infrastructure/sox"
)

var version = "0.3.0"

// options holds the raw flag values before they are resolved against the
// config file and built into an audio.Request.
type options struct {
	verbose        bool
	dryRun         bool
	pause          bool
	force          bool
	audioOnly      bool
	noiseWindow    string
	outputFile     string
	soxOptions     string
	noiseReduction float64
	configFile     string

	// noiseReductionSet records whether --noise-reduction was given
	// explicitly; only an unset flag falls back to config or built-in
	// defaults, so an explicit out-of-range value reaches validation.
	noiseReductionSet bool
}

// NewRootCommand builds the audiosweep command
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

// newRootCommand additionally returns the bound options for tests
func newRootCommand() (*cobra.Command, *options) {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "audiosweep [flags] FILE... [OUTPUT]",
		Short: "Clean background noise from media files and concatenate their audio",
		Long: `audiosweep removes background noise from the audio tracks of one or more
media files and concatenates the result into a single output file.

A noise profile is derived from a quiet window of one input (see
--noise-window), each audio track is denoised and run through a sox effect
chain, and the polished tracks are merged: directly when the inputs are
audio-only, or recombined with the original video streams otherwise.

Requires ffmpeg, ffprobe and sox on PATH (paths overridable via config file).

Example:
  audiosweep --noise-window 0:01-0:05 talk1.mkv talk2.mkv combined.mkv
  audiosweep -a -s "highpass 80 norm" raw.wav clean.wav`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noiseReductionSet = cmd.Flags().Changed("noise-reduction")

			cfg, err := loadConfig(opts.configFile)
			if err != nil {
				return err
			}

			req, err := buildRequest(cfg, opts, args)
			if err != nil {
				return err
			}

			return runPipeline(cmd.Context(), cfg, req)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "stream engine output while commands run")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "print engine commands without executing them")
	cmd.Flags().BoolVarP(&opts.pause, "pause", "p", false, "pause before merging so polished tracks can be edited")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite the output file if it exists")
	cmd.Flags().BoolVarP(&opts.audioOnly, "audio-only", "a", false, "produce an audio-only output file")
	cmd.Flags().StringVarP(&opts.noiseWindow, "noise-window", "w", "", `noise sample window START-END[-SOURCE] (default "0-1")`)
	cmd.Flags().StringVarP(&opts.outputFile, "output-file", "o", "", "output file (default: last positional argument)")
	cmd.Flags().StringVarP(&opts.soxOptions, "sox-options", "s", "", `sox effect chain applied after noise reduction (default "norm")`)
	cmd.Flags().Float64VarP(&opts.noiseReduction, "noise-reduction", "r", -1, "noise reduction amount between 0 and 1 (default 0.21)")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "config file (default "+config.DefaultPath()+")")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return audio.Usagef("%s", err)
	})

	return cmd, opts
}

// Execute runs the root command and maps errors to exit codes: usage errors
// exit 2, everything else 1.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		console.PrintError(err.Error())
		if audio.IsUsage(err) {
			return 2
		}
		return 1
	}
	return 0
}

// ErrNoRun is returned by ParseRequest when the arguments complete without
// requesting a run, such as --help or --version.
var ErrNoRun = errors.New("arguments did not request a run")

// ParseRequest parses command-line arguments into a Request without running
// the pipeline. This is the seam the feature suite drives.
func ParseRequest(args []string) (*audio.Request, error) {
	cmd, opts := newRootCommand()

	var req *audio.Request
	cmd.RunE = func(c *cobra.Command, positional []string) error {
		opts.noiseReductionSet = c.Flags().Changed("noise-reduction")

		var err error
		req, err = buildRequest(nil, opts, positional)
		return err
	}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNoRun
	}
	return req, nil
}

// loadConfig loads the config file, returning nil when the default file is
// simply absent. An explicitly named file must load.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}
	if path == "" {
		return nil, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		if explicit {
			return nil, err
		}
		return nil, nil
	}
	return cfg, nil
}

// buildRequest resolves flags, config-file defaults and positional arguments
// into an immutable Request.
func buildRequest(cfg *config.Config, opts *options, args []string) (*audio.Request, error) {
	inputs := args
	output := opts.outputFile
	if output == "" {
		if len(args) < 2 {
			return nil, audio.Usagef("an output file is required: pass --output-file or add it as the last argument")
		}
		output = args[len(args)-1]
		inputs = args[:len(args)-1]
	}
	if len(inputs) == 0 {
		return nil, audio.Usagef("at least one input file is required")
	}

	rawWindow := opts.noiseWindow
	if rawWindow == "" && cfg != nil {
		rawWindow = cfg.Defaults.NoiseWindow
	}
	window := audio.DefaultNoiseWindow()
	if rawWindow != "" {
		var err error
		window, err = audio.ParseNoiseWindow(rawWindow)
		if err != nil {
			return nil, err
		}
	}

	soxOptions := opts.soxOptions
	if soxOptions == "" && cfg != nil {
		soxOptions = cfg.Defaults.SoxOptions
	}
	chain, err := audio.ParseEffectChain(soxOptions)
	if err != nil {
		return nil, err
	}

	reduction := opts.noiseReduction
	if !opts.noiseReductionSet {
		if cfg != nil && cfg.Defaults.NoiseReduction != nil {
			reduction = *cfg.Defaults.NoiseReduction
		} else {
			reduction = audio.DefaultNoiseReduction
		}
	}

	req := &audio.Request{
		Inputs:         inputs,
		OutputPath:     output,
		Window:         window,
		Chain:          chain,
		NoiseReduction: reduction,
		Verbose:        opts.verbose,
		DryRun:         opts.dryRun,
		Pause:          opts.pause,
		Force:          opts.force,
		AudioOnly:      opts.audioOnly,
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// runPipeline wires the production adapters and runs the service
func runPipeline(ctx context.Context, cfg *config.Config, req *audio.Request) error {
	printer := console.NewPrinter(os.Stdout)

	var runner execshim.CommandRunner
	if req.DryRun {
		runner = execshim.NewDryRunner(printer)
	} else {
		runner = execshim.NewExecRunner(printer, req.Verbose)
	}

	var ffmpegOpts []ffmpeg.Option
	var soxOpts []sox.Option
	if cfg != nil {
		ffmpegOpts = append(ffmpegOpts,
			ffmpeg.WithFFmpegPath(cfg.Tools.FFmpeg),
			ffmpeg.WithFFprobePath(cfg.Tools.FFprobe),
		)
		soxOpts = append(soxOpts, sox.WithSoxPath(cfg.Tools.Sox))
	}
	transcoder := ffmpeg.NewTranscoder(runner, ffmpegOpts...)
	effects := sox.NewProcessor(runner, soxOpts...)

	workspace, err := filesystem.NewWorkspace()
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}
	defer workspace.Close()

	service := pipeline.NewService(
		transcoder,
		effects,
		filesystem.NewChecker(),
		prompt.NewSurveyPrompter(),
		workspace,
		os.Stdout,
	)

	return service.Run(ctx, req)
}
