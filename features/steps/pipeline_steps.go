//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"audiosweep/application/pipeline"
	"audiosweep/domain/audio"
	"audiosweep/infrastructure/console"
	"audiosweep/infrastructure/execshim"
)

// engineJournal records engine operations in invocation order
type engineJournal struct {
	log []string
}

func (j *engineJournal) record(format string, args ...interface{}) {
	j.log = append(j.log, fmt.Sprintf(format, args...))
}

type stubTranscoder struct {
	journal   *engineJournal
	videoless map[string]bool
}

func (s *stubTranscoder) SliceAudio(ctx context.Context, source string, start, end audio.TimeSpec, outputPath string) error {
	s.journal.record("slice %s", source)
	return nil
}

func (s *stubTranscoder) ExtractAudio(ctx context.Context, source, outputPath string) error {
	s.journal.record("extract %s", source)
	return nil
}

func (s *stubTranscoder) HasVideoStream(ctx context.Context, source string) (bool, error) {
	s.journal.record("probe %s", source)
	return !s.videoless[source], nil
}

func (s *stubTranscoder) MergeWithVideo(ctx context.Context, sources, audioTracks []string, outputPath string) error {
	s.journal.record("merge-video %s", outputPath)
	return nil
}

type stubEffects struct {
	journal *engineJournal
}

func (s *stubEffects) BuildNoiseProfile(ctx context.Context, samplePath, profilePath string) error {
	s.journal.record("profile")
	return nil
}

func (s *stubEffects) Polish(ctx context.Context, inputPath, outputPath, profilePath string, reduction float64, chain audio.EffectChain) error {
	s.journal.record("polish %s", filepath.Base(inputPath))
	return nil
}

func (s *stubEffects) Concatenate(ctx context.Context, inputs []string, outputPath string) error {
	s.journal.record("concat %s", outputPath)
	return nil
}

type stubPrompter struct{}

func (stubPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	return true, nil
}

type stubWorkspace struct{}

func (stubWorkspace) Join(name string) string   { return filepath.Join("/ws", name) }
func (stubWorkspace) Discard(path string) error { return nil }
func (stubWorkspace) Root() string              { return "/ws" }
func (stubWorkspace) Close() error              { return nil }

// pipelineContext holds test state for pipeline scenarios
type pipelineContext struct {
	journal    *engineJournal
	transcoder *stubTranscoder
	effects    *stubEffects
	existing   map[string]bool
	req        *audio.Request
	err        error

	shimOut *bytes.Buffer
	shim    *execshim.DryRunner
}

func (c *pipelineContext) Exists(path string) bool {
	return c.existing[path]
}

// SharedPipelineContext is reset before each scenario via Before hook
var SharedPipelineContext *pipelineContext

func InitializePipelineScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		journal := &engineJournal{}
		SharedPipelineContext = &pipelineContext{
			journal:    journal,
			transcoder: &stubTranscoder{journal: journal, videoless: make(map[string]bool)},
			effects:    &stubEffects{journal: journal},
			existing:   make(map[string]bool),
		}
		return c, nil
	})

	ctx.Step(`^the input files "([^"]*)" exist$`, theInputFilesExist)
	ctx.Step(`^"([^"]*)" has no video stream$`, hasNoVideoStream)
	ctx.Step(`^the output file already exists$`, theOutputFileAlreadyExists)
	ctx.Step(`^the force flag is set$`, theForceFlagIsSet)
	ctx.Step(`^I run the pipeline$`, iRunThePipeline)
	ctx.Step(`^the noise profile is built from "([^"]*)"$`, theNoiseProfileIsBuiltFrom)
	ctx.Step(`^every input is extracted and polished in order$`, everyInputIsExtractedAndPolishedInOrder)
	ctx.Step(`^the output is merged with the original video streams$`, theOutputIsMergedWithVideo)
	ctx.Step(`^the output is concatenated as audio only$`, theOutputIsConcatenatedAsAudioOnly)
	ctx.Step(`^the run fails$`, theRunFails)
	ctx.Step(`^the run succeeds$`, theRunSucceeds)
	ctx.Step(`^no engine was invoked$`, noEngineWasInvoked)
	ctx.Step(`^a dry-run command shim$`, aDryRunCommandShim)
	ctx.Step(`^the shim runs "([^"]*)" with arguments "([^"]*)"$`, theShimRuns)
	ctx.Step(`^the rendered command line is "([^"]*)"$`, theRenderedCommandLineIs)
}

func theInputFilesExist(files string) error {
	c := SharedPipelineContext
	inputs := strings.Fields(files)
	for _, f := range inputs {
		c.existing[f] = true
	}
	c.req = &audio.Request{
		Inputs:         inputs,
		OutputPath:     "out.mkv",
		Window:         audio.DefaultNoiseWindow(),
		Chain:          audio.DefaultEffectChain,
		NoiseReduction: audio.DefaultNoiseReduction,
	}
	return nil
}

func hasNoVideoStream(file string) error {
	SharedPipelineContext.transcoder.videoless[file] = true
	return nil
}

func theOutputFileAlreadyExists() error {
	c := SharedPipelineContext
	c.existing[c.req.OutputPath] = true
	return nil
}

func theForceFlagIsSet() error {
	SharedPipelineContext.req.Force = true
	return nil
}

func iRunThePipeline() error {
	c := SharedPipelineContext
	service := pipeline.NewService(c.transcoder, c.effects, c, stubPrompter{}, stubWorkspace{}, &bytes.Buffer{})
	c.err = service.Run(context.Background(), c.req)
	return nil
}

func theNoiseProfileIsBuiltFrom(source string) error {
	c := SharedPipelineContext
	if c.err != nil {
		return fmt.Errorf("pipeline failed: %w", c.err)
	}
	if len(c.journal.log) < 2 {
		return fmt.Errorf("too few engine calls: %v", c.journal.log)
	}
	if want := "slice " + source; c.journal.log[0] != want {
		return fmt.Errorf("first call was %q, expected %q", c.journal.log[0], want)
	}
	if c.journal.log[1] != "profile" {
		return fmt.Errorf("second call was %q, expected profile", c.journal.log[1])
	}
	return nil
}

func everyInputIsExtractedAndPolishedInOrder() error {
	c := SharedPipelineContext
	var extracted []string
	for _, entry := range c.journal.log {
		if strings.HasPrefix(entry, "extract ") {
			extracted = append(extracted, strings.TrimPrefix(entry, "extract "))
		}
	}
	if len(extracted) != len(c.req.Inputs) {
		return fmt.Errorf("extracted %v, expected all of %v", extracted, c.req.Inputs)
	}
	for i, input := range c.req.Inputs {
		if extracted[i] != input {
			return fmt.Errorf("extraction order %v does not match input order %v", extracted, c.req.Inputs)
		}
	}
	return nil
}

func theOutputIsMergedWithVideo() error {
	c := SharedPipelineContext
	last := c.journal.log[len(c.journal.log)-1]
	if !strings.HasPrefix(last, "merge-video ") {
		return fmt.Errorf("final call was %q, expected a video merge", last)
	}
	return nil
}

func theOutputIsConcatenatedAsAudioOnly() error {
	c := SharedPipelineContext
	if c.err != nil {
		return fmt.Errorf("pipeline failed: %w", c.err)
	}
	last := c.journal.log[len(c.journal.log)-1]
	if !strings.HasPrefix(last, "concat ") {
		return fmt.Errorf("final call was %q, expected an audio-only concatenation", last)
	}
	return nil
}

func theRunFails() error {
	if SharedPipelineContext.err == nil {
		return fmt.Errorf("pipeline succeeded, expected failure")
	}
	return nil
}

func theRunSucceeds() error {
	if err := SharedPipelineContext.err; err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}
	return nil
}

func noEngineWasInvoked() error {
	c := SharedPipelineContext
	if len(c.journal.log) != 0 {
		return fmt.Errorf("engines were invoked: %v", c.journal.log)
	}
	return nil
}

func aDryRunCommandShim() error {
	c := SharedPipelineContext
	c.shimOut = &bytes.Buffer{}
	c.shim = execshim.NewDryRunner(console.NewPrinter(c.shimOut))
	return nil
}

func theShimRuns(name, args string) error {
	c := SharedPipelineContext
	return c.shim.Run(context.Background(), console.TagSox, name, strings.Split(args, ",")...)
}

func theRenderedCommandLineIs(expected string) error {
	c := SharedPipelineContext
	got := strings.TrimSpace(c.shimOut.String())
	if got != expected {
		return fmt.Errorf("rendered %q, expected %q", got, expected)
	}
	return nil
}
