//go:build integration

package steps

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/cucumber/godog"

	"audiosweep/cmd"
	"audiosweep/domain/audio"
)

// optionsContext holds test state for argument-parsing scenarios
type optionsContext struct {
	req     *audio.Request
	prevReq *audio.Request
	err     error

	inputs   []string
	existing map[string]bool
	resolved string
	resolve  error
}

func (c *optionsContext) Exists(path string) bool {
	return c.existing[path]
}

// SharedOptionsContext is reset before each scenario via Before hook
var SharedOptionsContext *optionsContext

func InitializeOptionsScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedOptionsContext = &optionsContext{existing: make(map[string]bool)}
		return c, nil
	})

	ctx.Step(`^I parse the arguments "([^"]*)"$`, iParseTheArguments)
	ctx.Step(`^the input list is "([^"]*)"$`, theInputListIs)
	ctx.Step(`^the output file is "([^"]*)"$`, theOutputFileIs)
	ctx.Step(`^both parses produce the same configuration$`, bothParsesProduceTheSameConfiguration)
	ctx.Step(`^parsing fails with a usage error$`, parsingFailsWithAUsageError)
	ctx.Step(`^the input files "([^"]*)"$`, theInputFiles)
	ctx.Step(`^the file "([^"]*)" exists$`, theFileExists)
	ctx.Step(`^I resolve the noise window "([^"]*)"$`, iResolveTheNoiseWindow)
	ctx.Step(`^the noise source is "([^"]*)"$`, theNoiseSourceIs)
	ctx.Step(`^resolving fails with a usage error$`, resolvingFailsWithAUsageError)
}

func iParseTheArguments(args string) error {
	c := SharedOptionsContext
	c.prevReq = c.req
	c.req, c.err = cmd.ParseRequest(strings.Fields(args))
	return nil
}

func theInputListIs(expected string) error {
	c := SharedOptionsContext
	if c.err != nil {
		return fmt.Errorf("parsing failed: %w", c.err)
	}
	want := strings.Fields(expected)
	if !reflect.DeepEqual(c.req.Inputs, want) {
		return fmt.Errorf("input list is %v, expected %v", c.req.Inputs, want)
	}
	return nil
}

func theOutputFileIs(expected string) error {
	c := SharedOptionsContext
	if c.err != nil {
		return fmt.Errorf("parsing failed: %w", c.err)
	}
	if c.req.OutputPath != expected {
		return fmt.Errorf("output file is %q, expected %q", c.req.OutputPath, expected)
	}
	return nil
}

func bothParsesProduceTheSameConfiguration() error {
	c := SharedOptionsContext
	if c.err != nil {
		return fmt.Errorf("parsing failed: %w", c.err)
	}
	if c.prevReq == nil {
		return fmt.Errorf("only one parse was performed")
	}
	if !reflect.DeepEqual(c.prevReq, c.req) {
		return fmt.Errorf("configurations differ: %+v vs %+v", c.prevReq, c.req)
	}
	return nil
}

func parsingFailsWithAUsageError() error {
	c := SharedOptionsContext
	if c.err == nil {
		return fmt.Errorf("parsing succeeded, expected a usage error")
	}
	if !audio.IsUsage(c.err) {
		return fmt.Errorf("expected a usage error, got: %v", c.err)
	}
	return nil
}

func theInputFiles(files string) error {
	SharedOptionsContext.inputs = strings.Fields(files)
	return nil
}

func theFileExists(path string) error {
	SharedOptionsContext.existing[path] = true
	return nil
}

func iResolveTheNoiseWindow(window string) error {
	c := SharedOptionsContext
	w, err := audio.ParseNoiseWindow(window)
	if err != nil {
		c.resolve = err
		return nil
	}
	c.resolved, c.resolve = w.ResolveSource(c.inputs, c)
	return nil
}

func theNoiseSourceIs(expected string) error {
	c := SharedOptionsContext
	if c.resolve != nil {
		return fmt.Errorf("resolution failed: %w", c.resolve)
	}
	if c.resolved != expected {
		return fmt.Errorf("noise source is %q, expected %q", c.resolved, expected)
	}
	return nil
}

func resolvingFailsWithAUsageError() error {
	c := SharedOptionsContext
	if c.resolve == nil {
		return fmt.Errorf("resolution succeeded with %q, expected a usage error", c.resolved)
	}
	if !audio.IsUsage(c.resolve) {
		return fmt.Errorf("expected a usage error, got: %v", c.resolve)
	}
	return nil
}
