package audio

// DefaultNoiseReduction is the noisered coefficient used when none is given.
const DefaultNoiseReduction = 0.21

// Request represents a fully parsed run configuration. It is immutable once
// built; the only state that changes during a run lives in the pipeline's
// RunState.
type Request struct {
	Inputs         []string // concatenation order
	OutputPath     string
	Window         NoiseWindow
	Chain          EffectChain
	NoiseReduction float64

	Verbose   bool
	DryRun    bool
	Pause     bool
	Force     bool
	AudioOnly bool
}

// Validate checks the structural invariants of the request. File-level
// checks (existence, output collision) are performed by the pipeline, which
// has a FileChecker.
func (r *Request) Validate() error {
	if len(r.Inputs) == 0 {
		return Usagef("at least one input file is required")
	}
	if r.OutputPath == "" {
		return Usagef("an output file is required")
	}
	if r.NoiseReduction < 0 || r.NoiseReduction > 1 {
		return Usagef("noise reduction must be between 0 and 1, got %g", r.NoiseReduction)
	}
	return r.Window.Validate()
}
