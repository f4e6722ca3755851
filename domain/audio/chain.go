package audio

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// DefaultEffectChain is applied when no sox options are given.
var DefaultEffectChain = EffectChain{"norm"}

// EffectChain is an ordered list of sox effect tokens, applied after noise
// reduction on every polish pass.
type EffectChain []string

// ParseEffectChain tokenizes a sox options string, honoring shell quoting so
// an effect argument containing spaces stays a single token. An empty or
// blank string yields the default chain.
func ParseEffectChain(s string) (EffectChain, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultEffectChain, nil
	}

	tokens, err := shellquote.Split(s)
	if err != nil {
		return nil, Usagef("invalid sox options %q: %v", s, err)
	}

	return EffectChain(tokens), nil
}

// String renders the chain back to a shell-quotable string
func (c EffectChain) String() string {
	return shellquote.Join(c...)
}
