package riftconf

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/RobertP-SyndicateLabs/riftconf/engine"
)

// diagWriter renders PRINT statement output in a dimmed color to
// distinguish it from a host's own logging, the way yawuliu-ninja-build-go
// uses fatih/color to separate build-tool chatter from compiler
// diagnostics. Color codes are dropped when fatih/color's NoColor is set,
// which by default tracks whether os.Stdout is a terminal, not whether
// the destination writer is.
type diagWriter struct {
	out io.Writer
	c   *color.Color
}

func newDiagWriter() *diagWriter {
	return &diagWriter{
		out: os.Stderr,
		c:   color.New(color.FgHiBlack),
	}
}

func (w *diagWriter) Write(p []byte) (int, error) {
	w.c.Fprint(w.out, string(p))
	return len(p), nil
}

// SetDiagOutput redirects PRINT output away from os.Stderr, e.g. to a
// buffer in tests or to a log file in a long-running host.
func (c *Config) SetDiagOutput(w io.Writer) {
	c.diag.out = w
}

// suggestThreshold caps how dissimilar a candidate may be from the query
// and still be offered as a "did you mean" suggestion.
const suggestThreshold = 2

// SuggestResource returns the closest known (namespace, property) pair to
// a fetch that just missed, or ("", "", false) if nothing is close
// enough. When the namespace itself is unknown, only the closest
// namespace is suggested and the property is "". This is diagnostics-only: it never affects Fetch's own
// semantics, which stay a silent miss on a genuine failure to resolve.
func (c *Config) SuggestResource(namespace, property string) (string, string, bool) {
	nsID, ok := c.store.KeysSequences.Find(namespace, 0)
	if !ok {
		bestNS, ok := closest(namespace, c.store.KeysSequences.Keys(0))
		if !ok {
			return "", "", false
		}
		return bestNS, "", true
	}

	bestProp, ok := closest(property, c.store.KeysSequences.Keys(nsID))
	if !ok {
		return "", "", false
	}
	return namespace, bestProp, true
}

// SuggestVariable returns the closest declared variable name to name, or
// "" if none is close enough.
func (c *Config) SuggestVariable(name string) (string, bool) {
	return closest(name, c.store.KeysVars.Keys(engine.NSVariable))
}

func closest(query string, candidates []string) (string, bool) {
	ranks := fuzzy.RankFindFold(query, candidates)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	if ranks[0].Distance > suggestThreshold {
		return "", false
	}
	return ranks[0].Target, true
}

// FormatFailure renders a sticky failure for CLI display, colorized by
// severity.
func FormatFailure(f engine.Failure) string {
	switch f {
	case engine.FailureNone:
		return color.GreenString(f.String())
	case engine.FailureInvalid:
		return color.RedString(f.String())
	default:
		return color.YellowString(f.String())
	}
}

// Describe writes a colorized multi-line summary of c to w, used by
// riftctl's load and check commands.
func (c *Config) Describe(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", color.CyanString("riftconf:"), c.String())
	fmt.Fprintf(w, "  sources:   %d\n", len(c.sources))
	fmt.Fprintf(w, "  resources: %d\n", c.store.Sequences.Groups())
	fmt.Fprintf(w, "  failure:   %s\n", FormatFailure(c.store.Failed))
	fmt.Fprintf(w, "  restricted: %v\n", c.store.Restricted)
}
