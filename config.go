// Package riftconf is the host-facing facade over the engine package's
// tokenizer, evaluator and dispatcher. A Config is one configuration
// instance: push sources and parameters onto it, Load it, then
// Fetch/Iterate/Resource to read back the resulting resources.
package riftconf

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/RobertP-SyndicateLabs/riftconf/engine"
)

// Callback is invoked after a successful Load, mirroring push_callback's
// (fn, opaque) pair by letting the host close over whatever state it
// needs.
type Callback func()

// Config is one configuration instance: the persistent engine.Store plus
// the host-registered sources, parameters and callbacks that drive Load.
type Config struct {
	store     *engine.Store
	sources   []engine.Source
	callbacks []Callback
	seed      int64

	cursor    engine.Cursor
	cursorSet bool

	diag *diagWriter
}

// New returns an empty, ready-to-use configuration instance. Grounded on
// config_create (structurally, RobertP-SyndicateLabs-SIC-lang's
// compiler.NewLexer/NewParser constructors).
func New() *Config {
	return &Config{
		store: engine.NewStore(),
		diag:  newDiagWriter(),
	}
}

// Clone returns a deep, independent copy of c, including its store and
// registered sources/parameters/callbacks. Grounded on the original's
// create / clone (deep copy) / destroy lifecycle.
func (c *Config) Clone() *Config {
	out := &Config{
		store:     c.store.Clone(),
		sources:   append([]engine.Source(nil), c.sources...),
		callbacks: append([]Callback(nil), c.callbacks...),
		seed:      c.seed,
		diag:      &diagWriter{out: c.diag.out, c: c.diag.c},
	}
	return out
}

// Destroy releases c's resources. Go's garbage collector reclaims the
// underlying memory on its own; Destroy exists so callers ported from a
// manual-lifetime host don't need a special case, and so a destroyed
// Config can be defensively made inert.
func (c *Config) Destroy() {
	c.store = engine.NewStore()
	c.sources = nil
	c.callbacks = nil
	c.cursorSet = false
}

// PushSource registers path as a candidate source, tried in registration
// order by Load. Grounded on push_source.
func (c *Config) PushSource(path string) {
	if !c.store.Mutating() {
		return
	}
	c.sources = append(c.sources, engine.Source{Path: path})
}

// PushParamString registers a string-valued parameter, readable from
// VAR_INJECTION under the PARAMETER namespace fallback.
// Only one value is kept per name; a later push with the same name
// overwrites the earlier one.
func (c *Config) PushParamString(name, value string) {
	if !c.store.Mutating() {
		return
	}
	c.store.Parameters[name] = value
}

// PushParamLong registers an integer-valued parameter as bare decimal
// text, not in the evaluator's "%.8f" NUMBER format, matching how a
// numeric literal appears verbatim in source.
func (c *Config) PushParamLong(name string, value int64) {
	if !c.store.Mutating() {
		return
	}
	c.store.Parameters[name] = strconv.FormatInt(value, 10)
}

// PushParamDouble registers a float-valued parameter, formatted the same
// "%.8f" way the evaluator formats a NUMBER result, so a double pushed
// here and read back through VAR_INJECTION has the same text a NUMBER
// result would have (the injected token itself is a STRING).
func (c *Config) PushParamDouble(name string, value float64) {
	if !c.store.Mutating() {
		return
	}
	c.store.Parameters[name] = strconv.FormatFloat(value, 'f', 8, 64)
}

// PushCallback registers fn to run after every successful Load. Grounded
// on push_callback.
func (c *Config) PushCallback(fn Callback) {
	if !c.store.Mutating() {
		return
	}
	c.callbacks = append(c.callbacks, fn)
}

// ClearParams empties the parameter map.
func (c *Config) ClearParams() {
	if !c.store.Mutating() {
		return
	}
	c.store.Parameters = make(map[string]string)
}

// ClearResources empties `sequences` and its namespace dictionary without
// touching sources or parameters.
func (c *Config) ClearResources() {
	if !c.store.Mutating() {
		return
	}
	c.store.ClearResources()
	c.cursorSet = false
}

// ClearSources empties the registered source path list.
func (c *Config) ClearSources() {
	if !c.store.Mutating() {
		return
	}
	c.sources = nil
}

// Load clears `sequences`, walks the registered sources in order, parses
// the first one that opens, and runs the registered callbacks on success.
// A sticky failure short-circuits the whole call, per the sticky-failure
// propagation policy. Grounded on the original's source loader.
func (c *Config) Load() error {
	if !c.store.Mutating() {
		return errors.New("riftconf: instance has a sticky failure, call Repair first")
	}

	c.store.ClearResources()
	c.cursorSet = false

	if err := c.store.LoadFromSources(c.sources, c.seed, c.diag); err != nil {
		return errors.Wrap(err, "riftconf: load")
	}

	for _, cb := range c.callbacks {
		cb()
	}
	return nil
}

// LoadInternal parses buf directly, bypassing the source list. Grounded
// on load_internal: file_inode is 0, which disables INCLUDE.
func (c *Config) LoadInternal(buf string) {
	if !c.store.Mutating() {
		return
	}

	c.store.ClearResources()
	c.cursorSet = false
	c.store.LoadFromBuffer(buf, c.seed, c.diag)

	for _, cb := range c.callbacks {
		cb()
	}
}

// Fetch positions the read cursor on the resolved group for (namespace,
// property), or clears it if no such resource exists. Grounded on
// fetch.
func (c *Config) Fetch(namespace, property string) bool {
	c.cursorSet = false

	nsID, ok := c.store.KeysSequences.Find(namespace, 0)
	if !ok {
		return false
	}
	group, ok := c.store.KeysSequences.Find(property, nsID)
	if !ok {
		return false
	}

	c.cursor = c.store.Sequences.ResetIterator(int(group))
	c.cursorSet = true
	return true
}

// Iterate advances the read cursor and reports whether a value is now
// available. Grounded on iterate.
func (c *Config) Iterate() bool {
	if !c.cursorSet {
		return false
	}
	return c.cursor.Next()
}

// Resource returns the read cursor's current value, or "" if unpositioned.
// Grounded on resource.
func (c *Config) Resource() string {
	if !c.cursorSet {
		return ""
	}
	return c.cursor.Value()
}

// ResourceLength returns the number of values in the currently fetched
// resource, or 0 if none is fetched. Grounded on resource_length.
func (c *Config) ResourceLength() int {
	if !c.cursorSet {
		return 0
	}
	return c.cursor.Len()
}

// CanOpenSources probes the registered sources without loading and
// returns the index of the first openable one. Grounded on
// can_open_sources.
func (c *Config) CanOpenSources() (int, bool) {
	idx := engine.CanOpenSources(c.sources)
	return idx, idx >= 0
}

// Error returns the instance's current sticky failure. Grounded on
// error.
func (c *Config) Error() engine.Failure {
	return c.store.Failed
}

// Repair clears every sticky failure except FailureInvalid. Grounded on
// repair.
func (c *Config) Repair() {
	c.store.Repair()
}

// Restrict switches the instance into restricted mode until Unrestrict
// is called. Grounded on restrict.
func (c *Config) Restrict() {
	c.store.Restricted = true
}

// Unrestrict clears restricted mode. The language itself never does this
// (RESTRICT is one-way within a parse); it exists so a host can reuse an
// instance across a trusted load after having restricted it for an
// untrusted one.
func (c *Config) Unrestrict() {
	c.store.Restricted = false
}

// String renders a short human-readable summary, used as the first line
// of Describe's output.
func (c *Config) String() string {
	return fmt.Sprintf("riftconf.Config{sources=%d, resources=%d, failed=%s, restricted=%v}",
		len(c.sources), c.store.Sequences.Groups(), c.store.Failed, c.store.Restricted)
}
