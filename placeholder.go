package riftconf

import "github.com/RobertP-SyndicateLabs/riftconf/engine"

// Placeholder is the distinguished no-op configuration instance: every
// mutating operation on it is a silent no-op because its sticky failure
// is permanently FailureInvalid, which Repair cannot clear. Hosts that
// need "a configuration that might not exist yet" can hold a *Config
// initialized to Placeholder instead of a nil pointer.
//
// A typed Option/tagged-union result would be the more idiomatic Go
// answer to the null-object problem this sentinel solves; Placeholder is
// kept anyway because push_source, push_param and friends are still
// meant to be safely callable on a not-yet-loaded instance without a nil
// check at every call site, which a bare Option type at the Config level
// would not by itself provide.
var Placeholder = newPlaceholder()

func newPlaceholder() *Config {
	c := New()
	c.store.Failed = engine.FailureInvalid
	return c
}
