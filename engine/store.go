package engine

// Store holds the parts of a configuration instance that persist across
// reloads, as opposed to Context, which holds the transient state of a
// single load. Host-facing concerns (source path list, reload callbacks)
// live one layer up on riftconf.Config; Store is the engine's view of
// the same instance.
type Store struct {
	Sequences     Book
	KeysSequences Dict
	Vars          Book
	KeysVars      Dict
	Iteration     Book
	Tokens        KeywordTable
	Parameters    map[string]string
	Failed        Failure
	Restricted    bool
}

// NewStore returns a ready-to-use, empty Store with its token table
// built once and cached on the instance rather than rebuilt per parse.
func NewStore() *Store {
	return &Store{
		KeysSequences: *NewDict(),
		KeysVars:      *NewDict(),
		Tokens:        NewKeywordTable(),
		Parameters:    make(map[string]string),
	}
}

// ClearResources empties `sequences` and its namespace dictionary.
// Called at the start of every Load and exposed to the host as
// Config.ClearResources.
func (s *Store) ClearResources() {
	s.Sequences.Clear()
	s.KeysSequences.Clear()
}

// Repair clears every sticky failure except FailureInvalid: repair
// clears all sticky errors except INVALID, which marks a permanently
// dead instance.
func (s *Store) Repair() {
	if s.Failed != FailureInvalid {
		s.Failed = FailureNone
	}
}

// Mutating reports whether mutating operations may proceed, i.e. whether
// no sticky failure is set; false means they short-circuit.
func (s *Store) Mutating() bool {
	return s.Failed == FailureNone
}

// raise sets a sticky failure if none is already set, preferring the
// first failure seen over later ones — mirrors the original's "failed"
// bool, widened here to a closed Failure enum.
func (s *Store) raise(f Failure) {
	if s.Failed == FailureNone {
		s.Failed = f
	}
}

// Clone returns a deep copy of the store, used by the facade's Clone
// operation.
func (s *Store) Clone() *Store {
	out := &Store{
		Sequences:     *s.Sequences.Clone(),
		KeysSequences: *s.KeysSequences.Clone(),
		Vars:          *s.Vars.Clone(),
		KeysVars:      *s.KeysVars.Clone(),
		Iteration:     *s.Iteration.Clone(),
		Tokens:        s.Tokens, // the token table is immutable after construction
		Parameters:    make(map[string]string, len(s.Parameters)),
		Failed:        s.Failed,
		Restricted:    s.Restricted,
	}
	for k, v := range s.Parameters {
		out.Parameters[k] = v
	}
	return out
}
