package engine

import (
	"io"
	"math/rand"
	"os"
)

// cursorDrained is written into a replay cursor's index on GotoEOL so
// that the next length comparison always fails, draining the cursor
// without an extra boolean flag — grounded on context_goto_eol in
// original_source/src/context.c, which sets ctx->var_i and ctx->it_i to
// SIZE_MAX for exactly this purpose.
const cursorDrained = 1 << 30

// Context is the per-load transient state. It is created fresh for the
// root parse of a Load call and threaded recursively through nested
// sequence parses, substitutions, iterations and includes, all sharing
// the one Depth counter.
type Context struct {
	Store *Store

	buffer string
	pos    int

	EOLReached bool
	EOFReached bool

	Depth int

	// Variable-injection replay cursor.
	VarGroup int
	VarI     int

	// Iteration replay cursor.
	ItGroup int
	ItI     int

	SkipSequences bool
	Restricted    bool

	// FileDir is the directory INCLUDE resolves relative paths
	// against — always the *root* source file's directory, even for
	// includes nested several levels deep, grounded on sequence.c's
	// include() using ctx->file_dir unconditionally.
	FileDir string

	// FileInode is zero when parsing an in-memory buffer (disables
	// INCLUDE), otherwise the file's inode number (or a path hash where
	// none is exposed) used for include-cycle detection.
	FileInode uint64

	// ancestors is the bounded stack of inodes of files currently being
	// parsed, used to detect INCLUDE cycles.
	ancestors []uint64

	Rand *rand.Rand

	// Diag receives PRINT statement output and defaults
	// to os.Stderr; riftconf.Config overrides it with a colorized
	// writer.
	Diag io.Writer
}

// NewContext creates a context for parsing buf against the given store.
// fileInode of 0 means "in-memory buffer", which disables INCLUDE.
func NewContext(store *Store, buf string, fileDir string, fileInode uint64, seed int64) *Context {
	return &Context{
		Store:      store,
		buffer:     buf,
		VarGroup:   -1,
		VarI:       cursorDrained,
		ItGroup:    -1,
		ItI:        cursorDrained,
		Restricted: store.Restricted,
		FileDir:    fileDir,
		FileInode:  fileInode,
		ancestors:  []uint64{fileInode},
		Rand:       rand.New(rand.NewSource(seed)),
		Diag:       os.Stderr,
	}
}

// child builds a Context for a recursively-included file, sharing the
// RNG and root FileDir (see FileDir doc comment above) but starting a
// fresh buffer cursor and a deeper ancestor stack for cycle detection.
func (c *Context) child(buf string, fileInode uint64) *Context {
	anc := make([]uint64, len(c.ancestors), len(c.ancestors)+1)
	copy(anc, c.ancestors)
	anc = append(anc, fileInode)
	return &Context{
		Store:      c.Store,
		buffer:     buf,
		VarGroup:   -1,
		VarI:       cursorDrained,
		ItGroup:    -1,
		ItI:        cursorDrained,
		Restricted: c.Restricted,
		FileDir:    c.FileDir,
		FileInode:  fileInode,
		ancestors:  anc,
		Depth:      c.Depth,
		Rand:       c.Rand,
		Diag:       c.Diag,
	}
}

// isAncestor reports whether inode is already being parsed higher up the
// include stack, i.e. whether including it again would cycle.
func (c *Context) isAncestor(inode uint64) bool {
	for _, a := range c.ancestors {
		if a == inode {
			return true
		}
	}
	return false
}

// readChar returns the next byte of the buffer, or 0 past the end.
// Grounded on read_char (original_source/src/context.c).
func (c *Context) readChar() byte {
	if c.pos >= len(c.buffer) {
		return 0
	}
	ch := c.buffer[c.pos]
	c.pos++
	return ch
}

// updateState tracks end-of-line/end-of-file on the byte just read.
// Grounded on update_state (original_source/src/context.c).
func (c *Context) updateState(ch byte) {
	switch ch {
	case 0:
		c.EOFReached = true
		c.EOLReached = true
	case '\n':
		c.EOLReached = true
	}
}

// readWord skips leading separators, then accumulates a word up to the
// next separator, honoring single/double quote literal mode. Grounded
// line-for-line on read_word (original_source/src/context.c).
func (c *Context) readWord() (string, bool) {
	if c.EOLReached {
		return "", false
	}

	var ch byte
	for {
		ch = c.readChar()
		if ch == '(' || ch == ')' || ch == ' ' || ch == '\t' || ch == '\v' {
			continue
		}
		break
	}

	var buf []byte
	quote1, quote2 := false, false

loop:
	for {
		switch {
		case ch == 0:
			break loop

		case ch == ' ' || ch == '\t' || ch == '\v' || ch == '\n' || ch == '(' || ch == ')':
			if quote1 || quote2 {
				break
			}
			break loop

		case ch == '\'':
			if !quote2 {
				quote1 = !quote1
				ch = c.readChar()
				continue loop
			}

		case ch == '"':
			if !quote1 {
				quote2 = !quote2
				ch = c.readChar()
				continue loop
			}
		}

		if len(buf) < TokenMaxLen-1 {
			buf = append(buf, ch)
		}
		ch = c.readChar()
	}

	c.updateState(ch)
	if len(buf) == 0 {
		return "", false
	}
	return string(buf), true
}

// GetTokenRaw drains any active variable replay, then any active
// iteration replay, and only then falls through to reading fresh input.
// Grounded on context_get_token_raw (original_source/src/context.c).
func (c *Context) GetTokenRaw() (string, Kind) {
	if c.VarGroup >= 0 && c.VarI < c.Store.Vars.GroupLen(c.VarGroup) {
		w := c.Store.Vars.WordAt(c.VarGroup, c.VarI)
		c.VarI++
		return w, KindString
	}
	if c.ItGroup >= 0 && c.ItI < c.Store.Iteration.GroupLen(c.ItGroup) {
		w := c.Store.Iteration.WordAt(c.ItGroup, c.ItI)
		c.ItI++
		return w, KindString
	}
	w, ok := c.readWord()
	if !ok {
		return "", KindInvalid
	}
	return w, KindString
}

// GotoEOL advances character by character until end-of-line, then drains
// any pending replay cursors — line boundaries always flush replays.
// Grounded on context_goto_eol.
func (c *Context) GotoEOL() {
	for !c.EOLReached {
		c.updateState(c.readChar())
	}
	c.VarI = cursorDrained
	c.ItI = cursorDrained
}
