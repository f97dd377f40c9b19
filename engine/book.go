package engine

// Book is the append-only, group-indexed word buffer. It backs
// `sequences`, `vars` and `iteration` on Store. The concrete shape is an
// arena-of-strings-plus-extents layout in place of the original's opaque
// do_book_t/cbook_t: one flat slice of words plus a side table of
// per-group start offsets, which makes "global word index" (needed by
// FOR_EACH/VAR_INJECTION under iteration) a plain arithmetic lookup
// instead of a second data structure.
type Book struct {
	words  []string
	starts []int
}

// NewGroup opens a new, initially empty group at the end of the book.
// Grounded on cbook_prepare_new_group (original_source/src/sequence.c).
func (b *Book) NewGroup() {
	b.starts = append(b.starts, len(b.words))
}

// Write appends a word to the most recently opened group. The caller
// must have called NewGroup first; writing with no open group is a
// programmer error in the same way it is in the original (every call
// site in dispatcher.go opens a group before writing to it).
func (b *Book) Write(word string) {
	b.words = append(b.words, word)
}

// UndoGroup removes the most recently opened group along with any words
// written into it. Grounded on cbook_undo_new_group, used by
// declare_resource and declare_variable when a declaration yields zero
// values.
func (b *Book) UndoGroup() {
	if len(b.starts) == 0 {
		return
	}
	last := b.starts[len(b.starts)-1]
	b.words = b.words[:last]
	b.starts = b.starts[:len(b.starts)-1]
}

// Groups returns the number of groups in the book.
func (b *Book) Groups() int {
	return len(b.starts)
}

// GroupLen returns the number of words in group g.
func (b *Book) GroupLen(g int) int {
	if g < 0 || g >= len(b.starts) {
		return 0
	}
	return b.groupEnd(g) - b.starts[g]
}

func (b *Book) groupEnd(g int) int {
	if g+1 < len(b.starts) {
		return b.starts[g+1]
	}
	return len(b.words)
}

// WordAt returns the i'th word of group g, or "" if out of range.
func (b *Book) WordAt(g, i int) string {
	if g < 0 || g >= len(b.starts) || i < 0 || i >= b.GroupLen(g) {
		return ""
	}
	return b.words[b.starts[g]+i]
}

// WordIndex returns the global arena index of the i'th word of group g —
// the value FOR_EACH binds into the ITERATION namespace and VAR_INJECTION
// reads back.
func (b *Book) WordIndex(g, i int) int {
	return b.starts[g] + i
}

// WordAtIndex dereferences a global arena index produced by WordIndex.
func (b *Book) WordAtIndex(idx int) string {
	if idx < 0 || idx >= len(b.words) {
		return ""
	}
	return b.words[idx]
}

// Clear empties the book entirely. Grounded on cbook_clear, used when a
// load starts (sequences, via Store.ClearResources) and when an
// outer-most FOR_EACH exits (iteration).
func (b *Book) Clear() {
	b.words = b.words[:0]
	b.starts = b.starts[:0]
}

// Clone returns a deep copy, used by the facade's Clone operation.
func (b *Book) Clone() *Book {
	out := &Book{
		words:  make([]string, len(b.words)),
		starts: make([]int, len(b.starts)),
	}
	copy(out.words, b.words)
	copy(out.starts, b.starts)
	return out
}

// Cursor is a read position into a book, used by the facade's
// fetch/iterate/resource contract — not to be confused
// with Context's internal replay cursors (VarGroup/VarI, ItGroup/ItI),
// which are plain ints grounded on original_source/src/context.c and
// serve the tokenizer's replay mechanism instead.
type Cursor struct {
	book  *Book
	group int
	i     int
	valid bool
}

// ResetIterator points a cursor at group g, ready to be advanced by
// Next. Grounded on cbook_reset_iterator / do_book_reset_iterator.
func (b *Book) ResetIterator(g int) Cursor {
	return Cursor{book: b, group: g, i: -1, valid: g >= 0 && g < b.Groups()}
}

// Next advances the cursor and reports whether a value is now available.
func (c *Cursor) Next() bool {
	if !c.valid {
		return false
	}
	c.i++
	return c.i < c.book.GroupLen(c.group)
}

// Value returns the word at the cursor's current position, or "" if the
// cursor has not been advanced onto a valid position.
func (c *Cursor) Value() string {
	if !c.valid || c.i < 0 {
		return ""
	}
	return c.book.WordAt(c.group, c.i)
}

// Len reports how many values the cursor's group holds.
func (c *Cursor) Len() int {
	if !c.valid {
		return 0
	}
	return c.book.GroupLen(c.group)
}
