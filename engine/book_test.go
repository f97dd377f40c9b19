package engine

import (
	"slices"
	"testing"
)

func TestBookGroups(t *testing.T) {
	var b Book

	b.NewGroup()
	b.Write("a")
	b.Write("b")

	b.NewGroup()
	b.Write("c")

	if got, want := b.Groups(), 2; got != want {
		t.Fatalf("Groups() = %d, want %d", got, want)
	}
	if got, want := b.GroupLen(0), 2; got != want {
		t.Errorf("GroupLen(0) = %d, want %d", got, want)
	}
	if got, want := b.GroupLen(1), 1; got != want {
		t.Errorf("GroupLen(1) = %d, want %d", got, want)
	}

	var got []string
	for i := 0; i < b.GroupLen(0); i++ {
		got = append(got, b.WordAt(0, i))
	}
	if want := []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("group 0 = %v, want %v", got, want)
	}
}

func TestBookUndoGroup(t *testing.T) {
	var b Book

	b.NewGroup()
	b.Write("kept")

	b.NewGroup()
	b.Write("discarded")
	b.UndoGroup()

	if got, want := b.Groups(), 1; got != want {
		t.Fatalf("Groups() after UndoGroup = %d, want %d", got, want)
	}
	if got, want := b.WordAt(0, 0), "kept"; got != want {
		t.Errorf("WordAt(0,0) = %q, want %q", got, want)
	}
}

func TestBookUndoGroupEmpty(t *testing.T) {
	var b Book
	b.UndoGroup() // must not panic with no groups
	if got := b.Groups(); got != 0 {
		t.Errorf("Groups() = %d, want 0", got)
	}
}

func TestBookWordIndexRoundTrip(t *testing.T) {
	var b Book
	b.NewGroup()
	b.Write("x")
	b.Write("y")
	b.NewGroup()
	b.Write("z")

	idx := b.WordIndex(1, 0)
	if got, want := b.WordAtIndex(idx), "z"; got != want {
		t.Errorf("WordAtIndex(WordIndex(1,0)) = %q, want %q", got, want)
	}
}

func TestBookOutOfRange(t *testing.T) {
	var b Book
	b.NewGroup()
	b.Write("only")

	if got := b.WordAt(5, 0); got != "" {
		t.Errorf("WordAt(out of range group) = %q, want \"\"", got)
	}
	if got := b.WordAt(0, 5); got != "" {
		t.Errorf("WordAt(out of range index) = %q, want \"\"", got)
	}
	if got := b.GroupLen(-1); got != 0 {
		t.Errorf("GroupLen(-1) = %d, want 0", got)
	}
}

func TestBookClear(t *testing.T) {
	var b Book
	b.NewGroup()
	b.Write("a")
	b.Clear()

	if got := b.Groups(); got != 0 {
		t.Errorf("Groups() after Clear = %d, want 0", got)
	}
}

func TestBookClone(t *testing.T) {
	var b Book
	b.NewGroup()
	b.Write("a")

	clone := b.Clone()
	clone.Write("b")

	if got, want := b.GroupLen(0), 1; got != want {
		t.Errorf("original GroupLen(0) = %d, want %d (clone must not alias)", got, want)
	}
	if got, want := clone.GroupLen(0), 2; got != want {
		t.Errorf("clone GroupLen(0) = %d, want %d", got, want)
	}
}

func TestCursorIteration(t *testing.T) {
	var b Book
	b.NewGroup()
	b.Write("one")
	b.Write("two")
	b.Write("three")

	c := b.ResetIterator(0)
	if got, want := c.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	var got []string
	for c.Next() {
		got = append(got, c.Value())
	}
	if want := []string{"one", "two", "three"}; !slices.Equal(got, want) {
		t.Errorf("iterated values = %v, want %v", got, want)
	}
	if c.Next() {
		t.Errorf("Next() after exhaustion returned true")
	}
}

func TestCursorInvalidGroup(t *testing.T) {
	var b Book
	c := b.ResetIterator(0)
	if c.Next() {
		t.Errorf("Next() on an invalid cursor returned true")
	}
	if got := c.Value(); got != "" {
		t.Errorf("Value() on an invalid cursor = %q, want \"\"", got)
	}
}
