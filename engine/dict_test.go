package engine

import (
	"slices"
	"sort"
	"testing"
)

func TestDictFindWrite(t *testing.T) {
	d := NewDict()

	if _, ok := d.Find("missing", NSVariable); ok {
		t.Errorf("Find on empty dict returned ok=true")
	}

	d.Write("count", NSVariable, 3)
	got, ok := d.Find("count", NSVariable)
	if !ok || got != 3 {
		t.Errorf("Find(%q, NSVariable) = (%d, %v), want (3, true)", "count", got, ok)
	}
}

func TestDictNamespacesAreIndependent(t *testing.T) {
	d := NewDict()
	d.Write("x", NSVariable, 1)
	d.Write("x", NSSection, 2)

	v, ok := d.Find("x", NSVariable)
	if !ok || v != 1 {
		t.Errorf("Find(x, NSVariable) = (%d, %v), want (1, true)", v, ok)
	}
	s, ok := d.Find("x", NSSection)
	if !ok || s != 2 {
		t.Errorf("Find(x, NSSection) = (%d, %v), want (2, true)", s, ok)
	}
}

func TestDictErase(t *testing.T) {
	d := NewDict()
	d.Write("k", NSVariable, 1)
	d.Erase("k", NSVariable)

	if _, ok := d.Find("k", NSVariable); ok {
		t.Errorf("Find after Erase returned ok=true")
	}
}

func TestDictDynamicNamespaceID(t *testing.T) {
	// keys_sequences stores namespace-name -> dynamic id in namespace 0,
	// then members under that dynamic id — exercise a ns value wider
	// than the small fixed NSVariable/NSSection/etc. constants.
	d := NewDict()
	var dynamicNS uint64 = 1 << 40
	d.Write("widget", 0, dynamicNS)
	d.Write("color", dynamicNS, 7)

	nsID, ok := d.Find("widget", 0)
	if !ok || nsID != dynamicNS {
		t.Fatalf("Find(widget, 0) = (%d, %v), want (%d, true)", nsID, ok, dynamicNS)
	}
	v, ok := d.Find("color", nsID)
	if !ok || v != 7 {
		t.Errorf("Find(color, dynamicNS) = (%d, %v), want (7, true)", v, ok)
	}
}

func TestDictKeys(t *testing.T) {
	d := NewDict()
	d.Write("a", NSVariable, 0)
	d.Write("b", NSVariable, 1)
	d.Write("c", NSSection, 0)

	got := d.Keys(NSVariable)
	sort.Strings(got)
	if want := []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("Keys(NSVariable) = %v, want %v", got, want)
	}
}

func TestDictClearAndClone(t *testing.T) {
	d := NewDict()
	d.Write("k", NSVariable, 1)

	clone := d.Clone()
	clone.Write("k2", NSVariable, 2)

	if _, ok := d.Find("k2", NSVariable); ok {
		t.Errorf("original dict sees a key written only to its clone")
	}

	d.Clear()
	if _, ok := d.Find("k", NSVariable); ok {
		t.Errorf("Find after Clear returned ok=true")
	}
}
