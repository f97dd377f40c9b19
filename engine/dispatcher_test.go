package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func fetchFirst(t *testing.T, s *Store, namespace, name string) (string, bool) {
	t.Helper()
	nsID, ok := s.KeysSequences.Find(namespace, 0)
	if !ok {
		return "", false
	}
	group, ok := s.KeysSequences.Find(name, nsID)
	if !ok {
		return "", false
	}
	cur := s.Sequences.ResetIterator(int(group))
	if !cur.Next() {
		return "", false
	}
	return cur.Value(), true
}

func TestDeclareResourceWithArithmetic(t *testing.T) {
	s := NewStore()
	s.LoadFromBuffer("widget value + 1 2\n", 1, nil)

	got, ok := fetchFirst(t, s, "widget", "value")
	if !ok {
		t.Fatalf("fetch widget.value failed")
	}
	if want := "3.00000000"; got != want {
		t.Errorf("widget.value = %q, want %q", got, want)
	}
}

func TestDeclareResourceWithConditional(t *testing.T) {
	s := NewStore()
	s.LoadFromBuffer("widget label < 1 2 yes no\n", 1, nil)

	got, ok := fetchFirst(t, s, "widget", "label")
	if !ok {
		t.Fatalf("fetch widget.label failed")
	}
	if want := "yes"; got != want {
		t.Errorf("widget.label = %q, want %q", got, want)
	}
}

func TestDeclareResourceWithColorMath(t *testing.T) {
	s := NewStore()
	s.LoadFromBuffer("widget color RGB 255 0 0\n", 1, nil)

	got, ok := fetchFirst(t, s, "widget", "color")
	if !ok {
		t.Fatalf("fetch widget.color failed")
	}
	packed := color{a: 255, r: 255, g: 0, b: 0}.packARGB()
	want := fmt.Sprintf("%d", packed)
	if got != want {
		t.Errorf("widget.color = %q, want %q", got, want)
	}
}

func TestEnumerationAndIteration(t *testing.T) {
	// LET_ENUM n 1 3 2 0 -> the group {1, 2, 3}. FOR_EACH n binds the
	// alias "n" to one word of that group per pass. Each pass's body
	// reads the bound word back through VAR_INJECTION ("% n") both to
	// build a distinct property name (JOIN) and to compute its value
	// (* % n 10), so all three passes must survive as distinct
	// properties: ns.item1=10, ns.item2=20, ns.item3=30.
	s := NewStore()
	s.LoadFromBuffer(
		"LET_ENUM n 1 3 2 0\n"+
			"FOR_EACH n\n"+
			"ns JOIN item % n * % n 10\n"+
			"FOR_END\n", 1, nil)

	for i, want := range []string{"10.00000000", "20.00000000", "30.00000000"} {
		prop := fmt.Sprintf("item%d", i+1)
		got, ok := fetchFirst(t, s, "ns", prop)
		if !ok {
			t.Fatalf("fetch ns.%s failed", prop)
		}
		if got != want {
			t.Errorf("ns.%s = %q, want %q", prop, got, want)
		}
	}
}

func TestSectionGating(t *testing.T) {
	s := NewStore()
	s.LoadFromBuffer(
		"SECTION_ADD debug\n"+
			"SECTION debug\n"+
			"widget visible true\n", 1, nil)

	got, ok := fetchFirst(t, s, "widget", "visible")
	if !ok || got != "true" {
		t.Fatalf("fetch widget.visible = (%q, %v), want (true, true)", got, ok)
	}
}

func TestSectionGatingSkipsOnMissingCondition(t *testing.T) {
	s := NewStore()
	s.LoadFromBuffer(
		"SECTION release\n"+
			"widget visible true\n", 1, nil)

	if _, ok := fetchFirst(t, s, "widget", "visible"); ok {
		t.Errorf("widget.visible was declared despite an unmet SECTION condition")
	}
}

func TestSectionDelRemovesCondition(t *testing.T) {
	s := NewStore()
	s.LoadFromBuffer(
		"SECTION_ADD debug\n"+
			"SECTION_DEL debug\n"+
			"SECTION debug\n"+
			"widget visible true\n", 1, nil)

	if _, ok := fetchFirst(t, s, "widget", "visible"); ok {
		t.Errorf("widget.visible was declared despite SECTION_DEL removing its condition")
	}
}

func TestRestrictModeBlocksVariableDeclarationButAllowsResource(t *testing.T) {
	s := NewStore()
	s.LoadFromBuffer(
		"RESTRICT\n"+
			"LET blocked 1\n"+
			"widget value 1\n", 1, nil)

	if _, ok := s.KeysVars.Find("blocked", NSVariable); ok {
		t.Errorf("LET succeeded under RESTRICT")
	}
	if _, ok := fetchFirst(t, s, "widget", "value"); !ok {
		t.Errorf("resource declaration was blocked under RESTRICT")
	}
}

func TestIncludeResolvesAgainstRoot(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	childPath := filepath.Join(dir, "child.conf")
	if err := os.WriteFile(childPath, []byte("widget included true\n"), 0o644); err != nil {
		t.Fatalf("WriteFile child: %v", err)
	}
	grandchildPath := filepath.Join(nested, "grandchild.conf")
	if err := os.WriteFile(grandchildPath, []byte("INCLUDE child.conf\n"), 0o644); err != nil {
		t.Fatalf("WriteFile grandchild: %v", err)
	}
	rootPath := filepath.Join(dir, "root.conf")
	if err := os.WriteFile(rootPath, []byte("INCLUDE nested/grandchild.conf\n"), 0o644); err != nil {
		t.Fatalf("WriteFile root: %v", err)
	}

	s := NewStore()
	if err := s.LoadFromSources([]Source{{Path: rootPath}}, 1, nil); err != nil {
		t.Fatalf("LoadFromSources: %v", err)
	}

	got, ok := fetchFirst(t, s, "widget", "included")
	if !ok || got != "true" {
		t.Errorf("fetch widget.included = (%q, %v), want (true, true) via an include resolved against the root file's directory", got, ok)
	}
}

func TestLoadFromSourcesFallsBackToFirstOpenable(t *testing.T) {
	dir := t.TempDir()
	realPath := filepath.Join(dir, "real.conf")
	if err := os.WriteFile(realPath, []byte("widget value 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := NewStore()
	err := s.LoadFromSources([]Source{
		{Path: filepath.Join(dir, "missing.conf")},
		{Path: realPath},
	}, 1, nil)
	if err != nil {
		t.Fatalf("LoadFromSources: %v", err)
	}

	if _, ok := fetchFirst(t, s, "widget", "value"); !ok {
		t.Errorf("fallback source was never parsed")
	}
}

func TestLoadFromSourcesAllMissingFails(t *testing.T) {
	s := NewStore()
	err := s.LoadFromSources([]Source{{Path: "/does/not/exist.conf"}}, 1, nil)
	if err == nil {
		t.Errorf("LoadFromSources with no openable source returned nil error")
	}
}

func TestPrintWritesToDiag(t *testing.T) {
	var buf bytes.Buffer
	s := NewStore()
	ctx := NewContext(s, "PRINT hello world\n", "", 0, 1)
	ctx.Diag = &buf

	ctx.ParseSequence()

	if want := "hello,\tworld,\t\n"; buf.String() != want {
		t.Errorf("PRINT output = %q, want %q", buf.String(), want)
	}
}
