package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestHistoryAddAndLast(t *testing.T) {
	h := NewHistory("", 0)
	h.Add("echo one")
	h.Add("echo two")
	h.Add("  ")
	h.Add("echo three")

	if h.Len() != 3 {
		t.Fatalf("expected 3 entries (blank line skipped), got %d", h.Len())
	}
	last2 := h.Last(2)
	if len(last2) != 2 || last2[0] != "echo two" || last2[1] != "echo three" {
		t.Fatalf("unexpected Last(2): %v", last2)
	}
}

func TestHistoryLimitTrimsOldest(t *testing.T) {
	h := NewHistory("", 2)
	h.Add("a")
	h.Add("b")
	h.Add("c")
	if got := h.All(); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("expected [b c], got %v", got)
	}
}

func TestHistorySaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	h := NewHistory(path, 0)
	h.Add("first")
	h.Add("second")
	if err := h.Save(""); err != nil {
		t.Fatalf("Save: %v", err)
	}

	h2 := NewHistory(path, 0)
	if err := h2.Load(""); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := h2.All(); len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("unexpected loaded history: %v", got)
	}
}

func TestHistoryLoadMissingFileIsError(t *testing.T) {
	h := NewHistory("", 0)
	err := h.Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatalf("expected an error loading a missing file")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestHistoryPrintNumberingContinuesFromFullBuffer(t *testing.T) {
	h := NewHistory("", 0)
	for i := 0; i < 7; i++ {
		h.Add("cmd")
	}
	var buf bytes.Buffer
	h.print(&buf, 3)
	want := "    5  cmd\n    6  cmd\n    7  cmd\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory("", 0)
	h.Add("x")
	h.Clear()
	if h.Len() != 0 {
		t.Fatalf("expected empty history after Clear")
	}
}
