package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// History is the single source of truth for submitted command lines: it
// backs the history builtin and seeds the line editor's recall buffer at
// startup. It is independent of whatever in-memory recall list the line
// editor keeps for arrow-key navigation during a session.
type History struct {
	lines []string
	path  string
	limit int
}

// NewHistory creates a history buffer persisted at path, retaining at most
// limit entries (0 means unlimited).
func NewHistory(path string, limit int) *History {
	return &History{path: path, limit: limit}
}

// Add appends a non-blank line, trimming the oldest entries once limit is
// exceeded.
func (h *History) Add(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	h.lines = append(h.lines, line)
	if h.limit > 0 && len(h.lines) > h.limit {
		h.lines = h.lines[len(h.lines)-h.limit:]
	}
}

// Clear empties the in-memory buffer. It does not touch the history file.
func (h *History) Clear() {
	h.lines = nil
}

// Len reports the number of entries currently buffered.
func (h *History) Len() int { return len(h.lines) }

// All returns a copy of the full buffer, oldest first.
func (h *History) All() []string {
	return append([]string(nil), h.lines...)
}

// Load replaces the in-memory buffer with the contents of the file at path
// (or the history's own configured path, if path is empty). A missing file
// is not an error from the caller's perspective of normal operation, but is
// still reported so builtins can decide whether to stay silent.
func (h *History) Load(path string) error {
	if path == "" {
		path = h.path
	}
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	h.lines = lines
	return nil
}

// Save writes the in-memory buffer, one entry per line, to path (or the
// history's own configured path, if path is empty).
func (h *History) Save(path string) error {
	if path == "" {
		path = h.path
	}
	if path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, l := range h.lines {
		fmt.Fprintln(w, l)
	}
	return w.Flush()
}

// Last returns the final n entries (all of them if n <= 0 or n exceeds the
// buffer length), oldest first.
func (h *History) Last(n int) []string {
	if n <= 0 || n > len(h.lines) {
		n = len(h.lines)
	}
	return h.lines[len(h.lines)-n:]
}

// print writes the last n entries (0 meaning all of them) to w, each line
// right-aligned in a 5-wide field, two spaces, then the entry text, matching
// the numbering of the full buffer rather than restarting at 1.
func (h *History) print(w io.Writer, n int) {
	items := h.Last(n)
	start := len(h.lines) - len(items) + 1
	for i, line := range items {
		fmt.Fprintf(w, "%5d  %s\n", start+i, line)
	}
}
