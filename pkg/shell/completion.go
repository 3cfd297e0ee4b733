package shell

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Complete implements the classic (buffer, state) completion contract: call
// repeatedly with state = 0, 1, 2, ... until it reports no candidate, to
// enumerate every completion for the word being typed at the end of
// buffer. It is pure with respect to the shell's builtin registry, path
// cache, and the filesystem at call time, which makes it directly testable
// without a line editor attached. The returned candidate carries its own
// trailing space (when one applies) so that callers, including the line
// editor adapter below, never have to reimplement that rule themselves.
func (sh *Shell) Complete(buffer string, state int) (string, bool) {
	cands := sh.candidates(buffer)
	if state < 0 || state >= len(cands) {
		return "", false
	}
	return decorateCandidate(cands[state], buffer), true
}

// decorateCandidate appends a trailing space to a raw candidate unless it
// names a directory (ends in '/') or the buffer already ends in whitespace
// (meaning the word being completed was empty to begin with).
func decorateCandidate(candidate, buffer string) string {
	endsInSpace := len(buffer) > 0 && unicode.IsSpace(rune(buffer[len(buffer)-1]))
	if !strings.HasSuffix(candidate, "/") && !endsInSpace {
		return candidate + " "
	}
	return candidate
}

// candidates computes every completion candidate for the word currently
// being typed at the end of buffer: command names (builtins and PATH
// executables) when completing the first word of a stage, filesystem
// entries when completing a redirection target, and both command names and
// filesystem entries for any later argument.
func (sh *Shell) candidates(buffer string) []string {
	tokens, lexErr := Lex(buffer)
	endsInSpace := len(buffer) > 0 && unicode.IsSpace(rune(buffer[len(buffer)-1]))

	var current string
	isFirstWord := true
	afterRedir := false

	if lexErr != nil {
		fields := strings.Fields(buffer)
		if !endsInSpace && len(fields) > 0 {
			current = fields[len(fields)-1]
			isFirstWord = len(fields) == 1
		} else {
			isFirstWord = len(fields) == 0
		}
	} else {
		n := len(tokens)
		if !endsInSpace && n > 0 && tokens[n-1].Kind == TokWord {
			current = tokens[n-1].Value
			isFirstWord = isStartOfStage(tokens[:n-1])
			if n-2 >= 0 && tokens[n-2].Kind == TokOp && isRedirOp(tokens[n-2].Value) {
				afterRedir = true
			}
		} else {
			isFirstWord = isStartOfStage(tokens)
			if n > 0 && tokens[n-1].Kind == TokOp && isRedirOp(tokens[n-1].Value) {
				afterRedir = true
			}
		}
	}

	set := map[string]struct{}{}
	if afterRedir {
		addFilesystemCandidates(set, current)
	} else if isFirstWord {
		sh.addCommandCandidates(set, current)
	} else {
		sh.addCommandCandidates(set, current)
		addFilesystemCandidates(set, current)
	}

	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// isStartOfStage reports whether the next word would begin a new stage:
// true at the very start of the line, or immediately after a '|', ';', or
// '&' operator.
func isStartOfStage(tokens []Token) bool {
	if len(tokens) == 0 {
		return true
	}
	last := tokens[len(tokens)-1]
	return last.Kind == TokOp && (last.Value == "|" || last.Value == ";" || last.Value == "&")
}

func (sh *Shell) addCommandCandidates(set map[string]struct{}, prefix string) {
	for name := range sh.builtins {
		if strings.HasPrefix(name, prefix) {
			set[name] = struct{}{}
		}
	}
	if sh.pathCache == nil {
		return
	}
	for _, name := range sh.pathCache.WithPrefix(prefix) {
		set[name] = struct{}{}
	}
}

func addFilesystemCandidates(set map[string]struct{}, prefix string) {
	dir := filepath.Dir(prefix)
	base := filepath.Base(prefix)
	if prefix == "" {
		dir, base = ".", ""
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), base) {
			continue
		}
		name := e.Name()
		if dir != "." {
			name = filepath.Join(dir, name)
		}
		if e.IsDir() {
			name += "/"
		}
		set[name] = struct{}{}
	}
}

// autoCompleter adapts Shell.candidates to chzyer/readline's AutoCompleter
// interface, which wants a replacement suffix and a replace-length rather
// than a full candidate word. It owns no completion logic of its own: every
// candidate is already fully decorated (trailing space and all) by
// decorateCandidate before this wrapper ever sees it.
type autoCompleter struct {
	sh *Shell
}

func (a *autoCompleter) Do(line []rune, pos int) ([][]rune, int) {
	buffer := string(line[:pos])
	cands := a.sh.candidates(buffer)
	if len(cands) == 0 {
		return nil, 0
	}

	current := currentWord(buffer)
	runes := []rune(current)

	out := make([][]rune, 0, len(cands))
	for _, c := range cands {
		decorated := decorateCandidate(c, buffer)
		out = append(out, []rune(decorated[len(current):]))
	}
	return out, len(runes)
}

func currentWord(buffer string) string {
	if buffer == "" {
		return ""
	}
	if unicode.IsSpace(rune(buffer[len(buffer)-1])) {
		return ""
	}
	fields := strings.Fields(buffer)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
