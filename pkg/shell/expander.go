package shell

import "strings"

// Lookup resolves an environment variable by name, mirroring os.LookupEnv's
// (value, found) shape so tests can inject a fake environment.
type Lookup func(name string) (string, bool)

// Expand substitutes $NAME and ${NAME} references in word against lookup.
// It is non-recursive: a value returned by lookup is copied into the result
// as-is and never itself rescanned for further references. An unresolved
// name expands to the empty string, matching unset-shell-variable behavior.
// A bare '$' not followed by a valid name, or an unterminated '${', is left
// untouched in the output.
func Expand(word string, lookup Lookup) string {
	runes := []rune(word)
	var out strings.Builder

	i := 0
	for i < len(runes) {
		ch := runes[i]
		if ch == literalDollar {
			out.WriteRune('$')
			i++
			continue
		}
		if ch != '$' {
			out.WriteRune(ch)
			i++
			continue
		}

		if i+1 < len(runes) && runes[i+1] == '{' {
			end := -1
			for j := i + 2; j < len(runes); j++ {
				if runes[j] == '}' {
					end = j
					break
				}
			}
			if end != -1 {
				name := string(runes[i+2 : end])
				if isValidVarName(name) {
					if val, ok := lookup(name); ok {
						out.WriteString(val)
					}
					i = end + 1
					continue
				}
			}
			out.WriteRune('$')
			i++
			continue
		}

		if i+1 < len(runes) && isVarNameStart(runes[i+1]) {
			j := i + 1
			for j < len(runes) && isVarNameChar(runes[j]) {
				j++
			}
			name := string(runes[i+1 : j])
			if val, ok := lookup(name); ok {
				out.WriteString(val)
			}
			i = j
			continue
		}

		out.WriteRune('$')
		i++
	}

	return out.String()
}

// ExpandTokens applies Expand to every word token marked Expandable,
// leaving operators untouched. Non-expandable (single-quoted) words are not
// expanded; only the lexer's escaped-'$' placeholder in them is decoded.
func ExpandTokens(tokens []Token, lookup Lookup) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		if t.Kind == TokWord {
			if t.Expandable {
				t.Value = Expand(t.Value, lookup)
			} else if strings.ContainsRune(t.Value, literalDollar) {
				// Still strip the lexer's escaped-'$' placeholder even when
				// single-quoting elsewhere in the word blocks expansion.
				t.Value = strings.ReplaceAll(t.Value, string(literalDollar), "$")
			}
		}
		out[i] = t
	}
	return out
}

func isVarNameStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isVarNameChar(r rune) bool {
	return isVarNameStart(r) || (r >= '0' && r <= '9')
}

func isValidVarName(name string) bool {
	if name == "" {
		return false
	}
	runes := []rune(name)
	if !isVarNameStart(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !isVarNameChar(r) {
			return false
		}
	}
	return true
}
