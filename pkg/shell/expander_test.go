package shell

import "testing"

func TestExpand(t *testing.T) {
	env := map[string]string{
		"FOO":  "bar",
		"NAME": "world",
		"REF":  "$FOO",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello", "hello"},
		{"bare name", "$FOO", "bar"},
		{"braced name", "${FOO}", "bar"},
		{"embedded in word", "pre$FOO post", "prebar post"},
		{"braced embedded", "pre${FOO}post", "prebarpost"},
		{"unset variable expands empty", "[$MISSING]", "[]"},
		{"dollar with no name left literal", "$ $", "$ $"},
		{"dollar before digit left literal", "$1", "$1"},
		{"unterminated brace left literal", "${FOO", "${FOO"},
		{"two references", "$FOO-$NAME", "bar-world"},
		{"not recursive", "$REF", "$FOO"},
		{"escaped dollar placeholder renders literal", string(literalDollar) + "FOO", "$FOO"},
		{"escaped dollar next to a real one", string(literalDollar) + "FOO-$FOO", "$FOO-bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tt.input, lookup)
			if got != tt.want {
				t.Fatalf("Expand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLexThenExpandEscapedDollarStaysLiteral(t *testing.T) {
	lookup := func(name string) (string, bool) {
		if name == "FOO" {
			return "bar", true
		}
		return "", false
	}

	tokens, err := Lex(`echo "\$FOO" "$FOO"`)
	if err != nil {
		t.Fatal(err)
	}
	got := ExpandTokens(tokens, lookup)
	if len(got) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %+v", len(got), got)
	}
	if got[1].Value != "$FOO" {
		t.Fatalf("expected escaped \\$FOO to stay literal, got %q", got[1].Value)
	}
	if got[2].Value != "bar" {
		t.Fatalf("expected unescaped $FOO to expand, got %q", got[2].Value)
	}
}

func TestExpandTokensSkipsSingleQuoted(t *testing.T) {
	lookup := func(name string) (string, bool) {
		if name == "FOO" {
			return "bar", true
		}
		return "", false
	}

	tokens := []Token{
		{Kind: TokWord, Value: "$FOO", Expandable: true},
		{Kind: TokWord, Value: "$FOO", Expandable: false},
		{Kind: TokOp, Value: "|"},
	}

	got := ExpandTokens(tokens, lookup)
	if got[0].Value != "bar" {
		t.Fatalf("expected expandable word to expand, got %q", got[0].Value)
	}
	if got[1].Value != "$FOO" {
		t.Fatalf("expected non-expandable word unchanged, got %q", got[1].Value)
	}
	if got[2] != (Token{Kind: TokOp, Value: "|"}) {
		t.Fatalf("expected operator token unchanged, got %+v", got[2])
	}
}
