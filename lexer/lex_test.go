package lexer

import (
	"fmt"
	"testing"

	"monogrammedchalk.com/samctl/arena"
)

func TestLexerRoundTrip(t *testing.T) {
	const in = `,x/foo/ c/bar/`

	toks := arena.New[Token](16)
	ts := Lex(toks, []byte(in))

	if !ts.Validate() {
		t.Fatalf("expected balanced, valid token stream")
	}

	// Lex/round-trip property (spec §8): concatenating literal slices in
	// original order reconstructs the line modulo whitespace drops.
	var got string
	for ts.Pos() < ts.Len() {
		tok := ts.Pop()
		fmt.Printf("%s %q\n", tok.Kind, ts.Literal(tok))
		got += ts.Literal(tok)
	}
	want := ",x/foo/c/bar/"
	if got != want {
		t.Errorf("round trip = %q, want %q", got, want)
	}
}

func TestLexerGroupsAndPipes(t *testing.T) {
	const in = `{ a/X/ | wc -l }`
	toks := arena.New[Token](16)
	ts := Lex(toks, []byte(in))
	if !ts.Validate() {
		t.Fatalf("expected balanced groups")
	}

	var kinds []Kind
	for ts.Pos() < ts.Len() {
		kinds = append(kinds, ts.Pop().Kind)
	}
	want := []Kind{GroupStart, String, Delimiter, String, Delimiter, String, String, Delimiter, String, GroupEnd}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kind[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestLexerUnbalancedGroup(t *testing.T) {
	toks := arena.New[Token](8)
	ts := Lex(toks, []byte(`{ d`))
	if ts.Validate() {
		t.Errorf("expected unbalanced group to fail validation")
	}
}
