package lexer

import (
	"testing"

	"github.com/fireflyframework/rule-engine-go/internal/token"
)

func tokenTypes(toks []token.Token) []token.Type {
	types := make([]token.Type, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestTokenizeSimpleComparison(t *testing.T) {
	toks := New(`creditScore at_least 650`).Tokenize()
	want := []token.Type{token.IDENTIFIER, token.GTE, token.NUMBER, token.EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeMultiWordOperatorJoins(t *testing.T) {
	tests := []struct {
		src  string
		want token.Type
	}{
		{"status is_null", token.IS_NULL},
		{"status is null", token.IS_NULL},
		{"status not_contains x", token.NOT_CONTAINS},
	}
	for _, tt := range tests {
		toks := New(tt.src).Tokenize()
		found := false
		for _, tok := range toks {
			if tok.Type == tt.want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("src %q: expected token %v, got %v", tt.src, tt.want, tokenTypes(toks))
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	toks := New(`>= <= == != -> += -=`).Tokenize()
	want := []token.Type{token.GTE, token.LTE, token.EQ, token.NEQ, token.ARROW, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.EOF}
	got := tokenTypes(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks := New(`"line1\nline2"`).Tokenize()
	if toks[0].Type != token.STRING {
		t.Fatalf("expected STRING, got %v", toks[0].Type)
	}
	if toks[0].Literal.(string) != "line1\nline2" {
		t.Errorf("got literal %q", toks[0].Literal)
	}
}

func TestTokenizeNumberLiterals(t *testing.T) {
	toks := New(`42 3.14`).Tokenize()
	if toks[0].Literal.(int) != 42 {
		t.Errorf("got %v", toks[0].Literal)
	}
	if toks[1].Literal.(float64) != 3.14 {
		t.Errorf("got %v", toks[1].Literal)
	}
}

func TestUnterminatedStringProducesLexError(t *testing.T) {
	l := New(`"unterminated`)
	l.Tokenize()
	errs := l.Errors()
	if len(errs) != 1 || errs[0].Code != "LEX_003" {
		t.Fatalf("expected one LEX_003 error, got %+v", errs)
	}
}

func TestInvalidNumericLiteralProducesLexError(t *testing.T) {
	l := New(`123abc`)
	l.Tokenize()
	errs := l.Errors()
	if len(errs) != 1 || errs[0].Code != "LEX_002" {
		t.Fatalf("expected one LEX_002 error, got %+v", errs)
	}
}

func TestIllegalCharacterProducesLexError(t *testing.T) {
	l := New(`creditScore @ 5`)
	l.Tokenize()
	errs := l.Errors()
	if len(errs) != 1 || errs[0].Code != "LEX_001" {
		t.Fatalf("expected one LEX_001 error, got %+v", errs)
	}
}

func TestLineColumnTracking(t *testing.T) {
	toks := New("a\nb").Tokenize()
	if toks[0].Location.Line != 1 {
		t.Errorf("expected line 1, got %d", toks[0].Location.Line)
	}
	if toks[1].Location.Line != 2 {
		t.Errorf("expected line 2, got %d", toks[1].Location.Line)
	}
}
