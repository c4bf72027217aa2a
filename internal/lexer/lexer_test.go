package lexer_test

import (
	"testing"

	"tim/internal/diag"
	"tim/internal/lexer"
	"tim/internal/source"
	"tim/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func equalKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v (full: %v)", i, want[i], got[i], got)
		}
	}
}

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	toks := lexer.New(source.FileID(1), "pub class Foo { func bar(): ?i32; }", nil).Tokenize()
	equalKinds(t, kinds(toks), []token.Kind{
		token.KwPub, token.KwClass, token.Ident, token.LBrace,
		token.KwFunc, token.Ident, token.LParen, token.RParen,
		token.Colon, token.Question, token.KwI32, token.Semicolon,
		token.RBrace, token.EOF,
	})
}

func TestTokenizeSkipsLineComments(t *testing.T) {
	toks := lexer.New(source.FileID(1), "let x: i32 = 1; // trailing comment\nlet y: i32 = 2;", nil).Tokenize()
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("expected tokens ending in EOF, got %v", kinds(toks))
	}
	for _, tk := range toks {
		if tk.Text == "trailing" || tk.Text == "comment" {
			t.Fatalf("comment text leaked into a token: %+v", tk)
		}
	}
}

func TestTokenizeStringLiteralUnescapes(t *testing.T) {
	toks := lexer.New(source.FileID(1), `"hi\"there"`, nil).Tokenize()
	if len(toks) != 2 || toks[0].Kind != token.StringLiteral {
		t.Fatalf("expected a single string literal then EOF, got %v", kinds(toks))
	}
	if toks[0].Text != `hi"there` {
		t.Fatalf("expected unescaped text %q, got %q", `hi"there`, toks[0].Text)
	}
}

func TestTokenizeFloatVsIntLiteral(t *testing.T) {
	toks := lexer.New(source.FileID(1), "1 2.5 3.", nil).Tokenize()
	equalKinds(t, kinds(toks), []token.Kind{
		token.IntLiteral, token.FloatLiteral, token.IntLiteral, token.Dot, token.EOF,
	})
}

func TestTokenizeUnterminatedStringReportsDiagnostic(t *testing.T) {
	bag := diag.NewBag(4)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.New(source.FileID(1), `"unterminated`, reporter).Tokenize()
	if !bag.HasErrors() {
		t.Fatalf("expected an unterminated-string diagnostic")
	}
	if len(toks) != 2 || toks[0].Kind != token.StringLiteral || toks[1].Kind != token.EOF {
		t.Fatalf("expected a recovered string literal then EOF, got %v", kinds(toks))
	}
}

func TestTokenizeUnknownCharacterReportsAndSkips(t *testing.T) {
	bag := diag.NewBag(4)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.New(source.FileID(1), "let x #: i32;", reporter).Tokenize()
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for the unknown '#' character")
	}
	equalKinds(t, kinds(toks), []token.Kind{
		token.KwLet, token.Ident, token.Colon, token.KwI32, token.Semicolon, token.EOF,
	})
}

func TestTokenizeSpansAreByteAccurate(t *testing.T) {
	toks := lexer.New(source.FileID(3), "  foo", nil).Tokenize()
	if len(toks) != 2 {
		t.Fatalf("expected an identifier then EOF, got %v", kinds(toks))
	}
	ident := toks[0]
	if ident.Span.File != source.FileID(3) || ident.Span.Start != 2 || ident.Span.End != 5 {
		t.Fatalf("unexpected span for identifier: %+v", ident.Span)
	}
}
