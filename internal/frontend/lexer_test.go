package frontend

import "testing"

func TestLexerNext(t *testing.T) {
	input := `var x = 5;
	x = x + 10;
	`

	tests := []struct {
		expectedText string
		expectedKind Kind
	}{
		{"var", KwVar},
		{"x", Ident},
		{"=", Assign},
		{"5", IntLit},
		{";", Semicolon},
		{"x", Ident},
		{"=", Assign},
		{"x", Ident},
		{"+", Plus},
		{"10", IntLit},
		{";", Semicolon},
		{"", EOF},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%d, got=%d (text=%q)",
				i, tt.expectedKind, tok.Kind, tok.Text)
		}
		if tok.Text != tt.expectedText {
			t.Fatalf("tests[%d] - text wrong. expected=%q, got=%q", i, tt.expectedText, tok.Text)
		}
	}
}

func TestLexerOperators(t *testing.T) {
	input := `== != <= >= && || += -= *= /= %= &= |= ^= << <<= >> >>=`
	tests := []Kind{
		Eq, NotEq, LtEq, GtEq, AndAnd, OrOr,
		PlusEq, MinusEq, StarEq, SlashEq, PercentEq,
		AmpEq, PipeEq, CaretEq, Shl, ShlEq, Shr, ShrEq,
	}

	l := NewLexer(input)
	for i, want := range tests {
		tok := l.Next()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - kind wrong. expected=%d, got=%d (text=%q)", i, want, tok.Kind, tok.Text)
		}
	}
	if tok := l.Next(); tok.Kind != EOF {
		t.Fatalf("expected EOF, got kind=%d text=%q", tok.Kind, tok.Text)
	}
}

func TestLexerNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		kind     Kind
		intVal   int64
		floatVal float64
	}{
		{"42", IntLit, 42, 0},
		{"3.14", FloatLit, 0, 3.14},
		{"1e3", FloatLit, 0, 1000},
		{"2.5e-2", FloatLit, 0, 0.025},
	}
	for _, tt := range tests {
		tok := NewLexer(tt.input).Next()
		if tok.Kind != tt.kind {
			t.Fatalf("input=%q: expected kind=%d, got=%d", tt.input, tt.kind, tok.Kind)
		}
		switch tt.kind {
		case IntLit:
			if tok.IntVal != tt.intVal {
				t.Fatalf("input=%q: expected int=%d, got=%d", tt.input, tt.intVal, tok.IntVal)
			}
		case FloatLit:
			if tok.FloatVal != tt.floatVal {
				t.Fatalf("input=%q: expected float=%v, got=%v", tt.input, tt.floatVal, tok.FloatVal)
			}
		}
	}
}

func TestLexerStringAndCharLiterals(t *testing.T) {
	tok := NewLexer(`"hello\nworld"`).Next()
	if tok.Kind != StringLit {
		t.Fatalf("expected StringLit, got kind=%d", tok.Kind)
	}
	if tok.StringVal != "hello\nworld" {
		t.Fatalf("expected decoded %q, got %q", "hello\nworld", tok.StringVal)
	}

	tok = NewLexer(`'a'`).Next()
	if tok.Kind != CharLit || tok.CharVal != 'a' {
		t.Fatalf("expected CharLit 'a', got kind=%d char=%q", tok.Kind, tok.CharVal)
	}
}

func TestLexerSkipsComments(t *testing.T) {
	input := "// line comment\nx /* block */ = 1;"
	l := NewLexer(input)
	tests := []Kind{Ident, Assign, IntLit, Semicolon, EOF}
	for i, want := range tests {
		tok := l.Next()
		if tok.Kind != want {
			t.Fatalf("tests[%d] - kind wrong. expected=%d, got=%d (text=%q)", i, want, tok.Kind, tok.Text)
		}
	}
}
