package token

import "testing"

func TestTokenize_MnemonicAndArgs(t *testing.T) {
	toks, err := Tokenize("mov r1, 0x2A")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(toks) != 4 {
		t.Fatalf("Expected 4 tokens, got %d: %v", len(toks), toks)
	}
	if toks[0].Kind != Ident || toks[0].Text != "mov" {
		t.Errorf("Expected ident 'mov', got %v", toks[0])
	}
	if toks[3].Kind != Integer || toks[3].Text != "0x2A" {
		t.Errorf("Expected hex integer '0x2A', got %v", toks[3])
	}
}

func TestTokenize_Label(t *testing.T) {
	toks, err := Tokenize("start: nop")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[0].Text != "start" || toks[1].Kind != Colon {
		t.Errorf("Expected 'start' ':', got %v", toks[:2])
	}
}

func TestTokenize_CharLiteral_Plain(t *testing.T) {
	toks, err := Tokenize("'a'")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[0].Kind != Char || toks[0].Text != "a" {
		t.Errorf("Expected char 'a', got %v", toks[0])
	}
}

func TestTokenize_CharLiteral_EscapedBackslash(t *testing.T) {
	toks, err := Tokenize(`'\\'`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[0].Text != "\\" {
		t.Errorf("Expected literal backslash, got %q", toks[0].Text)
	}
}

func TestTokenize_CharLiteral_EscapedQuote(t *testing.T) {
	toks, err := Tokenize(`'\''`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[0].Text != "'" {
		t.Errorf("Expected literal quote, got %q", toks[0].Text)
	}
}

func TestTokenize_CharLiteral_DigitTailQuirk(t *testing.T) {
	toks, err := Tokenize(`'\5'`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[0].Kind != Char || toks[0].Text != "\\5" {
		t.Errorf("Expected the raw decimal-tail marker '\\5', got %v", toks[0])
	}
}

func TestTokenize_CharLiteral_MultiDigitTailQuirk(t *testing.T) {
	toks, err := Tokenize(`'\123'`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[0].Text != "\\123" {
		t.Errorf("Expected '\\123', got %q", toks[0].Text)
	}
}

func TestTokenize_StringLiteral(t *testing.T) {
	toks, err := Tokenize(`"hi\0"`)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[0].Kind != String || toks[0].Text != "hi\x00" {
		t.Errorf("Expected string 'hi\\x00', got %q", toks[0].Text)
	}
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	if err == nil {
		t.Fatal("Expected an error for an unterminated string literal")
	}
}

func TestTokenize_CompoundExpression(t *testing.T) {
	toks, err := Tokenize("foo + 1")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(toks) != 3 || toks[1].Kind != Plus {
		t.Fatalf("Expected ident, plus, integer; got %v", toks)
	}
}

func TestTokenize_LocalLabelDots(t *testing.T) {
	toks, err := Tokenize("..baz")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[0].Kind != Ident || toks[0].Text != "..baz" {
		t.Errorf("Expected ident '..baz', got %v", toks[0])
	}
}
