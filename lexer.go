package kscope

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"unicode"
)

// Tokenizer converts a character stream into tokens on demand.
// Each Tokenizer owns its cursor; separate instances never share state.
type Tokenizer struct {
	r   *bufio.Reader // Reader for the input
	err error         // First non-EOF read error
	pos position      // Position of the current character
	ch  rune          // Last read, not yet consumed character
	eof bool          // End of input
}

// position represents a position in the input.
type position struct {
	line int // Line number
	col  int // Column number
}

// NewTokenizer creates a tokenizer reading from r.
// Nothing is read until the first call to Next.
func NewTokenizer(r io.Reader) *Tokenizer {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	return &Tokenizer{r: br, ch: ' ', pos: position{line: 1, col: 0}}
}

// Tokenize reads r to the end and returns every token including the final TokEOF.
func Tokenize(r io.Reader) []Token {
	t := NewTokenizer(r)
	var out []Token
	for {
		tok := t.Next()
		out = append(out, tok)
		if tok.Kind == TokEOF {
			return out
		}
	}
}

// Next returns the next token. At end of input it keeps returning TokEOF.
func (t *Tokenizer) Next() Token {
	for {
		t.skipWhitespace()
		if t.eof {
			return Token{Kind: TokEOF, Line: t.pos.line, Col: t.pos.col}
		}

		line, col := t.pos.line, t.pos.col
		switch {
		case unicode.IsLetter(t.ch):
			lit := t.readIdent()
			switch lit {
			case "def":
				return Token{Kind: TokDef, Lit: lit, Line: line, Col: col}
			case "extern":
				return Token{Kind: TokExtern, Lit: lit, Line: line, Col: col}
			}

			return Token{Kind: TokIdent, Lit: lit, Line: line, Col: col}

		case isDigit(t.ch) || t.ch == '.':
			lit := t.readNumber()
			return Token{Kind: TokNumber, Lit: lit, Num: parseLeadingFloat(lit), Line: line, Col: col}

		case t.ch == '#':
			// Comments are transparent to the token stream.
			t.skipComment()
			continue
		}

		ch := t.ch
		t.read()
		return Token{Kind: TokChar, Lit: string(ch), Char: ch, Line: line, Col: col}
	}
}

// Err returns the first read error other than io.EOF.
// Such an error ends the token stream the same way end of input does.
func (t *Tokenizer) Err() error {
	return t.err
}

// read reads the next character from the input.
func (t *Tokenizer) read() {
	ch, _, err := t.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) && t.err == nil {
			t.err = err
		}
		t.eof = true
		t.ch = 0
		return
	}

	if t.ch == '\n' {
		t.pos.line++
		t.pos.col = 1
	} else {
		t.pos.col++
	}

	t.ch = ch
}

// skipWhitespace skips whitespace characters.
func (t *Tokenizer) skipWhitespace() {
	for !t.eof && unicode.IsSpace(t.ch) {
		t.read()
	}
}

// skipComment discards characters through end of line.
func (t *Tokenizer) skipComment() {
	for !t.eof && t.ch != '\n' && t.ch != '\r' {
		t.read()
	}
}

// readIdent reads an identifier.
func (t *Tokenizer) readIdent() string {
	var b []rune
	for !t.eof && (unicode.IsLetter(t.ch) || unicode.IsDigit(t.ch)) {
		b = append(b, t.ch)
		t.read()
	}

	return string(b)
}

// readNumber reads a run of digits and dots.
func (t *Tokenizer) readNumber() string {
	var b []byte
	for !t.eof && (isDigit(t.ch) || t.ch == '.') {
		b = append(b, byte(t.ch))
		t.read()
	}

	return string(b)
}

// isDigit checks if a character is an ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// parseLeadingFloat converts the longest prefix of lit holding at most one dot.
// Text without any digits converts to 0.
func parseLeadingFloat(lit string) float64 {
	end := len(lit)
	seenDot := false
	for i := 0; i < len(lit); i++ {
		if lit[i] != '.' {
			continue
		}
		if seenDot {
			end = i
			break
		}
		seenDot = true
	}

	f, err := strconv.ParseFloat(lit[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}

	return f
}
