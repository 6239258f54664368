package kscope

import (
	"strconv"
)

// TokenKind represents a type of a token.
type TokenKind int

// token kinds.
const (
	TokEOF    TokenKind = iota // End of input
	TokDef                     // def keyword
	TokExtern                  // extern keyword
	TokIdent                   // Identifier
	TokNumber                  // Numeric literal
	TokChar                    // Any other single character
)

// Token represents one lexical unit.
type Token struct {
	Lit  string    // Source text of the token
	Kind TokenKind // Kind of the token
	Num  float64   // Value of a TokNumber
	Char rune      // Character of a TokChar
	Line int       // Line number of the token start
	Col  int       // Column number of the token start
}

// String returns the name of a token kind.
func (k TokenKind) String() string {
	switch k {
	case TokEOF:
		return "EOF"
	case TokDef:
		return "def"
	case TokExtern:
		return "extern"
	case TokIdent:
		return "identifier"
	case TokNumber:
		return "number"
	case TokChar:
		return "char"
	default:
		return "token"
	}
}

// Is reports whether the token is the single character c.
func (t Token) Is(c rune) bool {
	return t.Kind == TokChar && t.Char == c
}

// String describes the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case TokEOF:
		return "end of input"
	case TokIdent:
		return "identifier " + strconv.Quote(t.Lit)
	case TokNumber:
		return "number " + t.Lit
	case TokChar:
		return strconv.QuoteRune(t.Char)
	default:
		return t.Kind.String()
	}
}
