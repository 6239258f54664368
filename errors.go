package kscope

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates a parser failure. Every *SyntaxError wraps it.
	ErrParse = errors.New("parse error")

	// ErrExpectedExpr indicates an unexpected token where an expression was expected.
	ErrExpectedExpr = errors.New("expected expression")

	// ErrUnclosedParen indicates a missing ')' after a parenthesized expression.
	ErrUnclosedParen = errors.New("unclosed parenthesis")

	// ErrArgList indicates a malformed call argument list.
	ErrArgList = errors.New("malformed argument list")

	// ErrPrototype indicates a malformed prototype.
	ErrPrototype = errors.New("malformed prototype")

	// ErrDuplicateParam indicates a prototype that repeats a parameter name.
	ErrDuplicateParam = errors.New("duplicate parameter")

	// ErrBadNumber indicates a numeric literal rejected in strict mode.
	ErrBadNumber = errors.New("invalid number")

	// ErrTooDeep indicates expression nesting beyond ParseOptions.MaxDepth.
	ErrTooDeep = errors.New("nesting too deep")

	// ErrFormat indicates an AST that cannot be rendered as source.
	ErrFormat = errors.New("format error")

	// ErrConfig indicates an invalid operator table or configuration file.
	ErrConfig = errors.New("config error")
)

// SyntaxError describes a single parse failure at the offending token.
type SyntaxError struct {
	Kind error  // One of the Err* kinds above
	Msg  string // Human-readable expectation
	Tok  Token  // Token that could not be matched
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s (near %s)", ErrParse, e.Tok.Line, e.Tok.Col, e.Msg, e.Tok)
}

// Unwrap exposes both ErrParse and the specific kind to errors.Is.
func (e *SyntaxError) Unwrap() []error {
	if e.Kind == nil {
		return []error{ErrParse}
	}

	return []error{ErrParse, e.Kind}
}
