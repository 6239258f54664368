package kscope

import (
	"maps"
	"slices"
)

// NotBinary is the precedence reported for characters that are not binary operators.
const NotBinary = -1

// Table maps single-character binary operators to binding strengths.
// Higher values bind tighter. A Table is not safe for concurrent mutation;
// Clone it before changing a table shared with running parsers.
type Table struct {
	prec map[rune]int // Operator precedences
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{prec: make(map[rune]int)}
}

// DefaultTable creates a table with the default operators:
// '<' 100, '+' 200, '-' 200 and '*' 300.
func DefaultTable() *Table {
	t := NewTable()
	t.Set('<', 100)
	t.Set('+', 200)
	t.Set('-', 200)
	t.Set('*', 300)

	return t
}

// Set registers op with precedence prec. A precedence <= 0 keeps the entry
// but disables the operator.
func (t *Table) Set(op rune, prec int) {
	if t.prec == nil {
		t.prec = make(map[rune]int)
	}
	t.prec[op] = prec
}

// Delete removes op from the table.
func (t *Table) Delete(op rune) {
	delete(t.prec, op)
}

// Precedence returns the precedence of op, or NotBinary when op is absent
// or registered with a non-positive precedence.
func (t *Table) Precedence(op rune) int {
	if t == nil {
		return NotBinary
	}

	p, ok := t.prec[op]
	if !ok || p <= 0 {
		return NotBinary
	}

	return p
}

// IsBinary reports whether op is an enabled binary operator.
func (t *Table) IsBinary(op rune) bool {
	return t.Precedence(op) > 0
}

// Operators returns all registered operators, enabled or not, in ascending order.
func (t *Table) Operators() []rune {
	if t == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(t.prec))
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}

	return &Table{prec: maps.Clone(t.prec)}
}

// Len returns the number of registered operators.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.prec)
}

// tokenPrecedence returns the precedence of tok as a binary operator.
func (t *Table) tokenPrecedence(tok Token) int {
	if tok.Kind != TokChar {
		return NotBinary
	}

	return t.Precedence(tok.Char)
}
