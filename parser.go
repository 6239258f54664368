package kscope

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Parse parses every top-level form in data and stops at the first error.
func Parse(data []byte, table *Table, opt *ParseOptions) ([]Form, error) {
	return Decode(bytes.NewReader(data), table, opt)
}

// Decode parses every top-level form read from r and stops at the first error.
func Decode(r io.Reader, table *Table, opt *ParseOptions) ([]Form, error) {
	p := NewParser(r, table, opt)
	var forms []Form
	for {
		f, err := p.Next()
		if errors.Is(err, io.EOF) {
			return forms, nil
		}
		if err != nil {
			return nil, err
		}

		forms = append(forms, f)
	}
}

// DecodeFile parses every top-level form of a file.
func DecodeFile(path string, table *Table, opt *ParseOptions) ([]Form, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(b, table, opt)
}

// ParseExpr parses src as a single expression that must span the whole input.
func ParseExpr(src string, table *Table) (Expr, error) {
	p := NewParser(strings.NewReader(src), table, nil)
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if p.cur.Kind != TokEOF {
		return nil, p.errorf(nil, "unexpected %s after expression", p.cur)
	}

	return e, nil
}

// Parser is a recursive-descent parser with one token of lookahead.
// The current token is read lazily on first use, so constructing a Parser
// over interactive input does not block.
type Parser struct {
	t      *Tokenizer   // Token source
	table  *Table       // Binary operator precedences
	opt    ParseOptions // Options for the parser
	cur    Token        // Current token
	primed bool         // Current token has been read
	depth  int          // Current expression nesting
}

// NewParser creates a parser reading from r. A nil table selects DefaultTable.
func NewParser(r io.Reader, table *Table, opt *ParseOptions) *Parser {
	if table == nil {
		table = DefaultTable()
	}

	return &Parser{t: NewTokenizer(r), table: table, opt: opt.normalize()}
}

// Table returns the precedence table used by the parser.
func (p *Parser) Table() *Table {
	return p.table
}

// Current returns the current lookahead token.
func (p *Parser) Current() Token {
	p.prime()
	return p.cur
}

// Skip discards the current token. Drivers call it once after a failed
// top-level parse so that the next attempt makes progress.
func (p *Parser) Skip() {
	p.prime()
	p.advance()
}

// Err returns the first read error of the underlying input, if any.
func (p *Parser) Err() error {
	return p.t.Err()
}

// Next parses one top-level form: a definition, an extern, or a bare
// expression wrapped in an anonymous function. Top-level ';' tokens are
// skipped. At end of input Next returns io.EOF, or the read error that ended it.
func (p *Parser) Next() (Form, error) {
	p.prime()
	for p.cur.Is(';') {
		p.advance()
	}

	switch p.cur.Kind {
	case TokEOF:
		if err := p.t.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF

	case TokDef:
		fn, err := p.ParseDefinition()
		if err != nil {
			return nil, err
		}
		return fn, nil

	case TokExtern:
		proto, err := p.ParseExtern()
		if err != nil {
			return nil, err
		}
		return proto, nil

	default:
		fn, err := p.ParseTopLevelExpr()
		if err != nil {
			return nil, err
		}
		return fn, nil
	}
}

// ParseDefinition parses 'def' prototype expression.
func (p *Parser) ParseDefinition() (*Function, error) {
	p.prime()
	if p.cur.Kind != TokDef {
		return nil, p.errorf(nil, "expected 'def'")
	}
	p.advance()

	proto, err := p.ParsePrototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &Function{Proto: proto, Body: body}, nil
}

// ParseExtern parses 'extern' prototype.
func (p *Parser) ParseExtern() (*Prototype, error) {
	p.prime()
	if p.cur.Kind != TokExtern {
		return nil, p.errorf(nil, "expected 'extern'")
	}
	p.advance()

	return p.ParsePrototype()
}

// ParseTopLevelExpr parses an expression and wraps it in an anonymous function.
func (p *Parser) ParseTopLevelExpr() (*Function, error) {
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	return &Function{Proto: &Prototype{}, Body: body}, nil
}

// ParsePrototype parses identifier '(' identifier* ')'.
func (p *Parser) ParsePrototype() (*Prototype, error) {
	p.prime()
	if p.cur.Kind != TokIdent {
		return nil, p.errorf(ErrPrototype, "expected function name in prototype")
	}

	name := p.cur.Lit
	p.advance()
	if !p.cur.Is('(') {
		return nil, p.errorf(ErrPrototype, "expected '(' in prototype")
	}
	p.advance()

	var params []string
	for p.cur.Kind == TokIdent {
		if !p.opt.AllowDuplicateParams && slices.Contains(params, p.cur.Lit) {
			return nil, p.errorf(ErrDuplicateParam, "duplicate parameter %q in prototype", p.cur.Lit)
		}

		params = append(params, p.cur.Lit)
		p.advance()
	}

	if !p.cur.Is(')') {
		return nil, p.errorf(ErrPrototype, "expected ')' in prototype")
	}
	p.advance()

	return &Prototype{Name: name, Params: params}, nil
}

// ParseExpression parses primary (binop primary)*.
func (p *Parser) ParseExpression() (Expr, error) {
	p.prime()
	if p.opt.MaxDepth > 0 && p.depth >= p.opt.MaxDepth {
		return nil, p.errorf(ErrTooDeep, "expression nesting exceeds %d levels", p.opt.MaxDepth)
	}

	p.depth++
	defer func() { p.depth-- }()

	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	return p.parseBinOpRHS(0, lhs)
}

// parsePrimary dispatches on the current token.
func (p *Parser) parsePrimary() (Expr, error) {
	switch {
	case p.cur.Kind == TokIdent:
		return p.parseIdentifierExpr()
	case p.cur.Kind == TokNumber:
		return p.parseNumberExpr()
	case p.cur.Is('('):
		return p.parseParenExpr()
	default:
		return nil, p.errorf(ErrExpectedExpr, "expected expression")
	}
}

// parseNumberExpr parses a numeric literal.
func (p *Parser) parseNumberExpr() (Expr, error) {
	if p.opt.StrictNumbers && strings.Count(p.cur.Lit, ".") > 1 {
		return nil, p.errorf(ErrBadNumber, "invalid number literal %q", p.cur.Lit)
	}

	e := &NumberExpr{Value: p.cur.Num}
	p.advance()

	return e, nil
}

// parseParenExpr parses '(' expression ')'. The parentheses leave no node behind.
func (p *Parser) parseParenExpr() (Expr, error) {
	p.advance() // consume '('
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if !p.cur.Is(')') {
		return nil, p.errorf(ErrUnclosedParen, "expected ')'")
	}
	p.advance()

	return e, nil
}

// parseIdentifierExpr parses a variable reference or a call.
func (p *Parser) parseIdentifierExpr() (Expr, error) {
	name := p.cur.Lit
	p.advance()
	if !p.cur.Is('(') {
		return &VariableExpr{Name: name}, nil
	}
	p.advance() // consume '('

	var args []Expr
	if !p.cur.Is(')') {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.cur.Is(')') {
				break
			}
			if !p.cur.Is(',') {
				return nil, p.errorf(ErrArgList, "expected ')' or ',' in argument list")
			}
			p.advance()
		}
	}
	p.advance() // consume ')'

	return &CallExpr{Callee: name, Args: args}, nil
}

// parseBinOpRHS folds (binop primary)* into lhs by precedence climbing.
// Only operators binding at least as tight as minPrec are consumed.
func (p *Parser) parseBinOpRHS(minPrec int, lhs Expr) (Expr, error) {
	for {
		prec := p.table.tokenPrecedence(p.cur)
		if prec < minPrec {
			return lhs, nil
		}

		op := p.cur.Char
		p.advance()

		rhs, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		// A tighter operator after rhs takes rhs as its own left operand first.
		if next := p.table.tokenPrecedence(p.cur); prec < next {
			rhs, err = p.parseBinOpRHS(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = &BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
	}
}

// prime reads the first token if it has not been read yet.
func (p *Parser) prime() {
	if !p.primed {
		p.advance()
	}
}

// advance replaces the current token with the next one.
func (p *Parser) advance() {
	p.cur = p.t.Next()
	p.primed = true
}

// errorf builds a syntax error at the current token.
func (p *Parser) errorf(kind error, format string, args ...any) error {
	return &SyntaxError{Kind: kind, Msg: fmt.Sprintf(format, args...), Tok: p.cur}
}
