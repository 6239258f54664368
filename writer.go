package kscope

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Encode writes forms to writer as canonical source, one form per line.
func Encode(w io.Writer, forms []Form, opt *FormatOptions) error {
	fopt := opt.normalize()
	// Buffered writer reduces syscall overhead and short writes.
	bw := bufio.NewWriter(w)
	wr := &writer{w: bw, opt: fopt}
	for _, f := range forms {
		if err := wr.writeForm(f); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// EncodeFile writes forms to a file.
func EncodeFile(path string, forms []Form, opt *FormatOptions) error {
	b, err := Format(forms, opt)
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o600)
}

// Format renders forms to bytes.
func Format(forms []Form, opt *FormatOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, forms, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// FormatExpr renders a single expression with the minimal parentheses.
func FormatExpr(e Expr, opt *FormatOptions) (string, error) {
	var b strings.Builder
	wr := &writer{w: &b, opt: opt.normalize()}
	if err := wr.writeExpr(e); err != nil {
		return "", err
	}

	return b.String(), nil
}

// writer writes forms as source text.
type writer struct {
	w   io.Writer     // Writer to write to
	opt FormatOptions // Formatting options
}

// writeForm writes one top-level form followed by a newline.
func (w *writer) writeForm(f Form) error {
	switch f := f.(type) {
	case *Prototype:
		if err := w.writeString("extern "); err != nil {
			return err
		}
		if err := w.writePrototype(f); err != nil {
			return err
		}
		return w.writeString("\n")

	case *Function:
		return w.writeFunction(f)

	default:
		return fmt.Errorf("%w: unsupported form %T", ErrFormat, f)
	}
}

// writeFunction writes a definition or a top-level expression.
// Both end with ';' so that a following '(' cannot extend the body into a call.
func (w *writer) writeFunction(f *Function) error {
	if f.Proto == nil {
		return fmt.Errorf("%w: function without prototype", ErrFormat)
	}

	// Anonymous wrappers are written back as bare expressions.
	if !f.Proto.IsAnonymous() {
		if err := w.writeString("def "); err != nil {
			return err
		}
		if err := w.writePrototype(f.Proto); err != nil {
			return err
		}

		sep := " "
		if w.opt.BodyOnNewLine {
			sep = "\n" + w.opt.Indent
		}
		if err := w.writeString(sep); err != nil {
			return err
		}
	}

	if err := w.writeExpr(f.Body); err != nil {
		return err
	}

	return w.writeString(";\n")
}

// writePrototype writes name(a b c).
func (w *writer) writePrototype(p *Prototype) error {
	if err := w.writeIdent(p.Name); err != nil {
		return err
	}
	if err := w.writeString("("); err != nil {
		return err
	}

	for i, name := range p.Params {
		if i > 0 {
			if err := w.writeString(" "); err != nil {
				return err
			}
		}
		if err := w.writeIdent(name); err != nil {
			return err
		}
	}

	return w.writeString(")")
}

// writeExpr writes an expression.
func (w *writer) writeExpr(e Expr) error {
	switch e := e.(type) {
	case *NumberExpr:
		return w.writeNumber(e.Value)

	case *VariableExpr:
		return w.writeIdent(e.Name)

	case *CallExpr:
		if err := w.writeIdent(e.Callee); err != nil {
			return err
		}
		if err := w.writeString("("); err != nil {
			return err
		}
		for i, arg := range e.Args {
			if i > 0 {
				if err := w.writeString(", "); err != nil {
					return err
				}
			}
			if err := w.writeExpr(arg); err != nil {
				return err
			}
		}
		return w.writeString(")")

	case *BinaryExpr:
		return w.writeBinary(e)

	default:
		return fmt.Errorf("%w: unsupported expression %T", ErrFormat, e)
	}
}

// writeBinary writes lhs op rhs, parenthesizing operands whose grouping
// would otherwise change on re-parse: a looser left operand, or a right
// operand that is not strictly tighter (operators are left-associative).
func (w *writer) writeBinary(e *BinaryExpr) error {
	prec := w.opt.Table.Precedence(e.Op)
	if prec <= 0 {
		return fmt.Errorf("%w: operator %q is not a registered binary operator", ErrFormat, e.Op)
	}

	if err := w.writeOperand(e.LHS, func(p int) bool { return p < prec }); err != nil {
		return err
	}
	if err := w.writeString(" " + string(e.Op) + " "); err != nil {
		return err
	}

	return w.writeOperand(e.RHS, func(p int) bool { return p <= prec })
}

// writeOperand writes a binary operand, in parentheses when wrap reports so
// for its precedence.
func (w *writer) writeOperand(e Expr, wrap func(int) bool) error {
	b, ok := e.(*BinaryExpr)
	if !ok || !wrap(w.opt.Table.Precedence(b.Op)) {
		return w.writeExpr(e)
	}

	if err := w.writeString("("); err != nil {
		return err
	}
	if err := w.writeExpr(e); err != nil {
		return err
	}

	return w.writeString(")")
}

// writeNumber writes a float64 value in plain decimal notation, the only
// form the tokenizer reads back.
func (w *writer) writeNumber(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Signbit(v) {
		return fmt.Errorf("%w: number %v has no literal form", ErrFormat, v)
	}

	var buf [32]byte
	b := strconv.AppendFloat(buf[:0], v, 'f', -1, 64)
	_, err := w.w.Write(b)

	return err
}

// writeIdent writes a name after checking that it tokenizes as one identifier.
func (w *writer) writeIdent(name string) error {
	if !isIdent(name) {
		return fmt.Errorf("%w: %q is not an identifier", ErrFormat, name)
	}

	return w.writeString(name)
}

// writeString writes a string to the writer.
func (w *writer) writeString(s string) error {
	_, err := io.WriteString(w.w, s)
	return err
}

// isIdent reports whether s would be read back as a single identifier token.
func isIdent(s string) bool {
	if s == "" || s == "def" || s == "extern" {
		return false
	}

	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// SExpr renders an expression or form as an S-expression, e.g.
// (+ 1 (* 2 3)), (call foo 1 2), (def (foo a b) (+ a b)), (extern (sin x))
// and (toplevel 42) for an anonymous top-level expression.
func SExpr(n any) string {
	var b strings.Builder
	writeSExpr(&b, n)

	return b.String()
}

// writeSExpr appends the S-expression of n to b.
func writeSExpr(b *strings.Builder, n any) {
	switch n := n.(type) {
	case *NumberExpr:
		if n == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))

	case *VariableExpr:
		if n == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString(n.Name)

	case *BinaryExpr:
		if n == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteByte('(')
		b.WriteRune(n.Op)
		b.WriteByte(' ')
		writeSExpr(b, n.LHS)
		b.WriteByte(' ')
		writeSExpr(b, n.RHS)
		b.WriteByte(')')

	case *CallExpr:
		if n == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString("(call ")
		b.WriteString(n.Callee)
		for _, arg := range n.Args {
			b.WriteByte(' ')
			writeSExpr(b, arg)
		}
		b.WriteByte(')')

	case *Prototype:
		if n == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString("(extern ")
		writeProtoSExpr(b, n)
		b.WriteByte(')')

	case *Function:
		if n == nil {
			b.WriteString("<nil>")
			return
		}
		if n.IsTopLevelExpr() {
			b.WriteString("(toplevel ")
		} else {
			b.WriteString("(def ")
			writeProtoSExpr(b, n.Proto)
			b.WriteByte(' ')
		}
		writeSExpr(b, n.Body)
		b.WriteByte(')')

	default:
		b.WriteString("<nil>")
	}
}

// writeProtoSExpr appends (name a b) to b.
func writeProtoSExpr(b *strings.Builder, p *Prototype) {
	if p == nil {
		b.WriteString("()")
		return
	}

	b.WriteByte('(')
	b.WriteString(p.Name)
	for _, name := range p.Params {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	b.WriteByte(')')
}
