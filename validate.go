package kscope

import (
	"fmt"
	"strconv"
	"unicode"
)

// IssueLevel represents severity of validation issue.
type IssueLevel string

const (
	// IssueError indicates a validation error.
	IssueError IssueLevel = "error"
	// IssueWarning indicates a validation warning.
	IssueWarning IssueLevel = "warning"
)

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"` // Machine-readable code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"` // Operator or node the issue refers to
}

// String formats the issue for display.
func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Level, i.Message)
	}

	return fmt.Sprintf("%s: %s: %s", i.Level, i.Path, i.Message)
}

// HasErrors reports whether any issue has IssueError level.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Level == IssueError {
			return true
		}
	}

	return false
}

// grammarPunct lists characters with a fixed meaning in the grammar.
var grammarPunct = map[rune]struct{}{
	'(': {},
	')': {},
	',': {},
	';': {},
}

// Validate checks that every operator can actually appear as a binary operator.
func (t *Table) Validate() []Issue {
	var out []Issue
	for _, op := range t.Operators() {
		path := strconv.QuoteRune(op)
		prec := t.prec[op]

		switch {
		case unicode.IsLetter(op) || isDigit(op) || op == '.':
			out = append(out, Issue{Level: IssueError, Code: "unreachable_operator", Message: "character starts an identifier or number token", Path: path})
			continue
		case unicode.IsSpace(op) || op == '#':
			out = append(out, Issue{Level: IssueError, Code: "unreachable_operator", Message: "character is skipped by the tokenizer", Path: path})
			continue
		}

		if _, ok := grammarPunct[op]; ok {
			out = append(out, Issue{Level: IssueError, Code: "reserved_operator", Message: "character is grammar punctuation", Path: path})
			continue
		}

		if prec <= 0 {
			out = append(out, Issue{Level: IssueWarning, Code: "disabled_operator", Message: "non-positive precedence disables the operator", Path: path})
		}
	}

	return out
}

// ValidateForms checks hand-built or transformed forms against the invariants
// the parser guarantees: names are identifiers, operators are registered, and
// no child is missing. A nil table selects DefaultTable.
func ValidateForms(forms []Form, table *Table) []Issue {
	if table == nil {
		table = DefaultTable()
	}

	v := &formValidator{table: table}
	for i, f := range forms {
		v.form(f, "form["+strconv.Itoa(i)+"]")
	}

	return v.out
}

// formValidator collects issues while walking forms.
type formValidator struct {
	table *Table  // Operator table
	out   []Issue // Collected issues
}

// form validates one top-level form.
func (v *formValidator) form(f Form, path string) {
	switch f := f.(type) {
	case *Prototype:
		if f == nil {
			v.addError(path, "nil_node", "missing prototype")
			return
		}
		v.proto(f, path, false)

	case *Function:
		if f == nil {
			v.addError(path, "nil_node", "missing function")
			return
		}
		if f.Proto == nil {
			v.addError(path, "nil_node", "function without prototype")
		} else {
			v.proto(f.Proto, path+".proto", f.Proto.IsAnonymous())
		}
		v.expr(f.Body, path+".body")

	default:
		v.addError(path, "nil_node", "missing form")
	}
}

// proto validates a prototype; anonymous prototypes are allowed only as wrappers.
func (v *formValidator) proto(p *Prototype, path string, anonymous bool) {
	if !anonymous && !isIdent(p.Name) {
		v.addError(path, "bad_name", fmt.Sprintf("function name %q is not an identifier", p.Name))
	}

	seen := make(map[string]struct{}, len(p.Params))
	for _, name := range p.Params {
		if !isIdent(name) {
			v.addError(path, "bad_name", fmt.Sprintf("parameter %q is not an identifier", name))
		}
		if _, ok := seen[name]; ok {
			v.out = append(v.out, Issue{Level: IssueWarning, Code: "duplicate_param", Message: fmt.Sprintf("duplicate parameter %q", name), Path: path})
			continue
		}
		seen[name] = struct{}{}
	}
}

// expr validates an expression tree.
func (v *formValidator) expr(e Expr, path string) {
	switch e := e.(type) {
	case *NumberExpr:
		if e == nil {
			v.addError(path, "nil_node", "missing expression")
		}

	case *VariableExpr:
		if e == nil {
			v.addError(path, "nil_node", "missing expression")
			return
		}
		if !isIdent(e.Name) {
			v.addError(path, "bad_name", fmt.Sprintf("variable %q is not an identifier", e.Name))
		}

	case *BinaryExpr:
		if e == nil {
			v.addError(path, "nil_node", "missing expression")
			return
		}
		if !v.table.IsBinary(e.Op) {
			v.addError(path, "unknown_operator", fmt.Sprintf("operator %q is not a registered binary operator", e.Op))
		}
		v.expr(e.LHS, path+".lhs")
		v.expr(e.RHS, path+".rhs")

	case *CallExpr:
		if e == nil {
			v.addError(path, "nil_node", "missing expression")
			return
		}
		if !isIdent(e.Callee) {
			v.addError(path, "bad_name", fmt.Sprintf("callee %q is not an identifier", e.Callee))
		}
		for i, arg := range e.Args {
			v.expr(arg, path+".args["+strconv.Itoa(i)+"]")
		}

	default:
		v.addError(path, "nil_node", "missing expression")
	}
}

// addError appends an error-level issue.
func (v *formValidator) addError(path, code, msg string) {
	v.out = append(v.out, Issue{Level: IssueError, Code: code, Message: msg, Path: path})
}
