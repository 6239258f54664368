package kscope

import (
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func num(v float64) Expr {
	return &NumberExpr{Value: v}
}

func vr(name string) Expr {
	return &VariableExpr{Name: name}
}

func bin(op rune, l, r Expr) Expr {
	return &BinaryExpr{Op: op, LHS: l, RHS: r}
}

func mustExpr(t *testing.T, src string) Expr {
	t.Helper()
	e, err := ParseExpr(src, nil)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return e
}

func mustForm(t *testing.T, src string) Form {
	t.Helper()
	p := NewParser(strings.NewReader(src), nil, nil)
	f, err := p.Next()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return f
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Expr
	}{
		{
			name: "tighter precedence binds first",
			src:  "1+2*3",
			want: bin('+', num(1), bin('*', num(2), num(3))),
		},
		{
			name: "equal precedence is left associative",
			src:  "1-2-3",
			want: bin('-', bin('-', num(1), num(2)), num(3)),
		},
		{
			name: "parentheses override grouping",
			src:  "(1+2)*3",
			want: bin('*', bin('+', num(1), num(2)), num(3)),
		},
		{
			name: "mixed levels",
			src:  "a < b + c * d - e",
			want: bin('<', vr("a"), bin('-', bin('+', vr("b"), bin('*', vr("c"), vr("d"))), vr("e"))),
		},
		{
			name: "tighter then looser",
			src:  "a * b + c",
			want: bin('+', bin('*', vr("a"), vr("b")), vr("c")),
		},
		{
			name: "call without arguments",
			src:  "foo()",
			want: &CallExpr{Callee: "foo"},
		},
		{
			name: "call with arguments",
			src:  "foo(1,2)",
			want: &CallExpr{Callee: "foo", Args: []Expr{num(1), num(2)}},
		},
		{
			name: "call with expression arguments",
			src:  "f(a + 1, g(b) * 2)",
			want: &CallExpr{Callee: "f", Args: []Expr{
				bin('+', vr("a"), num(1)),
				bin('*', &CallExpr{Callee: "g", Args: []Expr{vr("b")}}, num(2)),
			}},
		},
		{
			name: "redundant parentheses leave no node",
			src:  "((x))",
			want: vr("x"),
		},
		{
			name: "fractional literal",
			src:  ".5 + 1.25",
			want: bin('+', num(0.5), num(1.25)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustExpr(t, tt.src)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseDefinition(t *testing.T) {
	got := mustForm(t, "def foo(a b) a+b")
	want := &Function{
		Proto: &Prototype{Name: "foo", Params: []string{"a", "b"}},
		Body:  bin('+', vr("a"), vr("b")),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseExtern(t *testing.T) {
	got := mustForm(t, "extern sin(x)")
	want := &Prototype{Name: "sin", Params: []string{"x"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseTopLevelExpr(t *testing.T) {
	got := mustForm(t, "42")
	fn, ok := got.(*Function)
	if !ok {
		t.Fatalf("expected *Function, got %T", got)
	}
	if !fn.IsTopLevelExpr() || fn.Proto.Name != "" || len(fn.Proto.Params) != 0 {
		t.Fatalf("expected anonymous prototype, got %s", fn.Proto)
	}
	if !reflect.DeepEqual(fn.Body, num(42)) {
		t.Fatalf("unexpected body %s", fn.Body)
	}
}

func TestParseMissingParen(t *testing.T) {
	p := NewParser(strings.NewReader("(1+2"), nil, nil)
	f, err := p.Next()
	if err == nil {
		t.Fatalf("expected error, got %s", f)
	}
	if f != nil {
		t.Fatalf("expected no form on failure, got %#v", f)
	}
	if !errors.Is(err, ErrParse) || !errors.Is(err, ErrUnclosedParen) {
		t.Fatalf("unexpected error kind: %v", err)
	}

	var synErr *SyntaxError
	if !errors.As(err, &synErr) || synErr.Tok.Kind != TokEOF {
		t.Fatalf("expected error at end of input, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind error
		msg  string
	}{
		{")", ErrExpectedExpr, "expected expression"},
		{"1 +", ErrExpectedExpr, "expected expression"},
		{"foo(1 2)", ErrArgList, "expected ')' or ',' in argument list"},
		{"foo(1,", ErrExpectedExpr, "expected expression"},
		{"(1 2)", ErrUnclosedParen, "expected ')'"},
		{"def (x) x", ErrPrototype, "expected function name in prototype"},
		{"def foo x", ErrPrototype, "expected '(' in prototype"},
		{"extern foo(a, b)", ErrPrototype, "expected ')' in prototype"},
		{"def foo(a a) a", ErrDuplicateParam, `duplicate parameter "a" in prototype`},
		{"def", ErrPrototype, "expected function name in prototype"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := NewParser(strings.NewReader(tt.src), nil, nil).Next()
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}

			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if synErr.Msg != tt.msg {
				t.Fatalf("message mismatch: %q != %q", synErr.Msg, tt.msg)
			}
		})
	}
}

func TestFailureLeavesOffendingToken(t *testing.T) {
	p := NewParser(strings.NewReader("foo(1 2)"), nil, nil)
	if _, err := p.Next(); err == nil {
		t.Fatalf("expected error")
	}

	cur := p.Current()
	if cur.Kind != TokNumber || cur.Num != 2 {
		t.Fatalf("expected current token 2, got %s", cur)
	}
}

func TestDuplicateParamsAllowed(t *testing.T) {
	p := NewParser(strings.NewReader("def f(a a) a"), nil, &ParseOptions{AllowDuplicateParams: true})
	f, err := p.Next()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []string{"a", "a"}
	if got := f.(*Function).Proto.Params; !reflect.DeepEqual(got, want) {
		t.Fatalf("params mismatch: %v != %v", got, want)
	}
}

func TestStrictNumbers(t *testing.T) {
	e := mustExpr(t, "1.2.3")
	if !reflect.DeepEqual(e, num(1.2)) {
		t.Fatalf("lenient literal: got %s", e)
	}

	p := NewParser(strings.NewReader("1.2.3"), nil, &ParseOptions{StrictNumbers: true})
	if _, err := p.ParseExpression(); !errors.Is(err, ErrBadNumber) {
		t.Fatalf("expected ErrBadNumber, got %v", err)
	}

	p = NewParser(strings.NewReader("1.25"), nil, &ParseOptions{StrictNumbers: true})
	if _, err := p.ParseExpression(); err != nil {
		t.Fatalf("strict single dot: %v", err)
	}
}

func TestMaxDepth(t *testing.T) {
	opt := &ParseOptions{MaxDepth: 3}

	p := NewParser(strings.NewReader("((1))"), nil, opt)
	if _, err := p.ParseExpression(); err != nil {
		t.Fatalf("depth 3: %v", err)
	}

	p = NewParser(strings.NewReader("(((1)))"), nil, opt)
	if _, err := p.ParseExpression(); !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}

	p = NewParser(strings.NewReader("f(g(h(1)))"), nil, opt)
	if _, err := p.ParseExpression(); !errors.Is(err, ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep for nested calls, got %v", err)
	}

	deep := strings.Repeat("(", 1000) + "1" + strings.Repeat(")", 1000)
	p = NewParser(strings.NewReader(deep), nil, &ParseOptions{MaxDepth: -1})
	if _, err := p.ParseExpression(); err != nil {
		t.Fatalf("unbounded depth: %v", err)
	}
}

func TestCustomOperators(t *testing.T) {
	table := DefaultTable()
	table.Set('/', 300)
	table.Set('^', 400)

	got, err := ParseExpr("a / b ^ c + d", table)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := bin('+', bin('/', vr("a"), bin('^', vr("b"), vr("c"))), vr("d"))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %s, want %s", got, want)
	}

	// Without registration '/' is not a binary operator and ends the expression.
	if _, err := ParseExpr("a / b", nil); !errors.Is(err, ErrParse) {
		t.Fatalf("expected trailing token error, got %v", err)
	}

	table.Set('^', 0)
	p := NewParser(strings.NewReader("b ^ c"), table, nil)
	e, err := p.ParseExpression()
	if err != nil || !reflect.DeepEqual(e, vr("b")) {
		t.Fatalf("disabled operator: %v %v", e, err)
	}
	if !p.Current().Is('^') {
		t.Fatalf("expected '^' to remain current, got %s", p.Current())
	}
}

func TestNextSkipsSemicolonsAndReportsEOF(t *testing.T) {
	p := NewParser(strings.NewReader(";; 1; ;2;"), nil, nil)
	for i := 0; i < 2; i++ {
		if _, err := p.Next(); err != nil {
			t.Fatalf("form %d: %v", i, err)
		}
	}
	if _, err := p.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if _, err := p.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF again, got %v", err)
	}
}

func TestParseSamples(t *testing.T) {
	forms, err := DecodeFile(filepath.Join("testdata", "basic.ks"), nil, nil)
	if err != nil {
		t.Fatalf("parse basic.ks: %v", err)
	}

	want := []string{
		"(extern (sin x))",
		"(extern (cos x))",
		"(def (sq x) (* x x))",
		"(def (hyp a b) (+ (call sq a) (call sq b)))",
		"(def (lerp a b t) (+ a (* (- b a) t)))",
		"(toplevel (call hyp 3 4))",
		"(toplevel (< (* (call sin 1.5) (call cos 0.25)) 1))",
	}
	if len(forms) != len(want) {
		t.Fatalf("form count mismatch: %d vs %d", len(forms), len(want))
	}
	for i, f := range forms {
		if got := f.String(); got != want[i] {
			t.Fatalf("form %d: %s != %s", i, got, want[i])
		}
	}
}

func TestParseStopsAtFirstError(t *testing.T) {
	forms, err := DecodeFile(filepath.Join("testdata", "errors.ks"), nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if forms != nil {
		t.Fatalf("expected no forms on failure, got %d", len(forms))
	}

	var synErr *SyntaxError
	if !errors.As(err, &synErr) || synErr.Tok.Line != 2 {
		t.Fatalf("expected error on line 2, got %v", err)
	}
}

func TestParserIsolation(t *testing.T) {
	a := NewParser(strings.NewReader("1 + 2"), nil, nil)
	b := NewParser(strings.NewReader("x * y"), nil, nil)

	ea, err := a.ParseExpression()
	if err != nil {
		t.Fatalf("parse a: %v", err)
	}
	eb, err := b.ParseExpression()
	if err != nil {
		t.Fatalf("parse b: %v", err)
	}
	if ea.String() != "(+ 1 2)" || eb.String() != "(* x y)" {
		t.Fatalf("parsers interfered: %s, %s", ea, eb)
	}
}
