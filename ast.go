package kscope

// Expr is an expression node. The set of cases is closed:
// *NumberExpr, *VariableExpr, *BinaryExpr and *CallExpr.
type Expr interface {
	expr()
	String() string
}

// Form is one parsed top-level form: *Function or *Prototype.
type Form interface {
	form()
	String() string
}

// NumberExpr represents a numeric literal.
type NumberExpr struct {
	Value float64 // Literal value
}

// VariableExpr represents a reference to a named variable.
type VariableExpr struct {
	Name string // Variable name
}

// BinaryExpr represents a binary operator applied to two operands.
type BinaryExpr struct {
	LHS Expr // Left operand
	RHS Expr // Right operand
	Op  rune // Operator character
}

// CallExpr represents a function call.
type CallExpr struct {
	Callee string // Called function name
	Args   []Expr // Arguments in source order
}

// Prototype represents a function name and its parameter names.
type Prototype struct {
	Name   string   // Function name, empty for an anonymous top-level expression
	Params []string // Parameter names in source order
}

// Function represents a function definition.
type Function struct {
	Proto *Prototype // Signature
	Body  Expr       // Body expression
}

// expr implements the Expr interface.
func (*NumberExpr) expr() {}

// expr implements the Expr interface.
func (*VariableExpr) expr() {}

// expr implements the Expr interface.
func (*BinaryExpr) expr() {}

// expr implements the Expr interface.
func (*CallExpr) expr() {}

// form implements the Form interface.
func (*Prototype) form() {}

// form implements the Form interface.
func (*Function) form() {}

// IsAnonymous reports whether p is the wrapper of a top-level expression.
func (p *Prototype) IsAnonymous() bool {
	return p.Name == "" && len(p.Params) == 0
}

// IsTopLevelExpr reports whether f wraps a bare top-level expression.
func (f *Function) IsTopLevelExpr() bool {
	return f.Proto != nil && f.Proto.IsAnonymous()
}

func (e *NumberExpr) String() string   { return SExpr(e) }
func (e *VariableExpr) String() string { return SExpr(e) }
func (e *BinaryExpr) String() string   { return SExpr(e) }
func (e *CallExpr) String() string     { return SExpr(e) }
func (p *Prototype) String() string    { return SExpr(p) }
func (f *Function) String() string     { return SExpr(f) }
