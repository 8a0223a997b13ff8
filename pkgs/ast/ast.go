// Package ast defines the syntax tree for IMP programs.
//
// Three closed node families cover the language: AExp for arithmetic
// expressions, BExp for boolean expressions, and Com for commands. Nodes are
// immutable values; each node exclusively owns its children. Variables appear
// as symbol-table indices, not names - the parser resolves names before
// building the tree.
package ast

import (
	"fmt"
	"strconv"
)

// AExp is an arithmetic expression: a variable reference, an integer
// literal, or a left-associative binary operation.
type AExp interface {
	fmt.Stringer
	aexp()
}

// Var references a variable by its symbol-table index.
type Var struct {
	Index int
}

// Num is a non-negative base-10 integer literal.
type Num struct {
	Value int
}

// Add is the sum L + R.
type Add struct {
	L, R AExp
}

// Sub is the difference L - R.
type Sub struct {
	L, R AExp
}

// Mul is the product L * R.
type Mul struct {
	L, R AExp
}

func (Var) aexp() {}
func (Num) aexp() {}
func (Add) aexp() {}
func (Sub) aexp() {}
func (Mul) aexp() {}

func (v Var) String() string { return "v" + strconv.Itoa(v.Index) }
func (n Num) String() string { return strconv.Itoa(n.Value) }
func (a Add) String() string { return "(" + a.L.String() + "+" + a.R.String() + ")" }
func (s Sub) String() string { return "(" + s.L.String() + "-" + s.R.String() + ")" }
func (m Mul) String() string { return "(" + m.L.String() + "*" + m.R.String() + ")" }

// BExp is a boolean expression: a literal, a relational comparison over
// arithmetic expressions, a negation, or a conjunction.
type BExp interface {
	fmt.Stringer
	bexp()
}

// True is the literal true.
type True struct{}

// False is the literal false.
type False struct{}

// Eq compares two arithmetic expressions for equality.
type Eq struct {
	L, R AExp
}

// Le compares two arithmetic expressions with less-or-equal.
type Le struct {
	L, R AExp
}

// Not negates a boolean expression.
type Not struct {
	B BExp
}

// And is the conjunction L && R.
type And struct {
	L, R BExp
}

func (True) bexp()  {}
func (False) bexp() {}
func (Eq) bexp()    {}
func (Le) bexp()    {}
func (Not) bexp()   {}
func (And) bexp()   {}

func (True) String() string  { return "true" }
func (False) String() string { return "false" }
func (e Eq) String() string  { return "(" + e.L.String() + "==" + e.R.String() + ")" }
func (l Le) String() string  { return "(" + l.L.String() + "<=" + l.R.String() + ")" }
func (n Not) String() string { return "not " + n.B.String() }
func (a And) String() string { return "(" + a.L.String() + "&&" + a.R.String() + ")" }

// Com is a command: skip, an assignment, a sequence, a conditional, or a
// while loop.
type Com interface {
	fmt.Stringer
	com()
}

// Skip is the command that does nothing.
type Skip struct{}

// Assign stores the value of Expr in the variable with index Var.
type Assign struct {
	Var  int
	Expr AExp
}

// Seq runs First, then Rest. The parser builds sequences right-recursively:
// "a ; b ; c" is Seq(a, Seq(b, c)).
type Seq struct {
	First, Rest Com
}

// If runs Then when Cond holds, Else otherwise.
type If struct {
	Cond       BExp
	Then, Else Com
}

// While runs Body as long as Cond holds.
type While struct {
	Cond BExp
	Body Com
}

func (Skip) com()   {}
func (Assign) com() {}
func (Seq) com()    {}
func (If) com()     {}
func (While) com()  {}

func (Skip) String() string { return "SKIP" }

func (a Assign) String() string {
	return "v" + strconv.Itoa(a.Var) + " := " + a.Expr.String()
}

func (s Seq) String() string {
	return s.First.String() + " ; " + s.Rest.String()
}

func (i If) String() string {
	return "IF " + i.Cond.String() + " THEN " + i.Then.String() + " ELSE " + i.Else.String() + " END"
}

func (w While) String() string {
	return "WHILE " + w.Cond.String() + " DO " + w.Body.String() + " END"
}
