// Package astfmt gives parsed commands a stable wire form. A Document is the
// canonical shape of one program: a version, the command tree flattened into
// tagged Nodes, and the symbol table spellings in index order. Documents
// encode to deterministic CBOR for fingerprinting and to JSON validated by an
// embedded schema for interchange.
package astfmt

import (
	"fmt"

	"github.com/imp-lang/imp/core/invariant"
	"github.com/imp-lang/imp/pkgs/ast"
)

// Version is the canonical format version carried by every Document.
const Version = 1

// maxNodeDepth bounds node-tree recursion when decoding untrusted documents.
const maxNodeDepth = 10000

// Document is the canonical form of one parsed program.
type Document struct {
	Version uint8    `json:"version" cbor:"version"`
	Command *Node    `json:"command" cbor:"command"`
	Symbols []string `json:"symbols" cbor:"symbols"`
}

// Node is a union over every AST node shape. Kind selects the variant and
// decides which of the remaining fields are meaningful.
type Node struct {
	Kind string `json:"kind" cbor:"kind"`

	// var and assign targets.
	Index int `json:"index,omitempty" cbor:"index,omitempty"`
	// num literal.
	Value int `json:"value,omitempty" cbor:"value,omitempty"`

	// Binary operators: add, sub, mul, eq, le, and.
	Left  *Node `json:"left,omitempty" cbor:"left,omitempty"`
	Right *Node `json:"right,omitempty" cbor:"right,omitempty"`

	// not.
	Child *Node `json:"child,omitempty" cbor:"child,omitempty"`

	// assign.
	Expr *Node `json:"expr,omitempty" cbor:"expr,omitempty"`

	// if and while.
	Cond *Node `json:"cond,omitempty" cbor:"cond,omitempty"`
	Then *Node `json:"then,omitempty" cbor:"then,omitempty"`
	Else *Node `json:"else,omitempty" cbor:"else,omitempty"`
	Body *Node `json:"body,omitempty" cbor:"body,omitempty"`

	// seq.
	First *Node `json:"first,omitempty" cbor:"first,omitempty"`
	Rest  *Node `json:"rest,omitempty" cbor:"rest,omitempty"`
}

// FromCommand builds the canonical document for a parsed command. symbols is
// the identifier spelling for each variable index, as produced by the symbol
// table.
func FromCommand(cmd ast.Com, symbols []string) *Document {
	invariant.NotNil(cmd, "cmd")

	// An allocated empty slice keeps "symbols" an array, never null, in the
	// JSON rendering.
	symbolsCopy := make([]string, len(symbols))
	copy(symbolsCopy, symbols)

	return &Document{
		Version: Version,
		Command: comNode(cmd),
		Symbols: symbolsCopy,
	}
}

// ToCommand rebuilds the AST from the canonical document, validating shape
// as it goes. Documents from MarshalBinary/EncodeJSON always convert back;
// hand-built ones may not.
func (d *Document) ToCommand() (ast.Com, error) {
	if d.Version != Version {
		return nil, fmt.Errorf("unsupported document version %d", d.Version)
	}
	if d.Command == nil {
		return nil, fmt.Errorf("document has no command")
	}
	return nodeCom(d.Command, 0)
}

func comNode(c ast.Com) *Node {
	switch c := c.(type) {
	case ast.Skip:
		return &Node{Kind: "skip"}
	case ast.Assign:
		return &Node{Kind: "assign", Index: c.Var, Expr: aexpNode(c.Expr)}
	case ast.Seq:
		return &Node{Kind: "seq", First: comNode(c.First), Rest: comNode(c.Rest)}
	case ast.If:
		return &Node{Kind: "if", Cond: bexpNode(c.Cond), Then: comNode(c.Then), Else: comNode(c.Else)}
	case ast.While:
		return &Node{Kind: "while", Cond: bexpNode(c.Cond), Body: comNode(c.Body)}
	default:
		panic(fmt.Sprintf("astfmt: unknown command type %T", c))
	}
}

func aexpNode(e ast.AExp) *Node {
	switch e := e.(type) {
	case ast.Var:
		return &Node{Kind: "var", Index: e.Index}
	case ast.Num:
		return &Node{Kind: "num", Value: e.Value}
	case ast.Add:
		return &Node{Kind: "add", Left: aexpNode(e.L), Right: aexpNode(e.R)}
	case ast.Sub:
		return &Node{Kind: "sub", Left: aexpNode(e.L), Right: aexpNode(e.R)}
	case ast.Mul:
		return &Node{Kind: "mul", Left: aexpNode(e.L), Right: aexpNode(e.R)}
	default:
		panic(fmt.Sprintf("astfmt: unknown arithmetic type %T", e))
	}
}

func bexpNode(b ast.BExp) *Node {
	switch b := b.(type) {
	case ast.True:
		return &Node{Kind: "true"}
	case ast.False:
		return &Node{Kind: "false"}
	case ast.Eq:
		return &Node{Kind: "eq", Left: aexpNode(b.L), Right: aexpNode(b.R)}
	case ast.Le:
		return &Node{Kind: "le", Left: aexpNode(b.L), Right: aexpNode(b.R)}
	case ast.Not:
		return &Node{Kind: "not", Child: bexpNode(b.B)}
	case ast.And:
		return &Node{Kind: "and", Left: bexpNode(b.L), Right: bexpNode(b.R)}
	default:
		panic(fmt.Sprintf("astfmt: unknown boolean type %T", b))
	}
}

func nodeCom(n *Node, depth int) (ast.Com, error) {
	if depth > maxNodeDepth {
		return nil, fmt.Errorf("node tree exceeds maximum depth %d", maxNodeDepth)
	}

	switch n.Kind {
	case "skip":
		return ast.Skip{}, nil
	case "assign":
		if n.Index < 0 {
			return nil, fmt.Errorf("assign node has negative index %d", n.Index)
		}
		if n.Expr == nil {
			return nil, fmt.Errorf("assign node missing expr")
		}
		e, err := nodeAExp(n.Expr, depth+1)
		if err != nil {
			return nil, err
		}
		return ast.Assign{Var: n.Index, Expr: e}, nil
	case "seq":
		if n.First == nil || n.Rest == nil {
			return nil, fmt.Errorf("seq node missing first or rest")
		}
		first, err := nodeCom(n.First, depth+1)
		if err != nil {
			return nil, err
		}
		rest, err := nodeCom(n.Rest, depth+1)
		if err != nil {
			return nil, err
		}
		return ast.Seq{First: first, Rest: rest}, nil
	case "if":
		if n.Cond == nil || n.Then == nil || n.Else == nil {
			return nil, fmt.Errorf("if node missing cond, then or else")
		}
		cond, err := nodeBExp(n.Cond, depth+1)
		if err != nil {
			return nil, err
		}
		thenBranch, err := nodeCom(n.Then, depth+1)
		if err != nil {
			return nil, err
		}
		elseBranch, err := nodeCom(n.Else, depth+1)
		if err != nil {
			return nil, err
		}
		return ast.If{Cond: cond, Then: thenBranch, Else: elseBranch}, nil
	case "while":
		if n.Cond == nil || n.Body == nil {
			return nil, fmt.Errorf("while node missing cond or body")
		}
		cond, err := nodeBExp(n.Cond, depth+1)
		if err != nil {
			return nil, err
		}
		body, err := nodeCom(n.Body, depth+1)
		if err != nil {
			return nil, err
		}
		return ast.While{Cond: cond, Body: body}, nil
	default:
		return nil, fmt.Errorf("unknown command kind %q", n.Kind)
	}
}

func nodeAExp(n *Node, depth int) (ast.AExp, error) {
	if depth > maxNodeDepth {
		return nil, fmt.Errorf("node tree exceeds maximum depth %d", maxNodeDepth)
	}

	switch n.Kind {
	case "var":
		if n.Index < 0 {
			return nil, fmt.Errorf("var node has negative index %d", n.Index)
		}
		return ast.Var{Index: n.Index}, nil
	case "num":
		if n.Value < 0 {
			return nil, fmt.Errorf("num node has negative value %d", n.Value)
		}
		return ast.Num{Value: n.Value}, nil
	case "add", "sub", "mul":
		if n.Left == nil || n.Right == nil {
			return nil, fmt.Errorf("%s node missing operand", n.Kind)
		}
		l, err := nodeAExp(n.Left, depth+1)
		if err != nil {
			return nil, err
		}
		r, err := nodeAExp(n.Right, depth+1)
		if err != nil {
			return nil, err
		}
		switch n.Kind {
		case "add":
			return ast.Add{L: l, R: r}, nil
		case "sub":
			return ast.Sub{L: l, R: r}, nil
		default:
			return ast.Mul{L: l, R: r}, nil
		}
	default:
		return nil, fmt.Errorf("unknown arithmetic kind %q", n.Kind)
	}
}

func nodeBExp(n *Node, depth int) (ast.BExp, error) {
	if depth > maxNodeDepth {
		return nil, fmt.Errorf("node tree exceeds maximum depth %d", maxNodeDepth)
	}

	switch n.Kind {
	case "true":
		return ast.True{}, nil
	case "false":
		return ast.False{}, nil
	case "not":
		if n.Child == nil {
			return nil, fmt.Errorf("not node missing child")
		}
		b, err := nodeBExp(n.Child, depth+1)
		if err != nil {
			return nil, err
		}
		return ast.Not{B: b}, nil
	case "eq", "le":
		if n.Left == nil || n.Right == nil {
			return nil, fmt.Errorf("%s node missing operand", n.Kind)
		}
		l, err := nodeAExp(n.Left, depth+1)
		if err != nil {
			return nil, err
		}
		r, err := nodeAExp(n.Right, depth+1)
		if err != nil {
			return nil, err
		}
		if n.Kind == "eq" {
			return ast.Eq{L: l, R: r}, nil
		}
		return ast.Le{L: l, R: r}, nil
	case "and":
		if n.Left == nil || n.Right == nil {
			return nil, fmt.Errorf("and node missing operand")
		}
		l, err := nodeBExp(n.Left, depth+1)
		if err != nil {
			return nil, err
		}
		r, err := nodeBExp(n.Right, depth+1)
		if err != nil {
			return nil, err
		}
		return ast.And{L: l, R: r}, nil
	default:
		return nil, fmt.Errorf("unknown boolean kind %q", n.Kind)
	}
}
