// Package ast defines the positioned Abstract Syntax Tree produced by
// the Pythia parser and consumed by symbol-table construction and type
// analysis. Every node carries a half-open byte-offset range into the
// source buffer; the tree is strictly hierarchical, with each composite
// node exclusively owning its children.
package ast

import "fmt"

// Node is the positioned base embedded in every AST node. Start is the
// offset of the first token of the construct and End the end offset of
// its last token, so [Start, End) covers exactly the consumed source.
type Node struct {
	Start int
	End   int
}

// GetNode returns the node's position range.
func (n Node) GetNode() Node { return n }

// Len returns the number of source bytes the node covers.
func (n Node) Len() int { return n.End - n.Start }

// String returns a string representation of the range.
func (n Node) String() string { return fmt.Sprintf("[%d, %d)", n.Start, n.End) }

// Contains reports whether other lies within this node's range.
func (n Node) Contains(other Node) bool {
	return n.Start <= other.Start && other.End <= n.End
}

// Expression is the closed union of expression nodes.
type Expression interface {
	// GetNode returns the source range covered by this node.
	GetNode() Node
	// String returns a precedence-revealing representation of the node.
	String() string
	expressionNode() // Marker method to distinguish expressions
}

// Statement is the closed union of statement nodes.
type Statement interface {
	GetNode() Node
	String() string
	statementNode() // Marker method to distinguish statements
}

// Module is the root of the AST for one source unit.
type Module struct {
	Node
	Body []Statement
}

func (m *Module) String() string { return "Module" }
