// Package ast defines the types used to represent the Abstract Syntax Tree.
package ast

import (
	"rcc/pkg/token"
)

// NodeType defines the kind of a node in the AST.
type NodeType int

const (
	// Expressions
	Number NodeType = iota

	// Statements
	Return
	Block

	// Declarations
	FuncDecl
)

func (t NodeType) String() string {
	switch t {
	case Number:
		return "integer literal"
	case Return:
		return "return statement"
	case Block:
		return "compound statement"
	case FuncDecl:
		return "function declaration"
	default:
		return "unknown node"
	}
}

// Node is one node of the tree. Type tags which payload struct Data holds;
// Tok is the token the node was built from, kept for diagnostics.
type Node struct {
	Type NodeType
	Tok  token.Token
	Data interface{}
}

// Program is the root: the ordered list of function declarations in the
// translation unit. The grammar currently admits exactly one.
type Program struct {
	Funcs []*Node
}

// --- Node Data Structs ---

type NumberNode struct{ Value int64 }

// ReturnNode holds the returned expression, or nil for a bare `return;`.
type ReturnNode struct{ Expr *Node }

type BlockNode struct{ Stmts []*Node }

type FuncDeclNode struct {
	Name       string
	ReturnType token.Type
	Body       *Node
}

// --- Node Constructors ---

func newNode(tok token.Token, nodeType NodeType, data interface{}) *Node {
	return &Node{Type: nodeType, Tok: tok, Data: data}
}

func NewNumber(tok token.Token, value int64) *Node {
	return newNode(tok, Number, NumberNode{Value: value})
}

func NewReturn(tok token.Token, expr *Node) *Node {
	return newNode(tok, Return, ReturnNode{Expr: expr})
}

func NewBlock(tok token.Token, stmts []*Node) *Node {
	return newNode(tok, Block, BlockNode{Stmts: stmts})
}

func NewFuncDecl(tok token.Token, name string, returnType token.Type, body *Node) *Node {
	return newNode(tok, FuncDecl, FuncDeclNode{Name: name, ReturnType: returnType, Body: body})
}
