// Package codegen lowers the AST into IR and renders it to target
// assembly through a pluggable backend.
package codegen

import (
	"rcc/pkg/ast"
	"rcc/pkg/config"
	"rcc/pkg/diag"
	"rcc/pkg/ir"
)

// Context holds the state for one AST to IR lowering pass.
type Context struct {
	prog         *ir.Program
	currentFunc  *ir.Func
	currentBlock *ir.BasicBlock
	cfg          *config.Config
}

func NewContext(cfg *config.Config) *Context {
	return &Context{
		prog: &ir.Program{WordSize: cfg.WordSize},
		cfg:  cfg,
	}
}

// GenerateIR lowers a well-formed program. The parser guarantees the
// grammar, so failures here mean an AST node from outside the implemented
// subset reached us; those surface as Unsupported errors rather than
// panics.
func (c *Context) GenerateIR(prog *ast.Program) (*ir.Program, error) {
	for _, fn := range prog.Funcs {
		if err := c.genFunc(fn); err != nil {
			return nil, err
		}
	}
	return c.prog, nil
}

func (c *Context) genFunc(fn *ast.Node) error {
	decl, ok := fn.Data.(ast.FuncDeclNode)
	if !ok || fn.Type != ast.FuncDecl {
		return diag.Errorf(diag.Unsupported, fn.Tok, "cannot generate code for %s at top level", fn.Type)
	}

	c.currentFunc = &ir.Func{Name: decl.Name}
	c.currentBlock = &ir.BasicBlock{Label: &ir.Label{Name: "start"}}
	c.currentFunc.Blocks = append(c.currentFunc.Blocks, c.currentBlock)

	if err := c.genBlock(decl.Body); err != nil {
		return err
	}

	// Default epilogue: a body that does not end in an explicit return
	// still has to hand control back to the caller.
	if !c.endsInRet() {
		c.emit(&ir.Instruction{Op: ir.OpRet})
	}

	c.prog.Funcs = append(c.prog.Funcs, c.currentFunc)
	return nil
}

func (c *Context) genBlock(block *ast.Node) error {
	data, ok := block.Data.(ast.BlockNode)
	if !ok || block.Type != ast.Block {
		return diag.Errorf(diag.Unsupported, block.Tok, "cannot generate code for %s as a function body", block.Type)
	}
	for _, stmt := range data.Stmts {
		if err := c.genStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) genStmt(stmt *ast.Node) error {
	switch stmt.Type {
	case ast.Return:
		data := stmt.Data.(ast.ReturnNode)
		if data.Expr == nil {
			c.emit(&ir.Instruction{Op: ir.OpRet})
			return nil
		}
		val, err := c.genExpr(data.Expr)
		if err != nil {
			return err
		}
		c.emit(&ir.Instruction{Op: ir.OpRet, Args: []ir.Value{val}})
		return nil
	default:
		return diag.Errorf(diag.Unsupported, stmt.Tok, "cannot generate code for %s", stmt.Type)
	}
}

func (c *Context) genExpr(expr *ast.Node) (ir.Value, error) {
	switch expr.Type {
	case ast.Number:
		return &ir.Const{Value: expr.Data.(ast.NumberNode).Value}, nil
	default:
		return nil, diag.Errorf(diag.Unsupported, expr.Tok, "cannot generate code for %s", expr.Type)
	}
}

func (c *Context) emit(instr *ir.Instruction) {
	c.currentBlock.Instructions = append(c.currentBlock.Instructions, instr)
}

func (c *Context) endsInRet() bool {
	instrs := c.currentBlock.Instructions
	return len(instrs) > 0 && instrs[len(instrs)-1].Op == ir.OpRet
}
