// Package analyzer checks a parsed program for semantic errors: return
// values must match the declared return type, and function names must be
// unique. It also reports unreachable statements after a return.
package analyzer

import (
	"rcc/pkg/ast"
	"rcc/pkg/config"
	"rcc/pkg/diag"
	"rcc/pkg/token"
)

// WarnFunc receives config-gated warnings; name is the -W toggle name.
type WarnFunc func(name string, tok token.Token, format string, args ...interface{})

type Analyzer struct {
	cfg     *config.Config
	symbols map[string]token.Type
	warnf   WarnFunc
}

func New(cfg *config.Config, warnf WarnFunc) *Analyzer {
	if warnf == nil {
		warnf = func(string, token.Token, string, ...interface{}) {}
	}
	return &Analyzer{cfg: cfg, symbols: make(map[string]token.Type), warnf: warnf}
}

func (a *Analyzer) Analyze(prog *ast.Program) error {
	for _, fn := range prog.Funcs {
		if err := a.analyzeFunc(fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeFunc(fn *ast.Node) error {
	decl := fn.Data.(ast.FuncDeclNode)
	if _, exists := a.symbols[decl.Name]; exists {
		return diag.Errorf(diag.Semantic, fn.Tok, "function '%s' redefined", decl.Name)
	}
	a.symbols[decl.Name] = decl.ReturnType
	return a.analyzeBlock(decl.Body, decl.ReturnType)
}

func (a *Analyzer) analyzeBlock(block *ast.Node, returnType token.Type) error {
	data := block.Data.(ast.BlockNode)
	returned := false
	for _, stmt := range data.Stmts {
		if returned {
			if a.cfg.IsWarningEnabled(config.WarnUnreachableCode) {
				a.warnf("unreachable-code", stmt.Tok, "statement is unreachable")
			}
			returned = false // one report per dead region
		}
		if err := a.analyzeStatement(stmt, returnType); err != nil {
			return err
		}
		if stmt.Type == ast.Return {
			returned = true
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt *ast.Node, returnType token.Type) error {
	switch stmt.Type {
	case ast.Return:
		data := stmt.Data.(ast.ReturnNode)
		if data.Expr == nil {
			// `return;` from an int function leaves the result
			// unspecified, which the language subset permits.
			return nil
		}
		exprType, err := a.exprType(data.Expr)
		if err != nil {
			return err
		}
		if exprType != returnType {
			return diag.Errorf(diag.Semantic, data.Expr.Tok,
				"cannot return %s from a function declared %s", exprType, returnType)
		}
		return nil
	default:
		return diag.Errorf(diag.Semantic, stmt.Tok, "unsupported statement: %s", stmt.Type)
	}
}

func (a *Analyzer) exprType(expr *ast.Node) (token.Type, error) {
	switch expr.Type {
	case ast.Number:
		return token.Int, nil
	default:
		return token.EOF, diag.Errorf(diag.Semantic, expr.Tok, "unsupported expression: %s", expr.Type)
	}
}
