// Package compiler wires the stages into a single pure pipeline from
// source text to assembly text. Identical input produces byte-identical
// output; no state survives a call.
package compiler

import (
	"io"

	"rcc/pkg/analyzer"
	"rcc/pkg/ast"
	"rcc/pkg/codegen"
	"rcc/pkg/config"
	"rcc/pkg/diag"
	"rcc/pkg/lexer"
	"rcc/pkg/parser"
	"rcc/pkg/token"
)

// Artifacts collects the output of every stage so callers can dump any of
// them without re-running the pipeline.
type Artifacts struct {
	Tokens   []token.Token
	Program  *ast.Program
	IR       string
	Assembly string
}

// Compile runs lexing, parsing, semantic analysis, IR lowering and the
// configured backend over source. filename is only used to label
// warnings written to warnOut; pass nil to suppress them.
func Compile(filename, source string, cfg *config.Config, warnOut io.Writer) (*Artifacts, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}

	prog, err := parser.NewParser(tokens).Parse()
	if err != nil {
		return nil, err
	}

	var warnf analyzer.WarnFunc
	if warnOut != nil {
		warnf = func(name string, tok token.Token, format string, args ...interface{}) {
			diag.Warnf(warnOut, filename, source, name, tok, format, args...)
		}
	}
	if err := analyzer.New(cfg, warnf).Analyze(prog); err != nil {
		return nil, err
	}

	irProg, err := codegen.NewContext(cfg).GenerateIR(prog)
	if err != nil {
		return nil, err
	}

	backend, err := codegen.SelectBackend(cfg.BackendName)
	if err != nil {
		return nil, err
	}
	irText, err := backend.GenerateIR(irProg, cfg)
	if err != nil {
		return nil, err
	}
	asmBuf, err := backend.Generate(irProg, cfg)
	if err != nil {
		return nil, err
	}

	return &Artifacts{
		Tokens:   tokens,
		Program:  prog,
		IR:       irText,
		Assembly: asmBuf.String(),
	}, nil
}
