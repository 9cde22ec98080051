package codegen

import (
	"bytes"
	"fmt"

	"rcc/pkg/config"
	"rcc/pkg/ir"
)

// Backend is the interface that all code generation backends implement.
type Backend interface {
	// GenerateIR renders the backend's textual intermediate form, used
	// by --dump-ir.
	GenerateIR(prog *ir.Program, cfg *config.Config) (string, error)

	// Generate takes an IR program and a configuration and produces the
	// target assembly as a byte buffer.
	Generate(prog *ir.Program, cfg *config.Config) (*bytes.Buffer, error)
}

// SelectBackend resolves a backend by name.
func SelectBackend(name string) (Backend, error) {
	switch name {
	case "qbe":
		return newQBEBackend(), nil
	case "amd64":
		return newAMD64Backend(), nil
	case "arm64":
		return newARM64Backend(), nil
	default:
		return nil, fmt.Errorf("unsupported backend '%s'", name)
	}
}

// symbolName applies the target's global symbol naming convention.
func symbolName(name string, cfg *config.Config) string {
	if cfg.UnderscorePrefix() {
		return "_" + name
	}
	return name
}
