//go:build windows

package codegen

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"

	"rcc/pkg/config"
	"rcc/pkg/ir"
)

// The self-contained QBE lowering is not available on Windows; fall back
// to a system-installed 'qbe'.
func (b *qbeBackend) Generate(prog *ir.Program, cfg *config.Config) (*bytes.Buffer, error) {
	if _, err := exec.LookPath("qbe"); err != nil {
		return nil, fmt.Errorf("qbe not found in PATH: %w", err)
	}

	qbeIR, err := b.GenerateIR(prog, cfg)
	if err != nil {
		return nil, err
	}

	inputFile, err := os.CreateTemp("", "rcc-qbe-*.ssa")
	if err != nil {
		return nil, err
	}
	defer inputFile.Close()
	defer os.Remove(inputFile.Name())

	if _, err = inputFile.WriteString(qbeIR); err != nil {
		return nil, err
	}

	outputName := inputFile.Name() + ".s"
	cmd := exec.Command("qbe", "-o", outputName, "-t", cfg.QbeTarget, inputFile.Name())
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("qbe lowering failed for IR:\n%s\nerror: %w", qbeIR, err)
	}

	outputFile, err := os.Open(outputName)
	if err != nil {
		return nil, err
	}
	defer outputFile.Close()
	defer os.Remove(outputName)

	var asmBuf bytes.Buffer
	if _, err = io.Copy(&asmBuf, outputFile); err != nil {
		return nil, err
	}
	return &asmBuf, nil
}
