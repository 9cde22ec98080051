//go:build !windows

package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"modernc.org/libqbe"

	"rcc/pkg/config"
	"rcc/pkg/ir"
)

func (b *qbeBackend) Generate(prog *ir.Program, cfg *config.Config) (*bytes.Buffer, error) {
	qbeIR, err := b.GenerateIR(prog, cfg)
	if err != nil {
		return nil, err
	}

	var asmBuf bytes.Buffer
	err = libqbe.Main(cfg.QbeTarget, "input.ssa", strings.NewReader(qbeIR), &asmBuf, nil)
	if err != nil {
		return nil, fmt.Errorf("qbe lowering failed for IR:\n%s\nerror: %w", qbeIR, err)
	}
	return &asmBuf, nil
}
