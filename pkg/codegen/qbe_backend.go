package codegen

import (
	"fmt"
	"strings"

	"rcc/pkg/config"
	"rcc/pkg/ir"
)

// qbeBackend renders the IR as QBE intermediate language and lowers it to
// native assembly for the configured target.
type qbeBackend struct{}

func newQBEBackend() Backend { return &qbeBackend{} }

func (b *qbeBackend) GenerateIR(prog *ir.Program, cfg *config.Config) (string, error) {
	var out strings.Builder
	for i, fn := range prog.Funcs {
		if i > 0 {
			out.WriteString("\n")
		}
		if err := b.genFunc(&out, fn); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}

func (b *qbeBackend) genFunc(out *strings.Builder, fn *ir.Func) error {
	// QBE applies the target's symbol naming itself, so $name stays bare.
	fmt.Fprintf(out, "export function w $%s() {\n", fn.Name)
	for _, block := range fn.Blocks {
		fmt.Fprintf(out, "@%s\n", block.Label.Name)
		for _, instr := range block.Instructions {
			if err := b.genInstr(out, instr); err != nil {
				return err
			}
		}
	}
	out.WriteString("}\n")
	return nil
}

func (b *qbeBackend) genInstr(out *strings.Builder, instr *ir.Instruction) error {
	switch instr.Op {
	case ir.OpRet:
		if len(instr.Args) == 1 {
			fmt.Fprintf(out, "\tret %s\n", instr.Args[0])
			return nil
		}
		// A `w` function must return a value in QBE IL, so a bare
		// return materializes as zero.
		out.WriteString("\tret 0\n")
		return nil
	default:
		return fmt.Errorf("qbe: cannot encode op '%s'", instr.Op)
	}
}
