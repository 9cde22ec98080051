package codegen

import (
	"bytes"
	"fmt"

	"rcc/pkg/config"
	"rcc/pkg/ir"
)

// arm64Backend emits AArch64 assembly directly. The integer return value
// travels in w0 per the AAPCS64 calling convention.
type arm64Backend struct{}

func newARM64Backend() Backend { return &arm64Backend{} }

func (b *arm64Backend) GenerateIR(prog *ir.Program, cfg *config.Config) (string, error) {
	return listIR(prog), nil
}

func (b *arm64Backend) Generate(prog *ir.Program, cfg *config.Config) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	buf.WriteString("\t.text\n")
	for _, fn := range prog.Funcs {
		sym := symbolName(fn.Name, cfg)
		fmt.Fprintf(&buf, "\t.globl %s\n\t.p2align 2\n%s:\n", sym, sym)
		for _, block := range fn.Blocks {
			for _, instr := range block.Instructions {
				if err := b.genInstr(&buf, instr); err != nil {
					return nil, err
				}
			}
		}
	}
	return &buf, nil
}

func (b *arm64Backend) genInstr(buf *bytes.Buffer, instr *ir.Instruction) error {
	switch instr.Op {
	case ir.OpRet:
		if len(instr.Args) == 1 {
			c := instr.Args[0].(*ir.Const)
			b.loadImmediate(buf, uint32(c.Value))
		}
		buf.WriteString("\tret\n")
		return nil
	default:
		return fmt.Errorf("arm64: cannot encode op '%s'", instr.Op)
	}
}

// loadImmediate materializes a 32-bit constant in w0. mov handles 16-bit
// immediates; anything wider needs a movz/movk pair.
func (b *arm64Backend) loadImmediate(buf *bytes.Buffer, v uint32) {
	lo, hi := v&0xffff, v>>16
	if hi == 0 {
		fmt.Fprintf(buf, "\tmov w0, #%d\n", lo)
		return
	}
	fmt.Fprintf(buf, "\tmovz w0, #%d\n", lo)
	fmt.Fprintf(buf, "\tmovk w0, #%d, lsl #16\n", hi)
}
