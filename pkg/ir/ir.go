// Package ir is the intermediate representation handed to the backends.
// It is deliberately small: adding a language construct means adding an op
// here and a matching arm in every backend.
package ir

import "strconv"

type Op int

const (
	// OpRet returns from the current function. Zero args leaves the
	// return value unspecified; one Const arg returns that value.
	OpRet Op = iota
)

func (o Op) String() string {
	switch o {
	case OpRet:
		return "ret"
	default:
		return "unknown_op"
	}
}

type Value interface {
	isValue()
	String() string
}

type Const struct{ Value int64 }
type Label struct{ Name string }

func (c *Const) isValue() {}
func (l *Label) isValue() {}

func (c *Const) String() string { return strconv.FormatInt(c.Value, 10) }
func (l *Label) String() string { return l.Name }

type Instruction struct {
	Op   Op
	Args []Value
}

type BasicBlock struct {
	Label        *Label
	Instructions []*Instruction
}

type Func struct {
	Name   string
	Blocks []*BasicBlock
}

type Program struct {
	Funcs    []*Func
	WordSize int
}

func (p *Program) FindFunc(name string) *Func {
	for _, f := range p.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}
