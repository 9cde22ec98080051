// Package diag defines the structured errors produced by the compiler
// stages and renders them with source context.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"rcc/pkg/token"
)

type Kind int

const (
	Lex Kind = iota
	Parse
	Semantic
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex error"
	case Parse:
		return "parse error"
	case Semantic:
		return "semantic error"
	case Unsupported:
		return "unsupported construct"
	default:
		return "error"
	}
}

// Error is the terminal diagnostic for a compilation. Tok carries the
// source position of the offending lexeme; for errors raised before a
// token exists (e.g. a stray character) the lexer synthesizes one.
type Error struct {
	Kind Kind
	Tok  token.Token
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Tok.Line, e.Tok.Column, e.Kind, e.Msg)
}

func Errorf(kind Kind, tok token.Token, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Tok: tok, Msg: fmt.Sprintf(format, args...)}
}

const (
	colRed    = "\033[31m"
	colYellow = "\033[33m"
	colGreen  = "\033[32m"
	colReset  = "\033[0m"
)

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render writes a human-readable diagnostic: location, message, the
// offending source line and a caret underline. Colors are used only when
// w is a terminal.
func Render(w io.Writer, filename, source string, err error) {
	e, ok := err.(*Error)
	if !ok {
		fmt.Fprintf(w, "%s: error: %v\n", filename, err)
		return
	}

	label := e.Kind.String()
	if isTTY(w) {
		label = colRed + label + colReset
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", filename, e.Tok.Line, e.Tok.Column, label, e.Msg)
	writeSourceLine(w, source, e.Tok)
}

// Warnf writes a warning in the same layout, tagged with its -W name.
// Enabling and disabling warnings is the caller's concern.
func Warnf(w io.Writer, filename, source, name string, tok token.Token, format string, args ...interface{}) {
	label := "warning"
	if isTTY(w) {
		label = colYellow + label + colReset
	}
	fmt.Fprintf(w, "%s:%d:%d: %s: %s [-W%s]\n",
		filename, tok.Line, tok.Column, label, fmt.Sprintf(format, args...), name)
	writeSourceLine(w, source, tok)
}

func writeSourceLine(w io.Writer, source string, tok token.Token) {
	if tok.Line == 0 || source == "" {
		return
	}
	lines := strings.Split(source, "\n")
	if tok.Line > len(lines) {
		return
	}
	line := lines[tok.Line-1]
	fmt.Fprintf(w, "  %s\n", line)

	if tok.Column-1 > len(line) {
		return
	}
	caret := "^"
	if tok.Len > 1 {
		caret += strings.Repeat("~", tok.Len-1)
	}
	if isTTY(w) {
		caret = colGreen + caret + colReset
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", tok.Column-1), caret)
}
