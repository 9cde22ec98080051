package diag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"rcc/pkg/token"
)

func TestErrorString(t *testing.T) {
	err := Errorf(Parse, token.Token{Line: 3, Column: 7}, "expected '%s'", ";")
	want := "3:7: parse error: expected ';'"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindStrings(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Lex, "lex error"},
		{Parse, "parse error"},
		{Semantic, "semantic error"},
		{Unsupported, "unsupported construct"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	source := "int f() { return }"
	err := Errorf(Parse, token.Token{Line: 1, Column: 18, Len: 1}, "expected a return value or ';'")

	var buf bytes.Buffer
	Render(&buf, "f.c", source, err)

	got := buf.String()
	want := "f.c:1:18: parse error: expected a return value or ';'\n" +
		"  int f() { return }\n" +
		"                   ^\n"
	if got != want {
		t.Errorf("Render output:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderUnderlinesToken(t *testing.T) {
	source := "int f() { return oops; }"
	err := Errorf(Parse, token.Token{Line: 1, Column: 18, Len: 4}, "expected a number after 'return'")

	var buf bytes.Buffer
	Render(&buf, "f.c", source, err)

	if !strings.Contains(buf.String(), "^~~~") {
		t.Errorf("expected a tilde underline covering the token:\n%s", buf.String())
	}
}

func TestRenderPlainError(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, "f.c", "", errors.New("disk on fire"))
	want := "f.c: error: disk on fire\n"
	if buf.String() != want {
		t.Errorf("Render output = %q, want %q", buf.String(), want)
	}
}

func TestWarnf(t *testing.T) {
	source := "int f() { return 1; return 2; }"
	var buf bytes.Buffer
	Warnf(&buf, "f.c", source, "unreachable-code",
		token.Token{Line: 1, Column: 21, Len: 6}, "statement is unreachable")

	got := buf.String()
	if !strings.HasPrefix(got, "f.c:1:21: warning: statement is unreachable [-Wunreachable-code]\n") {
		t.Errorf("unexpected warning header:\n%s", got)
	}
	if !strings.Contains(got, "  int f() { return 1; return 2; }\n") {
		t.Errorf("warning is missing the source line:\n%s", got)
	}
}

func TestRenderOutOfRangePosition(t *testing.T) {
	// A position past the end of the source prints the header only.
	var buf bytes.Buffer
	Render(&buf, "f.c", "int", Errorf(Lex, token.Token{Line: 9, Column: 1, Len: 1}, "bad"))
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("expected only the header line:\n%q", buf.String())
	}
}
