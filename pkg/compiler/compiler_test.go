package compiler

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rcc/pkg/config"
	"rcc/pkg/diag"
)

func amd64Config(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.BackendName = "amd64"
	cfg.SetTarget("linux", "amd64", "")
	return cfg
}

func TestCompileReturn42(t *testing.T) {
	art, err := Compile("main.c", "int main() { return 42; }", amd64Config(t), nil)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	want := "\t.text\n\t.globl main\nmain:\n\tmovl $42, %eax\n\tret\n"
	if diff := cmp.Diff(want, art.Assembly); diff != "" {
		t.Errorf("assembly mismatch (-want +got):\n%s", diff)
	}

	if len(art.Tokens) == 0 {
		t.Error("artifacts carry no tokens")
	}
	if art.Program == nil || len(art.Program.Funcs) != 1 {
		t.Error("artifacts carry no parsed program")
	}
	if art.IR == "" {
		t.Error("artifacts carry no IR listing")
	}
}

func TestCompileIsPure(t *testing.T) {
	src := "int compute() { return 7; }"
	first, err := Compile("a.c", src, amd64Config(t), nil)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	second, err := Compile("a.c", src, amd64Config(t), nil)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if first.Assembly != second.Assembly {
		t.Error("two runs over the same input produced different assembly")
	}
}

func TestCompileDegenerateBodies(t *testing.T) {
	for _, src := range []string{
		"int f() { return; }",
		"int f() {}",
	} {
		art, err := Compile("f.c", src, amd64Config(t), nil)
		if err != nil {
			t.Errorf("%q: Compile returned error: %v", src, err)
			continue
		}
		if !strings.HasSuffix(art.Assembly, "\tret\n") {
			t.Errorf("%q: assembly does not end in ret:\n%s", src, art.Assembly)
		}
	}
}

func TestCompileWarningOutput(t *testing.T) {
	var warnings bytes.Buffer
	src := "int f() { return 1; return 2; }"
	if _, err := Compile("f.c", src, amd64Config(t), &warnings); err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if !strings.Contains(warnings.String(), "[-Wunreachable-code]") {
		t.Errorf("expected an unreachable-code warning, got:\n%s", warnings.String())
	}

	// A nil warning writer suppresses warnings entirely.
	if _, err := Compile("f.c", src, amd64Config(t), nil); err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
}

func TestCompileErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  diag.Kind
	}{
		{"lex", "int f() { @ }", diag.Lex},
		{"parse", "int f() { return }", diag.Parse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile("f.c", tt.input, amd64Config(t), nil)
			if err == nil {
				t.Fatal("expected an error, got none")
			}
			de, ok := err.(*diag.Error)
			if !ok {
				t.Fatalf("expected *diag.Error, got %T", err)
			}
			if de.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", de.Kind, tt.kind)
			}
		})
	}
}

func TestCompileUnknownBackend(t *testing.T) {
	cfg := config.NewConfig()
	cfg.BackendName = "z80"
	cfg.SetTarget("linux", "amd64", "")
	if _, err := Compile("f.c", "int f() {}", cfg, nil); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}
