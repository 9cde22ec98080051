package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"

	"rcc/pkg/compiler"
	"rcc/pkg/config"
	"rcc/pkg/diag"
)

func main() {
	var (
		outFile    string
		backend    string
		target     string
		dumpTokens bool
		dumpAST    bool
		dumpIR     bool
	)

	app := &cli.App{
		Name:      "rcc",
		Usage:     "A tiny ahead-of-time C compiler.",
		ArgsUsage: "<file.c>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Write the assembly to `FILE` (default: input with a .s extension).",
				Destination: &outFile,
			},
			&cli.StringFlag{
				Name:        "backend",
				Aliases:     []string{"b"},
				Value:       "qbe",
				Usage:       "Code generation backend: qbe, amd64 or arm64.",
				Destination: &backend,
			},
			&cli.StringFlag{
				Name:        "target",
				Aliases:     []string{"t"},
				Usage:       "QBE target `ABI` (default: host).",
				Destination: &target,
			},
			&cli.StringSliceFlag{
				Name:  "W",
				Usage: "Toggle a warning by `NAME`, e.g. -W no-unreachable-code or -W all.",
			},
			&cli.BoolFlag{
				Name:        "dump-tokens",
				Usage:       "Print the token stream.",
				Destination: &dumpTokens,
			},
			&cli.BoolFlag{
				Name:        "dump-ast",
				Usage:       "Print the abstract syntax tree.",
				Destination: &dumpAST,
			},
			&cli.BoolFlag{
				Name:        "dump-ir",
				Usage:       "Print the backend intermediate representation.",
				Destination: &dumpIR,
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one source file, got %d", c.Args().Len())
			}
			inputPath := c.Args().First()
			if !strings.HasSuffix(inputPath, ".c") {
				return fmt.Errorf("input file must have a .c extension")
			}

			source, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("could not read '%s': %w", inputPath, err)
			}

			cfg := config.NewConfig()
			cfg.BackendName = backend
			cfg.SetTarget(runtime.GOOS, runtime.GOARCH, target)
			for _, flag := range c.StringSlice("W") {
				if err := cfg.ApplyFlag(flag); err != nil {
					return err
				}
			}

			art, err := compiler.Compile(inputPath, string(source), cfg, os.Stderr)
			if err != nil {
				diag.Render(os.Stderr, inputPath, string(source), err)
				return cli.Exit("", 1)
			}

			if dumpTokens {
				for _, tok := range art.Tokens {
					fmt.Printf("%d:%d\t%s\n", tok.Line, tok.Column, tok.Describe())
				}
			}
			if dumpAST {
				repr.Println(art.Program)
			}
			if dumpIR {
				fmt.Print(art.IR)
			}

			if outFile == "" {
				outFile = strings.TrimSuffix(inputPath, ".c") + ".s"
			}
			if err := os.WriteFile(outFile, []byte(art.Assembly), 0644); err != nil {
				return fmt.Errorf("could not write '%s': %w", outFile, err)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
