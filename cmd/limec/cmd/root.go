// Package cmd implements the limec command-line driver: read a source
// file, run it through the lexer, parser and code generator, and either
// report errors or (with --debug) dump the intermediate artifacts.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/noahgarrett/limec/internal/codegen"
	"github.com/noahgarrett/limec/internal/diag"
	"github.com/noahgarrett/limec/internal/lexer"
	"github.com/noahgarrett/limec/internal/parser"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	debugDump bool
)

var rootCmd = &cobra.Command{
	Use:   "limec <file_path>",
	Short: "Compile a Lime source file",
	Long: `limec is the ahead-of-time compiler for Lime, a small statically-typed
imperative language.

It lexes and parses the given file, lowers it to a small SSA-style
intermediate representation, and reports any parse or codegen errors,
one message per error, prefixed with the file name.

Examples:
  # Compile a program
  limec program.lime

  # Compile and dump debug/ast.json and debug/ir.ll under the current directory
  limec program.lime --debug`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          compileFile,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
	rootCmd.Version = Version

	rootCmd.Flags().BoolVar(&debugDump, "debug", false, "write debug/ast.json and debug/ir.ll under the current directory")
}

// Execute runs the root command. main calls this and maps a non-nil
// error to exit code 1.
func Execute() error {
	return rootCmd.Execute()
}

func compileFile(_ *cobra.Command, args []string) error {
	sourcePath := args[0]

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", sourcePath, err)
	}
	source := string(src)

	p := parser.New(lexer.New(source))
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		diags := diag.FromStrings(p.Errors(), sourcePath)
		fmt.Fprint(os.Stderr, diag.FormatAll(diags, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	if debugDump {
		if err := writeDebugAST(sourcePath, program); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write debug/ast.json: %s\n", err)
		}
	}

	compiler := codegen.New(moduleNameFor(sourcePath))
	compiler.CompileFile(sourcePath, program)

	if len(compiler.Errors()) > 0 {
		diags := diag.FromStrings(compiler.Errors(), sourcePath)
		fmt.Fprint(os.Stderr, diag.FormatAll(diags, true))
		return fmt.Errorf("codegen failed with %d error(s)", len(compiler.Errors()))
	}

	if debugDump {
		if err := writeDebugIR(compiler.Module); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write debug/ir.ll: %s\n", err)
		}
	}

	return nil
}

func moduleNameFor(sourcePath string) string {
	base := filepath.Base(sourcePath)
	ext := filepath.Ext(base)
	return base[:len(base)-len(ext)]
}

func writeDebugAST(sourcePath string, program interface{ JSON() map[string]any }) error {
	if err := os.MkdirAll("debug", 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(program.JSON(), "", "  ")
	if err != nil {
		return err
	}
	_ = sourcePath
	return os.WriteFile(filepath.Join("debug", "ast.json"), data, 0o644)
}

func writeDebugIR(module fmt.Stringer) error {
	if err := os.MkdirAll("debug", 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join("debug", "ir.ll"), []byte(module.String()), 0o644)
}
