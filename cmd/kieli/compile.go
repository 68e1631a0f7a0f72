package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kieli-lang/kieli/internal/compiler/database"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
)

// runCompile is the root command's default action: compile every file
// argument through the full pipeline (§6.1's compile(db, doc_id, sink))
// and print its diagnostics. With no arguments it prints help instead of
// reading stdin, since a bare `kieli` invocation most likely means the
// user wants usage, not a hanging read.
func runCompile(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	db := database.New()
	exitCode := 0
	for _, path := range args {
		start := time.Now()
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		id := db.OpenDocument(path, string(text), "kieli", 1)
		var collector diag.Collector
		db.Compile(id, &collector)

		for _, d := range collector.Diagnostics {
			printDiagnostic(path, d)
		}
		if collector.HasErrors() {
			exitCode = 1
		}
		if flagDebugPhase != "" {
			doc, _ := db.Document(id)
			printDebugPhase(flagDebugPhase, doc)
		}
		if flagTime {
			fmt.Fprintf(os.Stderr, "%s: compiled in %s\n", path, time.Since(start))
		}
	}

	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

func printDiagnostic(path string, d diag.Diagnostic) {
	sev := severityColor(d.Severity)
	fmt.Fprintf(os.Stderr, "%s:%s: %s: %s\n", path, d.Range.Start, sev.Sprint(d.Severity.String()), d.Message)
	for _, r := range d.Related {
		fmt.Fprintf(os.Stderr, "  %s: note: %s\n", r.Location.Start, r.Message)
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SeverityError:
		return color.New(color.FgRed, color.Bold)
	case diag.SeverityWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

// printDebugPhase dumps a pipeline stage's in-memory state for phase,
// matching spec §6.4's `--debug <phase>` flag. Only the phases the
// pipeline actually names are recognized (§2's component table); anything
// else is reported and ignored rather than silently accepted.
func printDebugPhase(phase string, doc *database.Document) {
	if doc == nil {
		return
	}
	switch phase {
	case "lex":
		for _, t := range doc.Tokens {
			fmt.Printf("%s\n", t)
		}
	case "cst":
		fmt.Printf("%+v\n", doc.CST)
	case "ast":
		fmt.Printf("%+v\n", doc.AST)
	case "hir":
		fmt.Printf("%+v\n", doc.Info)
	default:
		fmt.Fprintf(os.Stderr, "kieli: unknown --debug phase %q (want lex|cst|ast|hir)\n", phase)
	}
}
