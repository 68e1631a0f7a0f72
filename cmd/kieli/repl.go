package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kieli-lang/kieli/internal/compiler/database"
	"github.com/kieli-lang/kieli/internal/compiler/desugar"
	"github.com/kieli-lang/kieli/internal/compiler/diag"
	"github.com/kieli-lang/kieli/internal/compiler/lexer"
	"github.com/kieli-lang/kieli/internal/compiler/parser"
)

// replStages are the only values --stage accepts (§6.4). Non-goals (§1)
// exclude an actual REPL evaluator: every stage here prints the pipeline's
// own intermediate representation, it never executes the program.
var replStages = map[string]bool{"lex": true, "expr": true, "prog": true, "des": true, "res": true}

func newReplCommand() *cobra.Command {
	var stage string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Read Kieli source from stdin one entry at a time and print a pipeline stage's output",
		Long: "Each line read from stdin is run through the compiler pipeline up to --stage and the\n" +
			"resulting representation is printed. This is a debugging aid, not a program evaluator:\n" +
			"no stage here runs the compiled program (§1's Non-goals exclude a REPL evaluator).",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !replStages[stage] {
				return fmt.Errorf("unknown --stage %q (want one of lex, expr, prog, des, res)", stage)
			}
			return runRepl(stage)
		},
	}
	cmd.Flags().StringVar(&stage, "stage", "prog", "pipeline stage to print: lex|expr|prog|des|res")
	return cmd
}

func runRepl(stage string) error {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Printf("kieli repl [%s]> ", stage)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			fmt.Printf("kieli repl [%s]> ", stage)
			continue
		}
		replEval(stage, line)
		fmt.Printf("kieli repl [%s]> ", stage)
	}
	fmt.Println()
	return scanner.Err()
}

func replEval(stage, line string) {
	switch stage {
	case "lex":
		tokens, errs := lexer.ScanTokens(line)
		for _, t := range tokens {
			fmt.Println(t)
		}
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Message)
		}
	case "expr":
		// Wrap the bare expression in a synthetic function so the
		// parser, which only knows how to parse whole modules, has a
		// definition to hang it from.
		wrapped := "fn __repl__() = (" + line + ")"
		replPrintModule(wrapped, "des")
	case "prog":
		replPrintModule(line, "cst")
	case "des":
		replPrintModule(line, "des")
	case "res":
		db := database.New()
		id := db.OpenDocument("repl://input", line, "kieli", 1)
		var collector diag.Collector
		db.Compile(id, &collector)
		for _, d := range collector.Diagnostics {
			fmt.Fprintf(os.Stderr, "%s: %s\n", d.Severity, d.Message)
		}
		if doc, ok := db.Document(id); ok && doc.AST != nil {
			fmt.Printf("%+v\n", doc.AST)
		}
	}
}

// replPrintModule lexes and parses line as a whole module, optionally
// desugaring it, and prints the resulting CST or AST.
func replPrintModule(line, upTo string) {
	tokens, lexErrs := lexer.ScanTokens(line)
	for _, e := range lexErrs {
		fmt.Fprintln(os.Stderr, e.Message)
	}
	var collector diag.Collector
	mod := parser.New(tokens, &collector).Parse()
	for _, d := range collector.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Severity, d.Message)
	}
	if upTo == "cst" {
		fmt.Printf("%+v\n", mod)
		return
	}
	astMod := desugar.New(&collector).Desugar(mod)
	fmt.Printf("%+v\n", astMod)
}
