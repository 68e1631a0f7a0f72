// Command kieli is the source-language CLI driver (§6.4): it parses
// flags and delegates to the compiler API in internal/compiler/database
// and internal/compiler/tooling. Per §1 it is an external collaborator —
// it does not itself implement a REPL evaluator, formatter, or codegen;
// the repl subcommand runs the compiler pipeline up to the stage named by
// its --stage flag and prints the resulting representation, it does not
// evaluate the program.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build-time version information, set via -ldflags at link time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	flagDebugPhase string
	flagNoColor    bool
	flagTime       bool
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "kieli [file]",
		Short:        "Kieli compiler front end and tooling",
		Long:         "kieli lexes, parses, desugars, and resolves Kieli source files, reporting diagnostics.",
		SilenceUsage: true,
		RunE:         runCompile,
	}

	root.PersistentFlags().StringVar(&flagDebugPhase, "debug", "", "print internal state for a pipeline phase (lex|cst|ast|hir)")
	root.PersistentFlags().BoolVar(&flagNoColor, "nocolor", false, "disable colored diagnostic output")
	root.PersistentFlags().BoolVar(&flagTime, "time", false, "print elapsed wall-clock time for the compilation")

	viper.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("nocolor", root.PersistentFlags().Lookup("nocolor"))
	viper.BindPFlag("time", root.PersistentFlags().Lookup("time"))

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flagNoColor {
			color.NoColor = true
		}
	}

	root.AddCommand(newVersionCommand())
	root.AddCommand(newNewCommand())
	root.AddCommand(newReplCommand())

	return root
}
