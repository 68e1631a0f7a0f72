package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kieli version: %s\n", Version)
			fmt.Printf("git commit: %s\n", GitCommit)
			fmt.Printf("build date: %s\n", BuildDate)
			fmt.Printf("go version: %s\n", runtime.Version())
		},
	}
}
