package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new [project-name]",
		Short: "Scaffold a new Kieli project",
		Long:  "Create a new Kieli project directory with a starter source file and project manifest.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNew,
	}
}

func runNew(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		prompt := &survey.Input{Message: "Project name:"}
		if err := survey.AskOne(prompt, &name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if err := validateProjectName(name); err != nil {
		return err
	}

	projectPath := filepath.Join(".", name)
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("directory %s already exists", name)
	}

	srcDir := filepath.Join(projectPath, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", srcDir, err)
	}

	mainSrc := "fn main() : I32 {\n    0\n}\n"
	if err := os.WriteFile(filepath.Join(srcDir, "main.kieli"), []byte(mainSrc), 0o644); err != nil {
		return fmt.Errorf("writing main.kieli: %w", err)
	}

	manifest := fmt.Sprintf("name = %q\nentry = \"src/main.kieli\"\n", name)
	if err := os.WriteFile(filepath.Join(projectPath, "kieli.toml"), []byte(manifest), 0o644); err != nil {
		return fmt.Errorf("writing kieli.toml: %w", err)
	}

	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Printf("Created project %s\n", name)
	fmt.Printf("  cd %s\n  kieli src/main.kieli\n", name)
	return nil
}

// validateProjectName rejects path traversal and separators.
func validateProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("project name cannot contain '..'")
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("project name cannot contain path separators")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("project name cannot start with '.'")
	}
	return nil
}
