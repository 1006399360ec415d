package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/crucible-vm/crucible/internal/cli/config"
)

var (
	newInteractive  bool
	newFlavor       string
	newTargetImport string
)

func init() {
	newCmd.Flags().BoolVarP(&newInteractive, "interactive", "i", false, "Interactive project setup with prompts")
	newCmd.Flags().StringVar(&newFlavor, "flavor", "guest", "Generator flavor (guest, native)")
	newCmd.Flags().StringVar(&newTargetImport, "target-import", "", "Import path of the target implementations")
}

// validateProjectName validates project name with security checks
func validateProjectName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) == 0 || len(name) > 100 {
		return fmt.Errorf("project name must be 1-100 characters")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("project name cannot be an absolute path")
	}
	// Only allow alphanumeric, dash, and underscore; this also rules out
	// dots and path separators
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_-]+$`, name)
	if !matched {
		return fmt.Errorf("project name can only contain letters, numbers, dashes, and underscores")
	}
	return nil
}

var newCmd = &cobra.Command{
	Use:   "new [project-name]",
	Short: "Create a new Crucible substitution project",
	Long: `Create a new substitution project: a crucible.yml, a starter manifest, and
the directory layout the generator expects.

Examples:
  crucible new my-runtime --target-import example.com/my-runtime/targets
  crucible new my-runtime --flavor native --target-import example.com/my-runtime/targets
  crucible new --interactive`,
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	var projectName string
	if len(args) > 0 {
		projectName = args[0]
	}

	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)

	if newInteractive {
		if err := promptProjectSetup(&projectName); err != nil {
			return err
		}
	}

	if projectName == "" {
		return fmt.Errorf("project name required (or use --interactive)")
	}
	if err := validateProjectName(projectName); err != nil {
		return err
	}
	if _, err := flavorFor(newFlavor); err != nil {
		return err
	}
	// A project without the targets import path cannot generate compiling
	// artifacts; insist on it up front rather than scaffold a broken config.
	if newTargetImport == "" {
		return fmt.Errorf("target import required (use --target-import or --interactive)")
	}

	projectPath := filepath.Join(".", projectName)
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("directory %s already exists", projectName)
	}

	dirs := []string{
		projectPath,
		filepath.Join(projectPath, "substitutions"),
		filepath.Join(projectPath, "build"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		"crucible.yml":                projectConfig(projectName),
		"substitutions/manifest.json": starterManifest(),
		"README.md":                   projectReadme(projectName),
		".gitignore":                  "build/\n",
	}
	for name, content := range files {
		path := filepath.Join(projectPath, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", name, err)
		}
	}

	successColor.Printf("\n✓ Created project: %s\n\n", projectName)
	infoColor.Println("Get started:")
	fmt.Printf("  cd %s\n", projectName)
	fmt.Println("  crucible generate")
	fmt.Println()
	return nil
}

func promptProjectSetup(projectName *string) error {
	if *projectName == "" {
		prompt := &survey.Input{
			Message: "Project name:",
		}
		if err := survey.AskOne(prompt, projectName, survey.WithValidator(func(ans interface{}) error {
			return validateProjectName(ans.(string))
		})); err != nil {
			return err
		}
	}

	flavorPrompt := &survey.Select{
		Message: "Generator flavor:",
		Options: config.Flavors,
		Default: newFlavor,
	}
	if err := survey.AskOne(flavorPrompt, &newFlavor); err != nil {
		return err
	}

	importPrompt := &survey.Input{
		Message: "Target implementations import path:",
		Default: newTargetImport,
	}
	return survey.AskOne(importPrompt, &newTargetImport, survey.WithValidator(survey.Required))
}

func projectConfig(projectName string) string {
	return fmt.Sprintf(`project_name: %s

generator:
  manifest: substitutions/manifest.json
  output_dir: build/substitutions
  package: substitutions
  flavor: %s
  target_import: %s
  collector: SubstitutorCollector

log:
  level: info
`, projectName, newFlavor, newTargetImport)
}

func starterManifest() string {
	return `{
  "version": 1,
  "targets": [
    {
      "declaring_type": "Example",
      "method": "resolve",
      "return": "*substitution.Ref",
      "params": [
        {"name": "self", "type": "*substitution.Ref"},
        {"name": "ctx", "type": "*substitution.Context", "inject": "context"}
      ]
    }
  ]
}
`
}

func projectReadme(projectName string) string {
	return fmt.Sprintf(`# %s

A Crucible substitution project.

## Getting Started

1. Declare target methods in `+"`substitutions/manifest.json`"+`.

2. Generate the substitutors:
   `+"```bash"+`
   crucible generate
   `+"```"+`

3. Regenerate on every manifest change:
   `+"```bash"+`
   crucible watch
   `+"```"+`

## Project Structure

- `+"`substitutions/`"+` - Substitution manifest
- `+"`build/`"+` - Generated output (auto-generated)
- `+"`crucible.yml`"+` - Project configuration
`, projectName)
}
