package cli

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pablasso/plankit/internal/plan"
	"github.com/pablasso/plankit/internal/tui/styles"
	"github.com/pablasso/plankit/internal/validate"
	"github.com/spf13/cobra"
)

// SchemaFile is the JSON Schema written next to the plan files.
const SchemaFile = "plan.schema.json"

const initialVersion = "0.1.0"

const scaffold = `# yaml-language-server: $schema=./plan.schema.json
version: %s
name: %s
description: %s
metadata:
  created_by: %s
  created_date: %s
  last_modified: %s
goals:
  primary:
    - title: Define the first goal
      description: Describe what done looks like
      status: pending
      priority: high
  secondary: []
tasks:
  - id: task-1
    title: First task
    description: Describe the work
    status: pending
    priority: medium
    dependencies: []
milestones:
  - title: First milestone
    date: %s
    status: pending
`

type initFlags struct {
	name   string
	author string
}

func newInitCmd(a *app) *cobra.Command {
	var f initFlags
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a plan directory with a template and a first plan",
		Long: `Creates the plan directory with template.yaml, an initial 0.1.0.yaml
and plan.schema.json for editor validation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.name, "name", "", "project name (default: current directory name)")
	cmd.Flags().StringVar(&f.author, "author", "", "plan author (default: current user)")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, f initFlags) error {
	repo := a.cfg.Repository()

	if repo.Exists() {
		files, err := repo.Files()
		if err != nil {
			return err
		}
		if len(files) > 0 {
			return fmt.Errorf("%s already contains plan files", repo.Dir())
		}
	}
	if err := os.MkdirAll(repo.Dir(), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", repo.Dir(), err)
	}
	lock, err := repo.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			a.logger.Warn("failed to release plan directory lock", "path", lock.Path(), "err", err)
		}
	}()

	name := f.name
	if name == "" {
		if wd, err := os.Getwd(); err == nil {
			name = filepath.Base(wd)
		}
	}
	author := f.author
	if author == "" {
		author = currentUser()
	}
	today := plan.FormatDate(a.now())

	files := []struct {
		name    string
		content []byte
	}{
		{repo.Template(), []byte(fmt.Sprintf(scaffold, "0.0.0", quote("Plan name"), quote("What this version delivers"), quote(author), today, today, today))},
		{initialVersion + ".yaml", []byte(fmt.Sprintf(scaffold, initialVersion, quote(name), quote("Initial plan for "+name), quote(author), today, today, today))},
		{SchemaFile, validate.Schema()},
	}

	var existing []string
	for _, file := range files {
		path := filepath.Join(repo.Dir(), file.name)
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w: %s", plan.ErrTargetExists, strings.Join(existing, ", "))
	}

	out := cmd.OutOrStdout()
	var created []string
	for _, file := range files {
		path := filepath.Join(repo.Dir(), file.name)
		if err := repo.Create(path, file.content); err != nil {
			for _, p := range created {
				os.Remove(p)
			}
			return err
		}
		created = append(created, path)
		a.logger.Debug("wrote scaffold file", "path", path)
		fmt.Fprintf(out, "%s %s\n", styles.SuccessStyle.Render("Created"), path)
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. Edit %s with your goals and tasks\n", filepath.Join(repo.Dir(), initialVersion+".yaml"))
	fmt.Fprintln(out, "  2. Run: plankit validate")
	fmt.Fprintln(out, "  3. Run: plankit progress")
	return nil
}

// quote renders s as a double-quoted YAML scalar.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
