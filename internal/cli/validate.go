package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pablasso/plankit/internal/plan"
	"github.com/pablasso/plankit/internal/tui/styles"
	"github.com/pablasso/plankit/internal/validate"
	"github.com/pablasso/plankit/internal/watch"
	"github.com/spf13/cobra"
)

// errValidationFailed makes the command exit non-zero once every file has
// been reported.
var errValidationFailed = errors.New("validation failed")

type validateFlags struct {
	strict bool
	deps   string
	watch  bool
}

func newValidateCmd(a *app) *cobra.Command {
	var f validateFlags
	cmd := &cobra.Command{
		Use:   "validate [file|glob ...]",
		Short: "Validate plan files",
		Long: `Validate plan files against the plan schema and task dependency rules.

Arguments are file names or doublestar globs (e.g. "1.*.yaml"), absolute or
relative to the plan directory. Without arguments every plan file in the
plan directory is validated; template.yaml is skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.ValidateOptions()
			if cmd.Flags().Changed("strict") {
				opts.Strict = f.strict
			}
			if cmd.Flags().Changed("deps") {
				mode, err := validate.ParseDependencyMode(f.deps)
				if err != nil {
					return err
				}
				opts.Dependencies = mode
			}

			out := cmd.OutOrStdout()
			err := a.runValidate(out, args, opts)
			if !f.watch || (err != nil && !errors.Is(err, errValidationFailed)) {
				return err
			}
			return a.watchPlans(cmd.Context(), out, func() {
				if err := a.runValidate(out, args, opts); err != nil && !errors.Is(err, errValidationFailed) {
					fmt.Fprintln(out, styles.ErrorStyle.Render(err.Error()))
				}
			})
		},
	}

	cmd.Flags().BoolVar(&f.strict, "strict", false, "also check the document against the JSON Schema")
	cmd.Flags().StringVar(&f.deps, "deps", "", "dependency mode: ordered|declared (default ordered)")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "re-run when plan files change")
	return cmd
}

// runValidate validates the targeted files and prints a report for each.
func (a *app) runValidate(out io.Writer, args []string, opts validate.Options) error {
	repo := a.cfg.Repository()
	if err := requirePlanDir(repo); err != nil {
		return err
	}

	files, err := resolveTargets(repo, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, styles.WarningStyle.Render("No plan files to validate in "+repo.Dir()))
		return nil
	}

	fmt.Fprintln(out, styles.TitleStyle.Render(fmt.Sprintf("Validating %d file(s)...", len(files))))
	fmt.Fprintln(out, styles.SubtleStyle.Render(strings.Repeat("=", 50)))

	failed := 0
	for _, path := range files {
		if !a.validateOne(out, repo, path, opts) {
			failed++
		}
		fmt.Fprintln(out)
	}

	if failed > 0 {
		fmt.Fprintln(out, styles.ErrorStyle.Render(fmt.Sprintf("%d of %d file(s) failed validation", failed, len(files))))
		return fmt.Errorf("%w: %d of %d file(s)", errValidationFailed, failed, len(files))
	}
	fmt.Fprintln(out, styles.SuccessStyle.Render("All files passed validation"))
	return nil
}

func (a *app) validateOne(out io.Writer, repo *plan.Repository, path string, opts validate.Options) bool {
	fmt.Fprintf(out, "%s %s\n", styles.InfoStyle.Render("Validating"), path)

	f, err := repo.Load(path)
	if err != nil {
		a.logger.Debug("load failed", "path", path, "err", err)
		fmt.Fprintln(out, styles.ErrorStyle.Render("✗ "+err.Error()))
		return false
	}

	violations := validate.File(f, opts)
	a.logger.Debug("validated", "path", path, "violations", len(violations), "strict", opts.Strict, "deps", opts.Dependencies)
	if len(violations) == 0 {
		fmt.Fprintln(out, styles.SuccessStyle.Render("✓ valid"))
		return true
	}

	fmt.Fprintln(out, styles.ErrorStyle.Render(fmt.Sprintf("✗ %d problem(s):", len(violations))))
	for _, v := range violations {
		fmt.Fprintln(out, styles.ErrorStyle.Render("  - "+v.String()))
	}
	return false
}

// resolveTargets expands the arguments into plan file paths. Without
// arguments every plan file is returned. Any argument that matches nothing
// is an error, reported before anything is validated.
func resolveTargets(repo *plan.Repository, args []string) ([]string, error) {
	if len(args) == 0 {
		return repo.Files()
	}

	var files, missing []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		path := repo.Resolve(arg)
		if isGlob(arg) {
			matches, err := doublestar.FilepathGlob(path)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
			n := 0
			for _, m := range matches {
				if repo.IsPlanFile(m) {
					add(m)
					n++
				}
			}
			if n == 0 {
				missing = append(missing, arg)
			}
			continue
		}
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, arg)
			continue
		}
		add(path)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("file not found: %s", strings.Join(missing, ", "))
	}
	return files, nil
}

func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// watchPlans calls run whenever plan files change, until ctx is done.
func (a *app) watchPlans(ctx context.Context, out io.Writer, run func()) error {
	repo := a.cfg.Repository()
	w, err := watch.New(watch.Config{
		Dir:    repo.Dir(),
		Match:  repo.IsPlanFile,
		Logger: a.logger,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintln(out, styles.SubtleStyle.Render("Watching "+repo.Dir()+" for changes (Ctrl+C to stop)"))
	return w.Run(ctx, func(ctx context.Context, paths []string) error {
		a.logger.Info("plan files changed", "paths", paths)
		fmt.Fprintln(out)
		run()
		return nil
	})
}
