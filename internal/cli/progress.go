package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pablasso/plankit/internal/progress"
	"github.com/pablasso/plankit/internal/report"
	"github.com/pablasso/plankit/internal/tui/styles"
	"github.com/spf13/cobra"
)

var errNoValidPlans = errors.New("no valid plan files found")

type progressFlags struct {
	markdown bool
	output   string
	horizon  int
	watch    bool
}

func newProgressCmd(a *app) *cobra.Command {
	var f progressFlags
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Report progress across plan files",
		Long: `Report goal, task and milestone completion for every plan file, with
status and priority breakdowns, tasks due soon and blocked tasks, followed
by totals across all files.

Files that cannot be parsed are skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("horizon") {
				if f.horizon < 0 {
					return fmt.Errorf("--horizon must not be negative")
				}
				a.cfg.HorizonDays = f.horizon
			}
			if f.output != "" {
				f.markdown = true
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			err := a.runProgress(out, errOut, f)
			if !f.watch || err != nil {
				return err
			}
			return a.watchPlans(cmd.Context(), out, func() {
				if err := a.runProgress(out, errOut, f); err != nil {
					fmt.Fprintln(out, styles.ErrorStyle.Render(err.Error()))
				}
			})
		},
	}

	cmd.Flags().BoolVar(&f.markdown, "markdown", false, "print a Markdown report instead of console output")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the Markdown report to this file (implies --markdown)")
	cmd.Flags().IntVar(&f.horizon, "horizon", progress.DefaultHorizonDays, "days ahead to look for due tasks")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "re-run when plan files change")
	return cmd
}

// loadReports summarizes every parseable plan file in the plan directory.
func (a *app) loadReports(warn io.Writer) ([]progress.Report, error) {
	repo := a.cfg.Repository()
	if err := requirePlanDir(repo); err != nil {
		return nil, err
	}
	files, err := repo.Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", errNoValidPlans, repo.Dir())
	}

	now := a.now()
	var reports []progress.Report
	for _, path := range files {
		f, err := repo.Load(path)
		if err != nil {
			a.logger.Warn("skipping unparseable plan", "path", path, "err", err)
			fmt.Fprintln(warn, styles.WarningStyle.Render(fmt.Sprintf("Skipping %s: %v", path, err)))
			continue
		}
		reports = append(reports, progress.Summarize(filepath.Base(path), f.Doc, now, a.cfg.HorizonDays))
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("%w in %s", errNoValidPlans, repo.Dir())
	}
	a.logger.Debug("summarized plans", "files", len(files), "reports", len(reports))
	return reports, nil
}

func (a *app) runProgress(out, errOut io.Writer, f progressFlags) error {
	reports, err := a.loadReports(errOut)
	if err != nil {
		return err
	}
	totals := progress.Rollup(reports)

	if !f.markdown {
		console := report.Console{HorizonDays: a.cfg.HorizonDays}
		fmt.Fprintln(out, styles.TitleStyle.Render("Plan progress"))
		for _, r := range reports {
			console.Document(out, r)
		}
		console.Overall(out, reports, totals)
		console.Footer(out)
		return nil
	}

	md := report.Markdown(reports, totals, a.now())
	if f.output == "" {
		_, err := io.WriteString(out, md)
		return err
	}
	if err := os.WriteFile(f.output, []byte(md), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.logger.Info("wrote report", "path", f.output, "bytes", len(md))
	fmt.Fprintln(out, styles.SuccessStyle.Render("Report saved to "+f.output))
	return nil
}
