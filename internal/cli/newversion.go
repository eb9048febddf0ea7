package cli

import (
	"errors"
	"fmt"

	"github.com/pablasso/plankit/internal/prompt"
	"github.com/pablasso/plankit/internal/tui/styles"
	"github.com/pablasso/plankit/internal/versioning"
	"github.com/spf13/cobra"
)

type newVersionFlags struct {
	changes  string
	strategy string
	target   string
	yes      bool
}

func newNewVersionCmd(a *app) *cobra.Command {
	var f newVersionFlags
	cmd := &cobra.Command{
		Use:   "new-version",
		Short: "Create the next plan version from the current one",
		Long: `Create the next plan file by copying the highest-versioned plan.

The copy gets the new version, today's last_modified date and a changelog
note in its description; completed tasks are reset to pending.

Without flags every answer is asked interactively. With --changes and
--type the command runs without prompting, asking only for confirmation
unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := a.newVersionPrompter(cmd, f)
			if err != nil {
				return err
			}

			repo := a.cfg.Repository()
			if err := requirePlanDir(repo); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, err = versioning.Run(cmd.Context(), versioning.Options{
				Repo:     repo,
				Prompter: provider,
				Out:      out,
				Logger:   a.logger,
				Now:      a.now,
			})
			if errors.Is(err, prompt.ErrAborted) {
				fmt.Fprintln(out, styles.WarningStyle.Render("Aborted, nothing was written."))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&f.changes, "changes", "m", "", "description of the changes in this version")
	cmd.Flags().StringVarP(&f.strategy, "type", "t", "", "version type: major|minor|patch|custom|auto")
	cmd.Flags().StringVar(&f.target, "target", "", "version number for --type=custom")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// newVersionPrompter picks the prompt provider. Flags become scripted
// answers; anything not scripted is asked on the terminal.
func (a *app) newVersionPrompter(cmd *cobra.Command, f newVersionFlags) (prompt.Provider, error) {
	terminal := prompt.NewTerminal(a.in, cmd.OutOrStdout())

	if f.changes == "" && f.strategy == "" {
		if f.target != "" {
			return nil, fmt.Errorf("--target requires --type=custom")
		}
		if f.yes {
			return prompt.Yes{Provider: terminal}, nil
		}
		return terminal, nil
	}
	if f.changes == "" || f.strategy == "" {
		return nil, fmt.Errorf("--changes and --type must be given together")
	}

	strategy, err := versioning.ParseStrategy(f.strategy)
	if err != nil {
		return nil, err
	}
	answers := []string{f.changes, string(strategy)}
	switch {
	case strategy == versioning.StrategyCustom && f.target == "":
		return nil, fmt.Errorf("--type=custom requires --target")
	case strategy == versioning.StrategyCustom:
		answers = append(answers, f.target)
	case f.target != "":
		return nil, fmt.Errorf("--target requires --type=custom")
	}

	scripted := prompt.NewScripted(answers...)
	if f.yes {
		return prompt.Yes{Provider: scripted}, nil
	}
	return prompt.WithConfirm{Provider: scripted, Confirmer: terminal}, nil
}
