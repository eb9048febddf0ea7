package cli

import (
	"github.com/pablasso/plankit/internal/validate"
	"github.com/spf13/cobra"
)

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for plan files",
		Long:  "Print the JSON Schema used by validate --strict, for editors and other tools.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(validate.Schema())
			return err
		},
	}
}
