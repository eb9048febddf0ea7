package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pablasso/plankit/internal/config"
	"github.com/pablasso/plankit/internal/logging"
	"github.com/pablasso/plankit/internal/version"
	"github.com/spf13/cobra"
)

// app holds the state shared by every command of one invocation.
type app struct {
	configPath string
	dir        string
	verbose    bool

	cfg    *config.Config
	logger *log.Logger

	// Overridable in tests.
	now func() time.Time
	in  io.Reader
}

func newApp() *app {
	return &app{now: time.Now, in: os.Stdin}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plankit",
		Short: "Manage versioned plan files",
		Long: `Plankit validates versioned plan files (plan/<major>.<minor>.<patch>.yaml),
reports progress across them and derives the next version of a plan.`,
		Version:           version.String(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.dir, "dir", "", "plan directory (default \"plan\")")
	flags.StringVar(&a.configPath, "config", "", "config file (default plankit.toml or .plankit.toml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newValidateCmd(a),
		newNewVersionCmd(a),
		newProgressCmd(a),
		newInitCmd(a),
		newSchemaCmd(a),
	)
	return cmd
}

// setup loads the configuration and builds the logger. Flags override the
// config file and environment.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dir") {
		cfg.PlanDir = a.dir
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	opts := logging.DefaultOptions()
	opts.Level = level
	opts.Output = cmd.ErrOrStderr()

	a.cfg = cfg
	a.logger = logging.New(opts)
	if cfg.File != "" {
		a.logger.Debug("loaded config", "file", cfg.File)
	}
	return nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return newRootCmd(newApp()).ExecuteContext(ctx)
}
