// Package cmd implements the calc command line.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/logging"
)

// app holds state shared by all subcommands. It is filled in before any
// subcommand runs.
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd creates the calc command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate arithmetic expressions",
		Long: `calc evaluates arithmetic expressions with +, -, *, and / over
decimal numbers. Multiplication and division bind tighter than addition and
subtraction; operators of equal precedence group left to right.

Configuration is read from --config, $CALC_CONFIG, ./calc.toml, or
~/.config/calc/config.toml, in that order.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (TOML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "do not style output")

	root.AddCommand(newEvalCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command line. An interrupt cancels the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if a.noColor {
		f := false
		a.cfg.Output.Color = &f
	}

	lc := logging.Config{
		Service: "calc",
		Level:   a.cfg.Log.Level,
		Format:  a.cfg.Log.Format,
		Output:  cmd.ErrOrStderr(),
	}
	if a.verbose {
		lc.Level = "debug"
	}
	a.logger, err = logging.New(lc)
	if err != nil {
		return err
	}
	a.logger.Debug("configured", "config", a.cfgFile, "format", a.cfg.Output.Format)
	return nil
}
