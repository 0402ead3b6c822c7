package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/internal/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch FILE",
		Short: "Run a YAML file of expressions with expected results",
		Long: `Run every case in a YAML batch file and print a YAML report.

Each case has a name, an expr, and optionally the value it should produce
(want, with an optional tolerance) or the kind of error it should fail with
(error: EmptyExpression, MalformedExpression, InsufficientOperands,
DivisionByZero, or ExcessOperands). The command fails if any case does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := batch.Load(args[0])
			if err != nil {
				return err
			}
			rep, err := batch.Run(cmd.Context(), f, a.logger)
			if err != nil {
				return err
			}
			data, err := rep.Marshal()
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			if !rep.OK() {
				return fmt.Errorf("%d of %d cases failed", rep.Failed, len(rep.Results))
			}
			return nil
		},
	}
}
