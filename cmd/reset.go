package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved journey so the next run starts at the questionnaire",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		if err := d.store.SnapshotRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear journey: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Jornada apagada.")

		if all {
			if err := d.store.ExpenseRepo().Clear(ctx); err != nil {
				return fmt.Errorf("clear diary: %w", err)
			}
			fmt.Fprintln(out, "Diário de gastos apagado.")
		}
		d.logger.Info("reset", zap.Bool("all", all))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also delete every diary expense")
}
