package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Simi-mac/educafin/internal/coach"
	"github.com/Simi-mac/educafin/internal/ui/components"
)

var askCmd = &cobra.Command{
	Use:   "ask <pergunta>",
	Short: "Ask the financial assistant a single question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		answer, err := d.coach(ctx).RequestAdvice(ctx, strings.Join(args, " "))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), coach.UserMessage(err))
			return err
		}
		if !raw {
			answer = components.PlainMarkdown(answer)
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("raw", false, "Print the answer as markdown")
}
