package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Simi-mac/educafin/internal/diary"
)

var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Manage the expense diary",
}

var diaryAddCmd = &cobra.Command{
	Use:   "add <descrição> <valor>",
	Short: "Log an expense",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		category, _ := flags.GetString("category")
		feeling, _ := flags.GetString("feeling")
		dateStr, _ := flags.GetString("date")

		amount, err := diary.ParseAmount(args[1])
		if err != nil {
			return fmt.Errorf("valor inválido %q: use o formato 25,50", args[1])
		}
		at := time.Now()
		if dateStr != "" {
			at, err = time.ParseInLocation("2006-01-02", dateStr, time.Local)
			if err != nil {
				return fmt.Errorf("data inválida %q: use AAAA-MM-DD", dateStr)
			}
		}
		e, err := diary.NewExpense(args[0], amount, diary.Category(category), diary.Feeling(feeling), at)
		if err != nil {
			return err
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := diary.New(d.store.ExpenseRepo()).Add(cmd.Context(), e); err != nil {
			return fmt.Errorf("add expense: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Gasto registrado: %s, %s (%s, %s %s)\n",
			e.Description, diary.FormatBRL(e.Amount), e.Category, e.Feeling.Icon(), e.Feeling)
		return nil
	},
}

var diaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		list, err := diary.New(d.store.ExpenseRepo()).List(cmd.Context())
		if err != nil {
			return err
		}
		if limit > 0 && len(list) > limit {
			list = list[:limit]
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, list)
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "Nenhuma despesa registrada ainda.")
			return nil
		}

		fmt.Fprintf(out, "%-10s  %-30s  %14s  %-12s  %s\n", "Data", "Descrição", "Valor", "Categoria", "Sentimento")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, e := range list {
			fmt.Fprintf(out, "%-10s  %-30s  %14s  %-12s  %s %s\n",
				e.Date.Local().Format("02/01/2006"),
				truncate(e.Description, 30),
				diary.FormatBRL(e.Amount),
				e.Category,
				e.Feeling.Icon(), e.Feeling)
		}
		return nil
	},
}

var diarySummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals by category and by feeling",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		sum, err := diary.New(d.store.ExpenseRepo()).Summary(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, sum)
		}
		if sum.Count == 0 {
			fmt.Fprintln(out, "Nenhuma despesa registrada ainda.")
			return nil
		}

		fmt.Fprintf(out, "Total: %s em %d gastos\n\n", diary.FormatBRL(sum.Total), sum.Count)
		printBreakdown(out, "Resumo por Categoria", sum.ByCategory)
		fmt.Fprintln(out)
		printBreakdown(out, "Resumo por Sentimento", sum.ByFeeling)
		return nil
	},
}

var diaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := diary.New(d.store.ExpenseRepo()).Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Gasto removido.")
		return nil
	},
}

var diaryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every expense",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("isso apaga todo o diário; confirme com --yes")
		}

		d, err := setup(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := diary.New(d.store.ExpenseRepo()).Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear diary: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Diário de gastos apagado.")
		return nil
	},
}

func printBreakdown(w io.Writer, title string, parts []diary.Slice) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", 52))
	for _, p := range parts {
		fmt.Fprintf(w, "%-18s  %14s  %8s\n", p.Label, diary.FormatBRL(p.Amount), diary.FormatPercent(p.Percent))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func init() {
	addFlags := diaryAddCmd.Flags()
	addFlags.StringP("category", "c", string(diary.DefaultCategory), "Category: "+joinLabels(diary.Categories()))
	addFlags.StringP("feeling", "f", string(diary.DefaultFeeling), "Feeling: "+joinLabels(diary.Feelings()))
	addFlags.String("date", "", "Date of the expense (YYYY-MM-DD, default today)")

	diaryListCmd.Flags().IntP("limit", "n", 0, "Number of expenses to show (0 = all)")
	diaryListCmd.Flags().Bool("json", false, "Print as JSON")
	diarySummaryCmd.Flags().Bool("json", false, "Print as JSON")
	diaryClearCmd.Flags().Bool("yes", false, "Confirm deleting every expense")

	diaryCmd.AddCommand(diaryAddCmd)
	diaryCmd.AddCommand(diaryListCmd)
	diaryCmd.AddCommand(diarySummaryCmd)
	diaryCmd.AddCommand(diaryDeleteCmd)
	diaryCmd.AddCommand(diaryClearCmd)
}

func joinLabels[T ~string](labels []T) string {
	s := make([]string, len(labels))
	for i, l := range labels {
		s[i] = string(l)
	}
	return strings.Join(s, ", ")
}
