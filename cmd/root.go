package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "educafin",
	Short: "Educação financeira pessoal no terminal",
	Long: "EducaFin: diagnóstico da sua saúde financeira, trilha de aprendizado " +
		"personalizada, diário de gastos e um assistente para tirar dúvidas.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides EDUCAFIN_DB env var)")
	flags.String("config", "", "Path to config file (default: educafin.yaml in the config dir or working directory)")
	flags.String("env-file", "", "Path to a .env file (default: .env in the working directory)")
	flags.String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.Flags().Bool("skip-welcome", false, "Start directly where the journey left off")

	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(diaryCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
