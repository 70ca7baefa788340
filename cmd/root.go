package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/fridayfun/internal/app"
	"github.com/abhisek/fridayfun/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "fridayfun",
	Short: `"Would You Rather" questions for middle schoolers`,
	Long: "Friday Fun - AI-generated \"Would You Rather\" dilemmas for 6th to 8th graders.\n\n" +
		"Pick a category, get two options, argue about it. Runs as a terminal app\n" +
		"or, with `fridayfun serve`, as a small JSON API for a browser widget.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default ./fridayfun.yaml or $XDG_CONFIG_HOME/fridayfun/fridayfun.yaml)")
	pf.String("db", "", "Path to SQLite diagnostics database (overrides FRIDAYFUN_DB env var)")
	pf.String("provider", "", "LLM provider: gemini, openai, openrouter, anthropic, mock")
	pf.String("model", "", "Model override for the selected provider")
	pf.String("category", "", "Category loaded on startup: funny, thoughtful, animal, gross")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func runTUI(cmd *cobra.Command) error {
	rt, err := bootstrap(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	cat, err := rt.cfg.StartCategory()
	if err != nil {
		return err
	}

	return app.Run(cmd.Context(), app.Options{
		Store:    session.NewStore(rt.gen, rt.logger),
		Category: cat,
		Logger:   rt.logger,
	})
}
