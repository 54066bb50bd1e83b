package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/muhammadolammi/resumeascode/internal/presenter"
)

// Set with -ldflags "-X main.version=..." at build time.
var version = "dev"

var cfgFile string

// commands that never call the model skip the API key warning
var noAIKeyCommands = map[string]bool{
	"version":       true,
	"list-profiles": true,
	"add-skill":     true,
	"build":         true,
	"history":       true,
	"status":        true,
	"rollback":      true,
	"publish":       true,
	"submit":        true,
	"help":          true,
}

var rootCmd = &cobra.Command{
	Use:   "resume",
	Short: "AI-powered resume builder",
	Long: `Resume as Code builds ATS-friendly resumes from YAML data and tailors them to
specific job descriptions using an LLM.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd, cfgFile); err != nil {
			return err
		}
		if !noAIKeyCommands[cmd.Name()] {
			cfg, err := llmConfig()
			if err != nil {
				return err
			}
			p := presenter.NewWithOptions(cmd.ErrOrStderr(), cmd.ErrOrStderr(), cmd.InOrStdin())
			p.SetQuiet(viper.GetBool("quiet"))
			warnMissingAPIKey(p, cfg.Provider)
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./resume.yaml or $HOME/.resume/resume.yaml)")
	flags.StringP("data-dir", "d", "", "Resume data directory (defaults to $RESUME_DATA_DIR or ./data)")
	flags.String("output-dir", "", "Output directory for built files (defaults to <data-dir>/../output)")
	flags.String("provider", "", "LLM provider: openai, anthropic or gemini")
	flags.String("model", "", "LLM model (defaults to the provider's default)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: fmt or json")
	flags.BoolP("quiet", "q", false, "Only print errors and prompts")

	rootCmd.AddCommand(
		listProfilesCmd,
		analyzeCmd,
		buildCmd,
		addSkillCmd,
		convertCVCmd,
		generateProfileCmd,
		historyCmd,
		dbCmd,
		publishCmd,
		submitCmd,
		workerCmd,
		versionCmd,
	)
}

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		presenter.New().Error(err, "")
		cancel()
		os.Exit(1)
	}
}
