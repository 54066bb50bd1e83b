package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/muhammadolammi/resumeascode/internal/builder"
	"github.com/muhammadolammi/resumeascode/internal/database"
	"github.com/muhammadolammi/resumeascode/internal/database/migrations"
	"github.com/muhammadolammi/resumeascode/internal/llm"
	"github.com/muhammadolammi/resumeascode/internal/logger"
	"github.com/muhammadolammi/resumeascode/internal/presenter"
	"github.com/muhammadolammi/resumeascode/internal/storage"
	"github.com/muhammadolammi/resumeascode/internal/style"
)

const (
	envPrefix      = "RESUME"
	configName     = "resume"
	defaultDataDir = "./data"
)

// globalFlags maps persistent flags to their viper keys.
var globalFlags = map[string]string{
	"data-dir":   "data_dir",
	"output-dir": "output_dir",
	"provider":   "provider",
	"model":      "model",
	"log-level":  "log_level",
	"log-format": "log_format",
	"quiet":      "quiet",
}

// envAliases lets the worker keep reading the variables its deployments
// already set.
var envAliases = map[string][]string{
	"database_url":       {"RESUME_DATABASE_URL", "DB_URL"},
	"rabbitmq_url":       {"RESUME_RABBITMQ_URL", "RABBITMQ_URL"},
	"storage.bucket":     {"RESUME_STORAGE_BUCKET", "R2_BUCKET"},
	"storage.account_id": {"RESUME_STORAGE_ACCOUNT_ID", "R2_ACCOUNT_ID"},
	"storage.access_key": {"RESUME_STORAGE_ACCESS_KEY", "R2_ACCESS_KEY"},
	"storage.secret_key": {"RESUME_STORAGE_SECRET_KEY", "R2_SECRET_KEY"},
	"storage.region":     {"RESUME_STORAGE_REGION", "AWS_REGION"},
	"storage.endpoint":   {"RESUME_STORAGE_ENDPOINT"},
}

func setDefaults() {
	rules := style.DefaultRules()
	viper.SetDefault("data_dir", defaultDataDir)
	viper.SetDefault("provider", llm.ProviderOpenAI)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "fmt")
	viper.SetDefault("style.no_em_dashes", rules.NoEmDashes)
	viper.SetDefault("style.no_en_dashes", rules.NoEnDashes)
	viper.SetDefault("style.bullet_end_punctuation", rules.BulletEndPunctuation)
	viper.SetDefault("style.max_bullet_length", rules.MaxBulletLength)
	viper.SetDefault("style.action_verb_start", rules.ActionVerbStart)
	viper.SetDefault("style.no_first_person", rules.NoFirstPerson)
	viper.SetDefault("style.quantify_achievements", rules.QuantifyAchievements)
	viper.SetDefault("style.no_buzzwords", rules.NoBuzzwords)
	viper.SetDefault("worker.workers", 3)
	viper.SetDefault("worker.queue", defaultQueue)
	viper.SetDefault("worker.exchange", defaultExchange)
}

// initConfig wires environment variables, the optional config file and the
// root flags into viper. Precedence is flag, environment, config file,
// default.
func initConfig(cmd *cobra.Command, cfgFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setDefaults()

	for key, envs := range envAliases {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			return errors.Wrapf(err, "failed to bind env for %s", key)
		}
	}
	for flag, key := range globalFlags {
		if f := cmd.Root().PersistentFlags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "failed to bind flag %s", flag)
			}
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.resume")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config file")
		}
	}

	if err := logger.SetLogLevel(viper.GetString("log_level")); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logger.SetLogFormat(viper.GetString("log_format"))

	_, err := llmConfig()
	return err
}

func dataDir() string {
	if dir := viper.GetString("data_dir"); dir != "" {
		return dir
	}
	return defaultDataDir
}

// outputDir defaults to an output directory next to the data directory.
func outputDir() string {
	if dir := viper.GetString("output_dir"); dir != "" {
		return dir
	}
	return filepath.Join(filepath.Dir(filepath.Clean(dataDir())), "output")
}

func llmConfig() (llm.Config, error) {
	cfg := llm.Config{
		Provider:  viper.GetString("provider"),
		Model:     viper.GetString("model"),
		MaxTokens: viper.GetInt("max_tokens"),
		BaseURL:   viper.GetString("base_url"),
	}
	if viper.IsSet("retry") {
		if err := viper.UnmarshalKey("retry", &cfg.Retry); err != nil {
			return llm.Config{}, errors.Wrap(err, "invalid retry config")
		}
	}
	return cfg.Normalize(), nil
}

func styleRules() style.Rules {
	return style.Rules{
		NoEmDashes:           viper.GetBool("style.no_em_dashes"),
		NoEnDashes:           viper.GetBool("style.no_en_dashes"),
		BulletEndPunctuation: viper.GetString("style.bullet_end_punctuation"),
		MaxBulletLength:      viper.GetInt("style.max_bullet_length"),
		ActionVerbStart:      viper.GetBool("style.action_verb_start"),
		NoFirstPerson:        viper.GetBool("style.no_first_person"),
		QuantifyAchievements: viper.GetBool("style.quantify_achievements"),
		NoBuzzwords:          viper.GetStringSlice("style.no_buzzwords"),
	}
}

func storageConfig() storage.Config {
	return storage.Config{
		Bucket:    viper.GetString("storage.bucket"),
		Region:    viper.GetString("storage.region"),
		Endpoint:  viper.GetString("storage.endpoint"),
		AccountID: viper.GetString("storage.account_id"),
		AccessKey: viper.GetString("storage.access_key"),
		SecretKey: viper.GetString("storage.secret_key"),
	}
}

func databaseURL() string {
	if url := viper.GetString("database_url"); url != "" {
		return url
	}
	return database.DefaultPath(dataDir())
}

// Constructors are variables so tests can substitute fakes.
var (
	newLLMClient = func(ctx context.Context) (llm.Client, error) {
		cfg, err := llmConfig()
		if err != nil {
			return nil, err
		}
		return llm.NewFromConfig(ctx, cfg)
	}
	newPDFRenderer = func() builder.PDFRenderer {
		return builder.NewChromeRenderer(viper.GetString("chrome_path"))
	}
	newStore = func(ctx context.Context) (objectStore, error) {
		return storage.New(ctx, storageConfig())
	}
)

type objectStore interface {
	Bucket() string
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
}

// openHistory opens and migrates the history database.
func openHistory(ctx context.Context) (*database.Queries, func(), error) {
	db, err := database.Open(ctx, databaseURL())
	if err != nil {
		return nil, nil, err
	}
	if err := database.NewMigrationRunner(db).Run(ctx, migrations.All()); err != nil {
		db.Close()
		return nil, nil, errors.Wrap(err, "failed to migrate history database")
	}
	return database.New(db), func() { db.Close() }, nil
}

// warnMissingAPIKey prints a warning when the selected provider has no key.
// Commands that do not call the model keep working.
func warnMissingAPIKey(p *presenter.Presenter, provider string) {
	env := llm.APIKeyEnvVar(provider)
	if env == "" {
		p.Warning("Unknown LLM provider " + provider + " (expected openai, anthropic or gemini)")
		return
	}
	if !llm.HasAPIKey(provider) {
		p.Warning(env + " not set. AI features will not work.")
		p.Dim("Set it in your environment or in a .env file.")
	}
}

func present(cmd *cobra.Command) *presenter.Presenter {
	p := presenter.NewWithOptions(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin())
	p.SetQuiet(viper.GetBool("quiet"))
	return p
}
