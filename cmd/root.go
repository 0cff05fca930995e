package cmd

import (
	"log"

	"github.com/gitscout/gitscout/internal/quality"
	"github.com/gitscout/gitscout/internal/scoring"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "gitscout"
)

type Config struct {
	Job             map[string]any  `mapstructure:"job"`
	Candidates      []string        `mapstructure:"candidates"`
	GithubTokenFile string          `mapstructure:"github-token-file"`
	UserAgent       string          `mapstructure:"user-agent"`
	Analysis        *AnalysisConfig `mapstructure:"analysis"`
	AI              *AIConfig       `mapstructure:"ai"`
}

type AnalysisConfig struct {
	MaxRepos       int              `mapstructure:"max-repos"`
	MaxFiles       int              `mapstructure:"max-files"`
	MaxFileBytes   int              `mapstructure:"max-file-bytes"`
	MaxComparisons int              `mapstructure:"max-comparisons"`
	Scoring        *scoring.Weights `mapstructure:"scoring-weights"`
	Quality        *quality.Weights `mapstructure:"quality-weights"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "gitscout is a cli for scoring candidates' public repositories against a job posting",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("github-token-file", "GITHUB_TOKEN_FILE"); err != nil {
		log.Fatalf("binding GITHUB_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is gitscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the run command. Without it we can skip initialization.
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
