package cmd

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/ishmatch/internal/ai/gemini"
	"github.com/spigell/ishmatch/internal/headhunter"
	"github.com/spigell/ishmatch/internal/match"
	"github.com/spigell/ishmatch/internal/ranking"
)

const (
	app = "ishmatch"
)

type Config struct {
	Profile *match.Profile `mapstructure:"profile" validate:"required"`
	Weights match.Weights  `mapstructure:"weights"`
	// Regions replaces the built-in region borders when set.
	Regions  map[string][]string `mapstructure:"regions"`
	Language string              `mapstructure:"language" validate:"omitempty,oneof=uz ru"`

	Search    *headhunter.SearchParams `mapstructure:"search"`
	Mapping   *headhunter.Mapping      `mapstructure:"mapping"`
	HH        *HHConfig                `mapstructure:"hh"`
	TokenFile string                   `mapstructure:"token-file"`

	Rank *ranking.Config `mapstructure:"rank"`
	AI   *AIConfig       `mapstructure:"ai"`
}

type HHConfig struct {
	APIURL    string  `mapstructure:"api-url" validate:"omitempty,url"`
	UserAgent string  `mapstructure:"user-agent"`
	RateLimit float64 `mapstructure:"rate-limit" validate:"gte=0"`
	Workers   int     `mapstructure:"workers" validate:"gte=0"`
	// Describe fetches full descriptions for search results.
	Describe bool `mapstructure:"describe"`
}

type AIConfig struct {
	Enabled         bool                   `mapstructure:"enabled"`
	Provider        string                 `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	MinimumFitScore float64                `mapstructure:"minimum-fit-score" validate:"gte=0,lte=1"`
	Gemini          *GeminiConfig          `mapstructure:"gemini"`
	Prompt          gemini.PromptOverrides `mapstructure:"prompt"`
}

type GeminiConfig struct {
	APIKeyFile   string   `mapstructure:"api-key-file"`
	Model        string   `mapstructure:"model"`
	MaxRetries   int      `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int      `mapstructure:"max-log-length" validate:"gte=0"`
	Temperature  *float32 `mapstructure:"temperature" validate:"omitempty,gte=0,lte=2"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ishmatch ranks job vacancies against a job seeker profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "HH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HH_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ishmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// initConfig reads the config file. Only rank and score need a profile, so
// they call it from PreRun and the other commands work without a config.
func initConfig(_ *cobra.Command, _ []string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{
		Weights: match.DefaultWeights(),
		Rank:    &ranking.Config{},
		HH:      &HHConfig{},
	}

	if err := viper.Unmarshal(config, viper.DecodeHook(match.DecodeHook())); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}

// scorer builds the scorer from the configured weights and region borders.
func (c *Config) scorer() *match.Scorer {
	var adjacency *match.Adjacency
	if len(c.Regions) > 0 {
		adjacency = match.NewAdjacency(c.Regions)
	}
	return match.NewScorer(c.Weights, adjacency)
}
