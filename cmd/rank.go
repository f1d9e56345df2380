package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ishmatch/internal/ai"
	"github.com/spigell/ishmatch/internal/ai/gemini"
	"github.com/spigell/ishmatch/internal/experience"
	"github.com/spigell/ishmatch/internal/headhunter"
	"github.com/spigell/ishmatch/internal/logger"
	"github.com/spigell/ishmatch/internal/match"
	"github.com/spigell/ishmatch/internal/ranking"
	"github.com/spigell/ishmatch/internal/secrets"
)

const (
	PromptPrint               = "Print ranked jobs"
	PromptReportByCategory    = "Report by category"
	PromptAppendToExcludeFile = "Append all jobs to exclude file"
	PromptJobsToFile          = "Dump jobs to file"
	PromptQuit                = "Quit"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:    "rank",
	Short:  "Score jobs against the profile and walk through the best ones",
	PreRun: initConfig,
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("jobs", "", "JSON file with jobs to rank. The hh search from the config is used when unset.")
	rankCmd.Flags().BoolP("yes", "y", false, "print the ranked jobs without asking")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")
	rankCmd.Flags().Int("min-score", 0, "drop jobs scored under this value")
	rankCmd.Flags().Int("limit", 0, "keep only this many best jobs. 0 keeps all")
	rankCmd.Flags().Bool("no-ai", false, "skip the ai_fit step even when it is enabled in the config")

	viper.BindPFlag("rank.exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("rank.min-score", rankCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("rank.limit", rankCmd.Flags().Lookup("limit"))
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ishmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if err := runRank(ctx, cmd, config, logger); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func runRank(ctx context.Context, cmd *cobra.Command, config *Config, log *zap.Logger) error {
	jobs, err := loadJobs(ctx, cmd, config, log)
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		log.Info("exiting", zap.String("reason", "no jobs found"))
		return nil
	}

	entries := ranking.NewEntries(config.scorer().Rank(config.Profile, jobs))

	pipeline, err := preparePipeline(ctx, cmd, config, log)
	if err != nil {
		return err
	}

	for _, status := range pipeline.Describe() {
		log.Debug("ranking step status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	entries, err = pipeline.Run(ctx, entries)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	if entries.Len() == 0 {
		log.Info("exiting", zap.String("reason", "no jobs left after ranking steps"))
		return nil
	}

	out := cmd.OutOrStdout()
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		printEntries(out, entries)
		return nil
	}

	items := []string{PromptPrint, PromptReportByCategory, PromptJobsToFile}
	if config.Rank.ExcludeFile != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	prompt := promptui.Select{
		Label: "What next?",
		Items: append(items, PromptQuit),
	}

	for {
		log.Info("current list of jobs", zap.Int("count", entries.Len()))
		if entries.Len() == 0 {
			return nil
		}

		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleAction(action, out, log, config, entries); err != nil {
			return err
		}
	}
}

func handleAction(action string, out io.Writer, log *zap.Logger, config *Config, entries *ranking.Entries) error {
	switch action {
	case PromptPrint:
		printEntries(out, entries)
		return nil
	case PromptQuit:
		log.Info("exiting", zap.String("reason", "quit from prompt"))
		return errExit
	case PromptReportByCategory:
		pretty, _ := json.MarshalIndent(entries.ReportByCategory(experience.ParseLang(config.Language)), "", "  ")
		log.Info(string(pretty), zap.Int("jobs count", entries.Len()))
		return nil
	case PromptJobsToFile:
		filename, err := entries.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		log.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(log, config.Rank.ExcludeFile, entries)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(log *zap.Logger, path string, entries *ranking.Entries) error {
	excluded, err := ranking.LoadExcluded(path)
	if err != nil {
		return err
	}

	excluded.Append(entries.ToExcluded())

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	log.Info("appended to exclude file", zap.String("filename", path))

	entries.Exclude(ranking.FieldID, excluded.IDs())
	return nil
}

func printEntries(out io.Writer, entries *ranking.Entries) {
	for _, entry := range entries.Items {
		job := entry.Job
		fmt.Fprintf(out, "%3d  %s  %s\n", entry.Result.Score, job.ID, joinNonEmpty(" / ", job.Title, job.Employer, job.Location))
		if job.URL != "" {
			fmt.Fprintf(out, "     %s\n", job.URL)
		}
		if entry.AI != nil && entry.AI.Reason != "" {
			fmt.Fprintf(out, "     ai: %s\n", entry.AI.Reason)
		}
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

// loadJobs reads the --jobs file or runs the configured hh search.
func loadJobs(ctx context.Context, cmd *cobra.Command, config *Config, log *zap.Logger) ([]*match.Job, error) {
	if path, _ := cmd.Flags().GetString("jobs"); path != "" {
		jobs, err := ranking.LoadJobs(path)
		if err != nil {
			return nil, fmt.Errorf("loading jobs: %w", err)
		}
		log.Info("loaded jobs", zap.String(logger.FieldSource, path), zap.Int("count", len(jobs)))
		return jobs, nil
	}

	hh, err := newHeadhunter(config, log)
	if err != nil {
		return nil, err
	}

	log.Info("starting the search", zap.String("search", searchText(config.Search)))

	vacancies, err := hh.Search(ctx, config.Search)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	log.Info("getting vacancies", zap.Int("count", vacancies.Len()))

	if config.HH.Describe {
		if err := hh.Describe(ctx, vacancies); err != nil {
			return nil, fmt.Errorf("describe vacancies: %w", err)
		}
	}

	return vacancies.ToJobs(config.Mapping), nil
}

func newHeadhunter(config *Config, log *zap.Logger) (*headhunter.Client, error) {
	token, err := secrets.Load(secrets.Source{
		Name:     "headhunter token",
		File:     config.TokenFile,
		Env:      "HH_TOKEN",
		Optional: true,
	})
	if err != nil {
		return nil, fmt.Errorf("loading headhunter token: %w", err)
	}

	hh := headhunter.New(log, token)

	if config.HH.APIURL != "" {
		hh.APIURL = strings.TrimRight(config.HH.APIURL, "/")
	}
	if config.HH.UserAgent != "" {
		hh.UserAgent = config.HH.UserAgent
	}
	if config.HH.RateLimit > 0 {
		hh.SetRateLimit(config.HH.RateLimit)
	}
	if config.HH.Workers > 0 {
		hh.Workers = config.HH.Workers
	}

	return hh, nil
}

func searchText(params *headhunter.SearchParams) string {
	if params == nil {
		return ""
	}
	return params.Text
}

func preparePipeline(ctx context.Context, cmd *cobra.Command, config *Config, log *zap.Logger) (*ranking.Pipeline, error) {
	rankCfg := *config.Rank
	deps := ranking.Deps{Logger: log, Profile: config.Profile}
	steps := ranking.DefaultSteps()

	noAI, _ := cmd.Flags().GetBool("no-ai")
	switch {
	case noAI:
		ranking.DisableByName(steps, "ai_fit", "disabled via flag")
	case config.AI != nil && config.AI.Enabled:
		rankCfg.AI = config.AI.toRanking()

		matcher, err := newAIMatcher(ctx, config.AI, config.Language, log)
		if err != nil {
			return nil, fmt.Errorf("building ai matcher: %w", err)
		}
		deps.Matcher = matcher
	}

	return ranking.New(&rankCfg, deps, steps...), nil
}

func (c *AIConfig) toRanking() *ranking.AIConfig {
	cfg := &ranking.AIConfig{
		Enabled:         c.Enabled,
		Provider:        c.Provider,
		MinimumFitScore: c.MinimumFitScore,
		Gemini:          &ranking.GeminiConfig{},
	}
	if c.Gemini != nil {
		cfg.Gemini.Model = c.Gemini.Model
		cfg.Gemini.MaxRetries = c.Gemini.MaxRetries
		cfg.Gemini.MaxLogLength = c.Gemini.MaxLogLength
	}
	return cfg
}

func newAIMatcher(ctx context.Context, cfg *AIConfig, language string, log *zap.Logger) (ai.Matcher, error) {
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, gemini.Options{
		Model:       cfg.Gemini.Model,
		MaxRetries:  cfg.Gemini.MaxRetries,
		Temperature: cfg.Gemini.Temperature,
	}, log)
	if err != nil {
		return nil, err
	}

	matcher := gemini.NewMatcher(generator, cfg.MinimumFitScore, cfg.Gemini.MaxLogLength, log)
	matcher.SetPromptOverrides(cfg.Prompt)
	matcher.SetLanguage(experience.ParseLang(language))

	return matcher, nil
}
