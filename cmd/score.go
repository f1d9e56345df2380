package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/ishmatch/internal/match"
	"github.com/spigell/ishmatch/internal/ranking"
)

type scoreOutput struct {
	ID     match.ID `json:"id"`
	Title  string   `json:"title,omitempty"`
	Region string   `json:"region,omitempty"`
	match.Result
}

var scoreCmd = &cobra.Command{
	Use:    "score",
	Short:  "Print the score breakdown of a single job",
	PreRun: initConfig,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("jobs")
		id, _ := cmd.Flags().GetString("id")

		config, err := getConfig()
		if err != nil {
			return err
		}

		return score(cmd, config, path, id)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("jobs", "", "JSON file with jobs")
	scoreCmd.Flags().String("id", "", "id of the job to score")
	scoreCmd.MarkFlagRequired("jobs")
	scoreCmd.MarkFlagRequired("id")
}

func score(cmd *cobra.Command, config *Config, path, id string) error {
	jobs, err := ranking.LoadJobs(path)
	if err != nil {
		return fmt.Errorf("loading jobs: %w", err)
	}

	target := match.ParseID(id)
	for _, job := range jobs {
		if job == nil || !job.ID.Equal(target) {
			continue
		}

		result := config.scorer().Score(config.Profile, job)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(scoreOutput{
			ID:     job.ID,
			Title:  job.Title,
			Region: match.RegionName(job.RegionID),
			Result: result,
		})
	}

	return errors.New("there is no job with id " + id)
}
