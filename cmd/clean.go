package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/ishmatch/internal/textclean"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalize vacancy text and locations",
}

var cleanTextCmd = &cobra.Command{
	Use:   "text [TEXT]",
	Short: "Turn a vacancy description into plain text. Reads stdin without TEXT",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := argOrStdin(cmd, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), textclean.CleanJobText(text))
		return nil
	},
}

var cleanLocationCmd = &cobra.Command{
	Use:   "location LOCATION",
	Short: "Normalize a location string",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), textclean.NormalizeLocation(strings.Join(args, " ")))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.AddCommand(cleanTextCmd, cleanLocationCmd)
}

func argOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
