package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/ishmatch/internal/experience"
)

var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Work with experience codes",
}

var experienceNormalizeCmd = &cobra.Command{
	Use:   "normalize VALUE",
	Short: "Print the canonical experience code of a value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, ok := experience.NormalizeCode(args[0])
		if !ok {
			return fmt.Errorf("unknown experience value %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), code)
		return nil
	},
}

var experienceExpandCmd = &cobra.Command{
	Use:   "expand VALUE",
	Short: "Print every stored value that a filter on VALUE should match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values := experience.ExpandFilterValues(args[0])
		if len(values) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(values, "\n"))
		}
		return nil
	},
}

var experienceLabelCmd = &cobra.Command{
	Use:   "label [VALUE]",
	Short: "Print the display label of an experience value",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value any
		if len(args) > 0 {
			value = args[0]
		}

		var years *float64
		if cmd.Flags().Changed("years") {
			y, _ := cmd.Flags().GetFloat64("years")
			years = &y
		}

		lang, _ := cmd.Flags().GetString("lang")
		fmt.Fprintln(cmd.OutOrStdout(), experience.Label(value, years, experience.ParseLang(lang)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(experienceCmd)
	experienceCmd.AddCommand(experienceNormalizeCmd, experienceExpandCmd, experienceLabelCmd)

	experienceLabelCmd.Flags().Float64("years", 0, "exact years of experience, wins over VALUE when positive")
	experienceLabelCmd.Flags().String("lang", string(experience.Uzbek), "label language: uz or ru")
}
