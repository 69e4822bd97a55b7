package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/brogergvhs/goodmorning/internal/config"
	"github.com/brogergvhs/goodmorning/internal/sources"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSourceCmd = &cobra.Command{
	Use:   "source [name]",
	Short: "Choose the default comic source",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names := sources.Names()

		var name string
		if len(args) == 1 {
			name = strings.ToLower(strings.TrimSpace(args[0]))
			if !slices.Contains(names, name) {
				return fmt.Errorf("unknown source %q", name)
			}
		} else {
			current, _, err := config.LoadMerged(config.Options{})
			if err != nil {
				return err
			}

			items := make([]string, len(names))
			for i, n := range names {
				items[i] = n
				if n == current.Source {
					items[i] = n + "  (active)"
				}
			}

			prompt := promptui.Select{
				Label: "Select source",
				Items: items,
			}

			idx, _, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("selection cancelled")
			}
			name = names[idx]
		}

		path, err := config.Update(func(c *config.Config) { c.Source = name })
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Source set to %s in %s\n", name, path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSourceCmd)
}
