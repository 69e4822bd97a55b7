package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/brogergvhs/goodmorning/internal/config"
	"github.com/brogergvhs/goodmorning/internal/sources"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the available comic sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := config.LoadMerged(config.Options{IgnoreConfig: flagIgnoreConfig})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tENDPOINT\tACTIVE")

		for _, name := range sources.Names() {
			src, err := sources.New(name, nil, nil, sourceOptions(cfg), nil)
			if err != nil {
				return err
			}

			active := ""
			if name == cfg.Source {
				active = "yes"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", name, src.Endpoint(), active)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
