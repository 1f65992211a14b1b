package cli

import (
	"github.com/spf13/cobra"

	"github.com/kinlab/kinchart/pkg/layout"
)

// strategiesCommand creates the command listing the registered strategies.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available layout strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			def := c.Config.Layout.Strategy
			for _, name := range layout.Names() {
				label := name
				if name == def {
					label += " (default)"
				}
				printKeyValue(label, strategyDescriptions[name])
			}
			return nil
		},
	}
}
