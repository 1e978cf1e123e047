package cli

import (
	"encoding/json"
	"fmt"

	"github.com/cermakm/nbrequirements/internal/about"
	"github.com/spf13/cobra"
)

// NewAboutCmd creates the about command
func NewAboutCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show package metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := about.Get()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			values := info.Map()
			for _, name := range about.Names() {
				fmt.Fprintf(out, "%-10s %s\n", name+":", values[name])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print metadata as JSON")

	return cmd
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", about.Title, about.Version)
		},
	}
}
