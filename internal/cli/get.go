package cli

import (
	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/cermakm/nbrequirements/internal/requirements"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewGetCmd creates the get command
func NewGetCmd(v *viper.Viper) *cobra.Command {
	var config models.Config

	cmd := &cobra.Command{
		Use:   "get NOTEBOOK",
		Short: "Show notebook requirements",
		Long: `Gathers the libraries a notebook imports and combines them with the
requirements stored in the notebook metadata. Stored requirements take
preference since they may pin specific versions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Notebook = args[0]

			nb, err := notebook.Load(config.Notebook)
			if err != nil {
				return err
			}

			req, err := requirements.Get(nb, config.IgnoreMetadata)
			if err != nil {
				return err
			}

			if config.Write {
				if err := nb.SetRequirements(req); err != nil {
					return err
				}
				if err := saveNotebook(v, nb); err != nil {
					return err
				}
			}

			return writeRequirements(cmd.OutOrStdout(), req, config.Format)
		},
	}

	cmd.Flags().BoolVar(&config.IgnoreMetadata, "ignore-metadata", false, "Ignore requirements stored in the notebook metadata")
	cmd.Flags().StringVarP(&config.Format, "format", "f", formatJSON, "Output format (json, pipfile)")
	cmd.Flags().BoolVarP(&config.Write, "write", "w", false, "Store the requirements in the notebook metadata")

	return cmd
}
