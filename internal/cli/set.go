package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/cermakm/nbrequirements/internal/requirements"
	"github.com/cermakm/nbrequirements/internal/resolver"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSetCmd creates the set command
func NewSetCmd(v *viper.Viper) *cobra.Command {
	var from string
	var locked bool

	cmd := &cobra.Command{
		Use:   "set NOTEBOOK",
		Short: "Store requirements in the notebook metadata",
		Long: `Stores requirements read from a Pipfile (or its JSON form) in the
notebook metadata. With --locked, a Pipfile.lock is stored as the
notebook's locked requirements instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" {
				return models.NewError(models.ErrInvalidConfig, fmt.Errorf("--from is required"))
			}

			data, err := os.ReadFile(from)
			if err != nil {
				return models.NewError(models.ErrFileOp, fmt.Errorf("failed to read %s: %w", from, err))
			}

			nb, err := notebook.Load(args[0])
			if err != nil {
				return err
			}

			if locked {
				lock, err := resolver.ParseLock(data)
				if err != nil {
					return err
				}
				if err := nb.SetRequirementsLocked(lock); err != nil {
					return err
				}
			} else {
				req, err := parseRequirements(data)
				if err != nil {
					return err
				}
				if err := nb.SetRequirements(req); err != nil {
					return err
				}
			}

			return saveNotebook(v, nb)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Pipfile, requirements JSON or Pipfile.lock to read")
	cmd.Flags().BoolVar(&locked, "locked", false, "Store locked requirements from a Pipfile.lock")

	return cmd
}

// parseRequirements accepts both a Pipfile and requirements JSON
func parseRequirements(data []byte) (*models.Requirements, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return requirements.ParsePipfile(data)
	}

	logrus.Debug("Reading requirements as JSON")

	var req models.Requirements
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, models.NewError(models.ErrRequirements, fmt.Errorf("invalid requirements JSON: %w", err))
	}
	return &req, nil
}
