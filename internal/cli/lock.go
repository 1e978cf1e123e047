package cli

import (
	"fmt"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/cermakm/nbrequirements/internal/requirements"
	"github.com/cermakm/nbrequirements/internal/resolver"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// commandRunner executes resolution engines
var commandRunner resolver.Runner = resolver.ExecRunner{}

// NewLockCmd creates the lock command
func NewLockCmd(v *viper.Viper) *cobra.Command {
	var config models.Config

	cmd := &cobra.Command{
		Use:   "lock NOTEBOOK",
		Short: "Show or resolve locked notebook requirements",
		Long: `Prints the locked requirements stored in the notebook metadata. When
there are none, or --ignore-metadata is given, the notebook requirements
are resolved with the configured engine.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Notebook = args[0]

			engine, err := engineFrom(v)
			if err != nil {
				return err
			}
			config.Engine = engine

			nb, err := notebook.Load(config.Notebook)
			if err != nil {
				return err
			}

			// A stored lock needs neither an engine nor the notebook requirements
			useStored := !config.IgnoreMetadata && nb.HasMetadata(notebook.KeyRequirementsLocked)

			var req *models.Requirements
			var r resolver.Resolver
			if !useStored {
				req, err = requirements.Get(nb, false)
				if err != nil {
					return err
				}
				r, err = resolver.New(config.Engine, commandRunner)
				if err != nil {
					return err
				}
			}

			opts := resolver.Options{Dev: config.Dev, PreReleases: config.PreReleases}
			lock, err := resolver.GetLocked(cmd.Context(), nb, req, r, opts, config.IgnoreMetadata)
			if err != nil {
				return err
			}

			if useStored {
				req, err = requirements.Get(nb, false)
				if err != nil {
					logrus.Debugf("Skipping lock verification: %v", err)
				} else if err := resolver.VerifyLock(lock, req); err != nil {
					logrus.Warnf("%v", err)
				}
			}

			if config.Write {
				if req != nil {
					if err := nb.SetRequirements(req); err != nil {
						return err
					}
				}
				if err := nb.SetRequirementsLocked(lock); err != nil {
					return err
				}
				if err := saveNotebook(v, nb); err != nil {
					return err
				}
			}

			data, err := resolver.MarshalLock(lock)
			if err != nil {
				return fmt.Errorf("failed to encode lock: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&config.Dev, "dev", false, "Lock development packages as well")
	cmd.Flags().BoolVar(&config.PreReleases, "pre", false, "Allow pre-releases")
	cmd.Flags().BoolVar(&config.IgnoreMetadata, "ignore-metadata", false, "Resolve even when a lock is stored in the notebook")
	cmd.Flags().BoolVarP(&config.Write, "write", "w", false, "Store requirements and the lock in the notebook metadata")

	return cmd
}
