package cli

import (
	"fmt"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRestoreCmd creates the restore command
func NewRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore NOTEBOOK",
		Short: "Restore a notebook from the backup taken with --backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := utils.RestoreBackup(path); err != nil {
				return &models.NbReqError{
					Type:     models.ErrFileOp,
					Notebook: path,
					Err:      fmt.Errorf("failed to restore notebook: %w", err),
				}
			}

			logrus.Infof("Notebook restored from %s", path+utils.BackupSuffix)
			return nil
		},
	}
}
