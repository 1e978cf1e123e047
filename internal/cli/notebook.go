package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/cermakm/nbrequirements/internal/requirements"
	"github.com/cermakm/nbrequirements/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Output formats
const (
	formatJSON    = "json"
	formatPipfile = "pipfile"
)

// saveNotebook writes nb back to disk, keeping a backup first when configured
func saveNotebook(v *viper.Viper, nb *notebook.Notebook) error {
	if v.GetBool(keyBackup) {
		backup, err := utils.BackupFile(nb.Path)
		if err != nil {
			return &models.NbReqError{
				Type:     models.ErrFileOp,
				Notebook: nb.Path,
				Err:      fmt.Errorf("failed to back up notebook: %w", err),
			}
		}
		logrus.Infof("Notebook backed up to %s", backup)
	}

	return nb.Save("")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRequirements(w io.Writer, req *models.Requirements, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, req)
	case formatPipfile:
		data, err := requirements.Pipfile(req)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return models.NewError(models.ErrInvalidConfig, fmt.Errorf("unknown format: %s", format))
	}
}
