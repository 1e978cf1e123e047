package notebook

import (
	"fmt"
	"strconv"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/hashicorp/go-version"
	"github.com/sirupsen/logrus"
)

// SetRequirements stores requirements in the notebook metadata, updating
// any requirements already present.
func (nb *Notebook) SetRequirements(req *models.Requirements) error {
	if err := nb.AssignMetadata(KeyRequirements, req); err != nil {
		return &models.NbReqError{Type: models.ErrRequirements, Notebook: nb.Path, Err: err}
	}

	logrus.Info("Notebook requirements have been set successfully.")
	return nil
}

// Requirements returns the requirements stored in the notebook metadata
func (nb *Notebook) Requirements() (*models.Requirements, bool, error) {
	var req models.Requirements
	ok, err := nb.GetMetadata(KeyRequirements, &req)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &req, true, nil
}

// SetRequirementsLocked stores locked requirements in the notebook metadata,
// updating any locked requirements already present.
func (nb *Notebook) SetRequirementsLocked(lock *models.RequirementsLocked) error {
	if err := nb.AssignMetadata(KeyRequirementsLocked, lock); err != nil {
		return &models.NbReqError{Type: models.ErrRequirements, Notebook: nb.Path, Err: err}
	}

	logrus.Info("Notebook locked requirements have been set successfully.")
	return nil
}

// RequirementsLocked returns the locked requirements stored in the notebook metadata
func (nb *Notebook) RequirementsLocked() (*models.RequirementsLocked, bool, error) {
	var lock models.RequirementsLocked
	ok, err := nb.GetMetadata(KeyRequirementsLocked, &lock)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &lock, true, nil
}

// KernelInfo returns the kernel language information
func (nb *Notebook) KernelInfo() (*models.KernelInfo, error) {
	var info models.KernelInfo
	ok, err := nb.GetMetadata(KeyLanguageInfo, &info.LanguageInfo)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &models.NbReqError{
			Type:     models.ErrKernel,
			Notebook: nb.Path,
			Err:      fmt.Errorf("unable to retrieve kernel info"),
		}
	}
	return &info, nil
}

// PythonVersion returns the major.minor version of the notebook kernel
func (nb *Notebook) PythonVersion() (string, error) {
	info, err := nb.KernelInfo()
	if err != nil {
		return "", err
	}

	v, err := version.NewVersion(info.LanguageInfo.Version)
	if err != nil {
		return "", &models.NbReqError{
			Type:     models.ErrKernel,
			Notebook: nb.Path,
			Err:      fmt.Errorf("python version %q does not match required pattern: %w", info.LanguageInfo.Version, err),
		}
	}

	segments := v.Segments()
	return strconv.Itoa(segments[0]) + "." + strconv.Itoa(segments[1]), nil
}

// Kernelspec returns the kernel the notebook is bound to
func (nb *Notebook) Kernelspec() (*models.KernelSpec, bool, error) {
	var spec models.KernelSpec
	ok, err := nb.GetMetadata(KeyKernelspec, &spec)
	if !ok || err != nil {
		return nil, ok, err
	}
	return &spec, true, nil
}

// SetKernelspec binds the notebook to a kernel
func (nb *Notebook) SetKernelspec(spec *models.KernelSpec) error {
	return nb.SetMetadata(KeyKernelspec, struct {
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Language    string `json:"language,omitempty"`
	}{spec.Name, spec.DisplayName, spec.Language})
}
