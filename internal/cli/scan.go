package cli

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/cermakm/nbrequirements/internal/scanner"
	"github.com/cermakm/nbrequirements/internal/utils"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NotebookReport summarizes the requirements state of a notebook
type NotebookReport struct {
	Path            string   `json:"path"`
	SHA256          string   `json:"sha256"`
	Libraries       []string `json:"libraries"`
	HasRequirements bool     `json:"has_requirements"`
	HasLocked       bool     `json:"has_requirements_locked"`
	ExecutionCount  int      `json:"execution_count"`
}

// NewScanCmd creates the scan command
func NewScanCmd() *cobra.Command {
	var config models.Config
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan [DIR]",
		Short: "Report library usage of notebooks in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			reports, err := scanNotebooks(cmd.Context(), dir, &config)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, reports)
			}

			for _, r := range reports {
				fmt.Fprintf(out, "%s\n", r.Path)
				fmt.Fprintf(out, "  libraries:           %s\n", strings.Join(r.Libraries, ", "))
				fmt.Fprintf(out, "  requirements:        %t\n", r.HasRequirements)
				fmt.Fprintf(out, "  requirements locked: %t\n", r.HasLocked)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&config.Patterns, "pattern", "p", scanner.DefaultPatterns, "Glob patterns selecting notebooks")
	cmd.Flags().IntVarP(&config.Concurrency, "concurrency", "j", runtime.GOMAXPROCS(0), "Notebooks analyzed in parallel")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print reports as JSON")

	return cmd
}

func scanNotebooks(ctx context.Context, dir string, config *models.Config) ([]NotebookReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	found, err := scanner.NewFileSystemScanner(config.Patterns...).Scan(ctx, dir)
	if err != nil {
		return nil, &models.NbReqError{
			Type: models.ErrFileOp,
			Err:  fmt.Errorf("failed to scan directory: %w", err),
		}
	}

	if len(found) == 0 {
		logrus.Warn("No notebooks found")
		return nil, nil
	}

	// Each goroutine owns one slot, so results keep scan order
	results := make([]*NotebookReport, len(found))

	g, ctx := errgroup.WithContext(ctx)
	if config.Concurrency > 0 {
		g.SetLimit(config.Concurrency)
	}

	for i, scanned := range found {
		i, scanned := i, scanned

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			report, err := analyzeNotebook(scanned.Path)
			if err != nil {
				logrus.Warnf("Skipping notebook %s: %v", scanned.Path, err)
				return nil
			}
			results[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	reports := lo.FilterMap(results, func(r *NotebookReport, _ int) (NotebookReport, bool) {
		if r == nil {
			return NotebookReport{}, false
		}
		return *r, true
	})

	return reports, nil
}

func analyzeNotebook(path string) (*NotebookReport, error) {
	nb, err := notebook.Load(path)
	if err != nil {
		return nil, err
	}

	digest, err := utils.FileSHA256(path)
	if err != nil {
		return nil, &models.NbReqError{Type: models.ErrFileOp, Notebook: path, Err: err}
	}

	return &NotebookReport{
		Path:            path,
		SHA256:          digest,
		Libraries:       scanner.GatherLibraryUsage(nb.Cells()),
		HasRequirements: nb.HasMetadata(notebook.KeyRequirements),
		HasLocked:       nb.HasMetadata(notebook.KeyRequirementsLocked),
		ExecutionCount:  nb.ExecutionCount(),
	}, nil
}
