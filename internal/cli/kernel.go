package cli

import (
	"fmt"
	"sort"

	"github.com/cermakm/nbrequirements/internal/kernel"
	"github.com/cermakm/nbrequirements/internal/notebook"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewKernelCmd creates the kernel command
func NewKernelCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kernel",
		Short: "Manage notebook kernels",
	}

	cmd.AddCommand(newKernelListCmd(v))
	cmd.AddCommand(newKernelSetCmd(v))

	return cmd
}

func newKernelListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed kernelspecs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := kernel.FindSpecs(kernelDirs(v))
			if err != nil {
				return err
			}

			names := lo.Keys(specs)
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", name, specs[name].Dir)
			}
			return nil
		},
	}
}

func newKernelSetCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "set NOTEBOOK [NAME]",
		Short: "Bind a notebook to a kernel",
		Long: `Binds the notebook to an installed kernel. Without NAME the kernel
name is derived from the notebook file name.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 1 {
				name = args[1]
			}

			nb, err := notebook.Load(args[0])
			if err != nil {
				return err
			}

			specs, err := kernel.FindSpecs(kernelDirs(v))
			if err != nil {
				return err
			}

			current, _, err := nb.Kernelspec()
			if err != nil {
				return err
			}

			name, err = kernel.Set(nb, name, specs)
			if err != nil {
				return err
			}

			if current == nil || current.Name != name {
				if err := saveNotebook(v, nb); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func kernelDirs(v *viper.Viper) []string {
	if dirs := v.GetStringSlice(keyKernelDirs); len(dirs) > 0 {
		return dirs
	}
	return kernel.DefaultDirs()
}
