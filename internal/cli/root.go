package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cermakm/nbrequirements/internal/about"
	"github.com/cermakm/nbrequirements/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys
const (
	keyVerbose    = "verbose"
	keyEngine     = "engine"
	keyKernelDirs = "kernel-dirs"
	keyBackup     = "backup"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:     "nbrequirements",
		Short:   about.Summary,
		Version: about.Version,
		Long: `nbrequirements manages the dependencies of Jupyter notebooks.

Requirements are gathered from the notebook imports and stored in the
notebook metadata together with their locked versions, so a notebook
carries everything needed to recreate its environment.

Supported resolution engines:
  - pipenv
  - thoth (via thamos)
  - micropipenv (requires a provided Pipfile.lock)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v, configFile); err != nil {
				return err
			}

			// Setup logging
			if v.GetBool(keyVerbose) {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
			logrus.SetOutput(cmd.ErrOrStderr())

			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.BoolP(keyVerbose, "v", false, "Enable verbose logging")
	flags.StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/nbrequirements/config.yaml)")
	flags.String(keyEngine, models.DefaultEngine.String(), "Resolution engine (pipenv, thoth, micropipenv)")
	flags.StringSlice(keyKernelDirs, nil, "Directories to look up kernelspecs in")
	flags.Bool(keyBackup, false, "Keep a gzip compressed backup of notebooks before modifying them")

	for _, key := range []string{keyVerbose, keyEngine, keyKernelDirs, keyBackup} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}
	v.SetEnvPrefix("NBREQUIREMENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Add subcommands
	rootCmd.AddCommand(NewAboutCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewGetCmd(v))
	rootCmd.AddCommand(NewSetCmd(v))
	rootCmd.AddCommand(NewLockCmd(v))
	rootCmd.AddCommand(NewKernelCmd(v))
	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewRestoreCmd())

	return rootCmd
}

func loadConfig(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "nbrequirements"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return &models.NbReqError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("failed to read config: %w", err),
		}
	}

	logrus.Debugf("Using config file: %s", v.ConfigFileUsed())
	return nil
}

// engineFrom returns the configured resolution engine
func engineFrom(v *viper.Viper) (models.ResolutionEngine, error) {
	return models.ParseEngine(v.GetString(keyEngine))
}
