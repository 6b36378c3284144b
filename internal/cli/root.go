// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

// root.go sets up the command-line interface for Keyvault using the Cobra
// library. It defines the root command, subcommands (list, sync), flags, and
// the main entry point for execution. Running without a subcommand launches
// the interactive console.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/keyvault/internal/config"
	"github.com/toeirei/keyvault/internal/i18n"
	"github.com/toeirei/keyvault/internal/store"
)

var version = "dev" // this will be set by the linker

var (
	cfgFile string
	appCfg  config.Config
)

var rootCmd = &cobra.Command{
	Use:   "keyvault",
	Short: "Keyvault is a personal SSH public key inventory manager.",
	Long: `Keyvault maintains a flat inventory of authorized public keys plus a
metadata sidecar (aliases, expiry dates, added timestamps). It captures keys
from the local machine, deploys selected keys into ~/.ssh/authorized_keys,
and optionally syncs the inventory through a git remote.

Running without a subcommand launches the interactive console.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appCfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
			appCfg.Language = lang
		}
		i18n.Init(appCfg.Language)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newConsole(appCfg)
		if err != nil {
			return err
		}
		defer c.Close()
		return c.Run()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(syncCmd)

	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.keyvault.yaml or ./.keyvault.yaml)")
	rootCmd.PersistentFlags().String("lang", "", `console language ("en", "de")`)
}

// Execute runs the root command. Errors are printed by Cobra; the caller
// only needs the exit code.
func Execute() error {
	return rootCmd.Execute()
}

// openStore loads the inventory from the configured locations.
func openStore(cfg config.Config) (*store.Store, error) {
	s := store.New(cfg.KeysFile, cfg.AliasesFile, cfg.BackupDir)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// exitError is returned by the console when the user aborts at the startup
// security prompt; main turns it into a non-zero exit.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// ExitCode extracts the intended process exit code from an Execute error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(exitError); ok {
		return e.code
	}
	return 1
}
