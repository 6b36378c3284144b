// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toeirei/keyvault/internal/gitsync"
)

// syncCmd runs the git sync sequence once, for scripted use.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the inventory through the git remote",
	Long: `Stage the inventory file, commit, pull --rebase, and push. The first
failing git command aborts the sequence; there is no rollback, so a rejected
push leaves the local commit in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		message, _ := cmd.Flags().GetString("message")

		backend := gitsync.NewGit(appCfg.KeysFile, ".")
		if err := backend.Sync(message); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Successfully synced with git repository")
		return nil
	},
}

func init() {
	syncCmd.Flags().StringP("message", "m", "Manual sync", "Commit message")
}
