// Copyright (c) 2025 ToeiRei
// Keyvault - SSH public key inventory
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/toeirei/keyvault/internal/sshkey"
)

// listCmd prints the inventory as a table for scripted use.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all inventory keys",
	Long: `Display the managed inventory in table format with position, display
name, alias, key type, expiry, added timestamp, and a best-effort SHA256
fingerprint. You can filter by a search term against name and alias.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchTerm, _ := cmd.Flags().GetString("search")

		st, err := openStore(appCfg)
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}

		indices := st.Filter(searchTerm)
		if len(indices) == 0 {
			fmt.Println("No keys found.")
			return nil
		}

		keys := st.Keys()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "POS\tNAME\tALIAS\tTYPE\tEXPIRES\tADDED\tFINGERPRINT")
		for _, i := range indices {
			meta := st.Metadata(i)
			alias := meta.Alias
			if alias == "" {
				alias = "-"
			}
			expires := meta.Expiry
			if expires == "" {
				expires = "never"
			}
			added := meta.Added
			if added == "" {
				added = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				i+1, sshkey.DisplayName(keys[i].Line), alias,
				sshkey.Algorithm(keys[i].Line), expires, added,
				sshkey.Fingerprint(keys[i].Line))
		}
		w.Flush()
		return nil
	},
}

func init() {
	listCmd.Flags().String("search", "", "Filter by display name or alias")
}
