// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bartekus/concommit/cmd/concommit/internal/clierr"
	"github.com/bartekus/concommit/internal/present"
)

// NewGroupsCommand returns the `concommit groups` command, which prints the parsed
// per-commit file groups the ranking is computed from.
func NewGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Print the files changed by each recent commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json", "yaml", "markdown":
			default:
				return clierr.Usage(fmt.Errorf("invalid format: %s (must be json, yaml or markdown)", format))
			}

			h, err := e.loadHistory(cmd.Context(), intFlag(cmd, "max-count", e.cfg.History.MaxCount))
			if err != nil {
				return err
			}
			return present.RenderGroups(cmd.OutOrStdout(), format, h)
		},
	}

	cmd.Flags().String("format", "json", "output format: json, yaml or markdown")
	cmd.Flags().Int("max-count", 100, "number of recent commits to read")

	return cmd
}
