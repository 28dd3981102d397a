// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Concommit - Concommit surfaces files that are frequently committed together with the file you are working on.
It reads recent git history, groups changed paths per commit and ranks co-committed files for quick navigation.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package commands contains the Cobra commands of the concommit CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the concommit root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("CONCOMMIT_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "concommit",
		Short:         "Find files that are committed together with a file",
		Long:          "concommit reads recent git history and ranks the files most often committed together with a given file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose (debug) logging")
	cmd.PersistentFlags().StringP("dir", "C", ".", "run as if started in this directory")
	cmd.PersistentFlags().String("config", "", "config file (default: .concommit.yaml in the project root or home directory)")
	cmd.PersistentFlags().String("log-format", "", "log format: text or json (overrides config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of concommit",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "concommit version %s\n", version)
		},
	})

	cmd.AddCommand(NewRelatedCommand())
	cmd.AddCommand(NewGroupsCommand())

	return cmd
}
