// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/absmach/kvcache"
	"github.com/spf13/cobra"
)

const svcName = "kvcache-cli"

// NewVersionCmd returns version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get version of kvcache-cli",
		Long:  "Prints the version, commit and build time of kvcache-cli",
		Run: func(cmd *cobra.Command, args []string) {
			logJSONCmd(*cmd, kvcache.Info(svcName))
		},
	}
}
