// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/absmach/kvcache"
	"github.com/spf13/cobra"
)

// NewListsCmds returns the list commands.
func NewListsCmds() []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "rpush <key> <value>",
			Short: "Append to list",
			Long: "Appends value to the tail of the list stored at key and shows the new length\n" +
				"Usage:\n" +
				"\tkvcache-cli rpush jobs '{\"id\":1}'\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 2 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				n, err := cache.RPush(cmd.Context(), args[0], parseValue(args[1]))
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, n)
			},
		},
		{
			Use:   "llen <key>",
			Short: "List length",
			Long: "Shows the length of the list stored at key\n" +
				"Usage:\n" +
				"\tkvcache-cli llen jobs\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 1 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				n, err := cache.LLen(cmd.Context(), args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, n)
			},
		},
		{
			Use:   "lrange <key> <start> <end>",
			Short: "Range over list",
			Long: "Shows list elements start to end inclusive\n" +
				"Usage:\n" +
				"\tkvcache-cli lrange jobs 0 9\n" +
				"\tkvcache-cli lrange jobs -- 0 -1 - the whole list\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 3 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				start, end, err := parseRange(args[1], args[2])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				vals, err := cache.LRange(cmd.Context(), args[0], start, end)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				elems, err := kvcache.DecodeAll[any](vals)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, elems)
			},
		},
		{
			Use:   "lpop <key>",
			Short: "Pop list head",
			Long: "Removes the head of the list stored at key and shows it\n" +
				"Usage:\n" +
				"\tkvcache-cli lpop jobs\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 1 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				var v interface{}
				if err := cache.LPop(cmd.Context(), args[0], &v); err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logValueCmd(*cmd, v)
			},
		},
		{
			Use:   "lrem <key> <value>",
			Short: "Remove list elements",
			Long: "Removes every element equal to value from the list stored at key and shows how many were removed\n" +
				"Usage:\n" +
				"\tkvcache-cli lrem jobs '{\"id\":1}'\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 2 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				n, err := cache.LRemove(cmd.Context(), args[0], parseValue(args[1]))
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, n)
			},
		},
	}
}
