// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strconv"

	"github.com/absmach/kvcache"
	"github.com/spf13/cobra"
)

// NewZSetsCmds returns the sorted set commands.
func NewZSetsCmds() []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "zadd <key> <score> <member>",
			Short: "Add sorted set member",
			Long: "Adds member to the sorted set stored at key or updates its score. Shows whether the member is new\n" +
				"Usage:\n" +
				"\tkvcache-cli zadd leaderboard 42 '\"alice\"'\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 3 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				score, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				added, err := cache.ZSetAdd(cmd.Context(), args[0], parseValue(args[2]), score)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, added)
			},
		},
		{
			Use:   "zrem <key> <member>...",
			Short: "Remove sorted set members",
			Long: "Removes members from the sorted set stored at key and shows how many were removed\n" +
				"Usage:\n" +
				"\tkvcache-cli zrem leaderboard alice bob\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) < 2 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				members := make([]any, 0, len(args)-1)
				for _, m := range args[1:] {
					members = append(members, parseValue(m))
				}

				n, err := cache.ZSetDel(cmd.Context(), args[0], members...)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, n)
			},
		},
		{
			Use:   "zcard <key>",
			Short: "Count sorted set members",
			Long: "Shows the number of members of the sorted set stored at key\n" +
				"Usage:\n" +
				"\tkvcache-cli zcard leaderboard\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 1 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				n, err := cache.ZSetSize(cmd.Context(), args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, n)
			},
		},
		{
			Use:   "zrange <key> <start> <end>",
			Short: "Range over sorted set",
			Long: "Shows members ranked start to end inclusive, ascending by score or descending with --rev\n" +
				"Usage:\n" +
				"\tkvcache-cli zrange leaderboard 0 9\n" +
				"\tkvcache-cli zrange leaderboard --rev -- 0 -1 - all members, highest score first\n",
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

				var vals kvcache.Values
				if Reverse {
					vals, err = cache.ZSetRevRange(cmd.Context(), args[0], start, end)
				} else {
					vals, err = cache.ZSetRange(cmd.Context(), args[0], start, end)
				}
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				members, err := kvcache.DecodeAll[any](vals)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, members)
			},
		},
	}
}
