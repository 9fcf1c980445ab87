// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// NewValuesCmds returns the commands working on plain keys.
func NewValuesCmds() []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "set <key> <value>",
			Short: "Set value",
			Long: "Stores value at key, overwriting the previous value. Value is read as JSON when valid, as a string otherwise\n" +
				"Usage:\n" +
				"\tkvcache-cli set session '{\"user\":\"alice\"}'\n" +
				"\tkvcache-cli set session alice --ttl 10m - value expires after 10 minutes\n" +
				"\tkvcache-cli set '{\"user\":\"alice\"}' --random-key - stores the value at a generated key\n",
			Run: func(cmd *cobra.Command, args []string) {
				var key, value string
				switch {
				case RandomKey && len(args) == 1:
					id, err := idProvider.ID()
					if err != nil {
						logErrorCmd(*cmd, err)
						return
					}
					key, value = id, args[0]
				case !RandomKey && len(args) == 2:
					key, value = args[0], args[1]
				default:
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				var err error
				if TTL != 0 {
					err = cache.SetValueTTL(cmd.Context(), key, parseValue(value), TTL)
				} else {
					err = cache.SetValue(cmd.Context(), key, parseValue(value))
				}
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				if RandomKey {
					logCreatedCmd(*cmd, key)
					return
				}
				logOKCmd(*cmd)
			},
		},
		{
			Use:   "get <key>",
			Short: "Get value",
			Long: "Shows the value stored at key\n" +
				"Usage:\n" +
				"\tkvcache-cli get session\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 1 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				var v interface{}
				if err := cache.GetValue(cmd.Context(), args[0], &v); err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logValueCmd(*cmd, v)
			},
		},
		{
			Use:   "del <key>",
			Short: "Delete key",
			Long: "Removes key regardless of its type\n" +
				"Usage:\n" +
				"\tkvcache-cli del session\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 1 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				if err := cache.DelValue(cmd.Context(), args[0]); err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logOKCmd(*cmd)
			},
		},
		{
			Use:   "expire <key> <ttl>",
			Short: "Set time to live",
			Long: "Sets or refreshes the time to live of key and shows whether the key exists\n" +
				"Usage:\n" +
				"\tkvcache-cli expire session 30s\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 2 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				ttl, err := time.ParseDuration(args[1])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				ok, err := cache.Expire(cmd.Context(), args[0], ttl)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, ok)
			},
		},
		{
			Use:   "exists <key>",
			Short: "Check key",
			Long: "Shows whether key exists\n" +
				"Usage:\n" +
				"\tkvcache-cli exists session\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 1 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				ok, err := cache.HasKey(cmd.Context(), args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, ok)
			},
		},
		{
			Use:   "keys <pattern>",
			Short: "List keys",
			Long: "Lists keys matching the glob pattern\n" +
				"Usage:\n" +
				"\tkvcache-cli keys 'session*'\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 1 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				keys, err := cache.Keys(cmd.Context(), args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, keys)
			},
		},
		{
			Use:   "incr <key> <delta>",
			Short: "Increment counter",
			Long: "Atomically adds delta to the counter stored at key and shows the new value\n" +
				"Usage:\n" +
				"\tkvcache-cli incr visits 1\n" +
				"\tkvcache-cli incr visits -- -5 - negative deltas follow the flag terminator\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 2 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				delta, err := strconv.ParseInt(args[1], 10, 64)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				n, err := cache.Incr(cmd.Context(), args[0], delta)
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, n)
			},
		},
	}
}
