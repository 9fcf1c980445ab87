// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import "github.com/spf13/cobra"

// NewMapsCmds returns the hash commands.
func NewMapsCmds() []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "hset <key> <field> <value>",
			Short: "Set hash field",
			Long: "Sets field of the hash stored at key. With --ttl the time to live applies to the whole hash\n" +
				"Usage:\n" +
				"\tkvcache-cli hset user:1 name '\"alice\"'\n" +
				"\tkvcache-cli hset user:1 token abc --ttl 1h\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 3 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				var err error
				if TTL != 0 {
					err = cache.SetMapValueTTL(cmd.Context(), args[0], args[1], parseValue(args[2]), TTL)
				} else {
					err = cache.SetMapValue(cmd.Context(), args[0], args[1], parseValue(args[2]))
				}
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logOKCmd(*cmd)
			},
		},
		{
			Use:   "hget <key> <field>",
			Short: "Get hash field",
			Long: "Shows the value of field in the hash stored at key\n" +
				"Usage:\n" +
				"\tkvcache-cli hget user:1 name\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 2 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				var v interface{}
				if err := cache.GetMapValue(cmd.Context(), args[0], args[1], &v); err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logValueCmd(*cmd, v)
			},
		},
		{
			Use:   "hdel <key> <field>",
			Short: "Delete hash field",
			Long: "Removes field from the hash stored at key\n" +
				"Usage:\n" +
				"\tkvcache-cli hdel user:1 token\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 2 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				if err := cache.DelMapValue(cmd.Context(), args[0], args[1]); err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logOKCmd(*cmd)
			},
		},
		{
			Use:   "hkeys <key>",
			Short: "List hash fields",
			Long: "Lists the field names of the hash stored at key\n" +
				"Usage:\n" +
				"\tkvcache-cli hkeys user:1\n",
			Run: func(cmd *cobra.Command, args []string) {
				if len(args) != 1 {
					logUsageCmd(*cmd, cmd.Use)
					return
				}

				fields, err := cache.MapKeys(cmd.Context(), args[0])
				if err != nil {
					logErrorCmd(*cmd, err)
					return
				}

				logJSONCmd(*cmd, fields)
			},
		},
	}
}
