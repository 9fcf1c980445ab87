// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
)

var (
	// ConfigPath config path parameter.
	ConfigPath string = ""
	// RawOutput raw output mode.
	RawOutput bool = false
	// TTL time to live parameter of set commands.
	TTL time.Duration = 0
	// Reverse descending order parameter of range commands.
	Reverse bool = false
	// RandomKey generate the key instead of reading it from the arguments.
	RandomKey bool = false
)

func logJSONCmd(cmd cobra.Command, iList ...interface{}) {
	for _, i := range iList {
		m, err := json.Marshal(i)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		if RawOutput {
			fmt.Fprintln(cmd.OutOrStdout(), string(m))
			continue
		}

		pj, err := prettyjson.Format(m)
		if err != nil {
			logErrorCmd(cmd, err)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", string(pj))
	}
}

// logValueCmd prints a stored value. Strings are printed unquoted in raw mode.
func logValueCmd(cmd cobra.Command, v interface{}) {
	if s, ok := v.(string); ok && RawOutput {
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return
	}

	logJSONCmd(cmd, v)
}

func logUsageCmd(cmd cobra.Command, u string) {
	fmt.Fprintf(cmd.OutOrStdout(), color.YellowString("\nusage: %s\n\n"), u)
}

func logErrorCmd(cmd cobra.Command, err error) {
	boldRed := color.New(color.FgRed, color.Bold)
	boldRed.Fprintf(cmd.ErrOrStderr(), "\nerror: ")

	fmt.Fprintf(cmd.ErrOrStderr(), "%s\n\n", color.RedString(err.Error()))
}

func logOKCmd(cmd cobra.Command) {
	if RawOutput {
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n\n", color.BlueString("ok"))
}

func logCreatedCmd(cmd cobra.Command, key string) {
	if RawOutput {
		fmt.Fprintln(cmd.OutOrStdout(), key)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), color.BlueString("\ncreated: %s\n\n"), key)
	}
}

// parseValue reads a command line value as JSON, falling back to the
// literal string when it is not valid JSON.
func parseValue(s string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}

	return v
}

func parseRange(start, end string) (int64, int64, error) {
	s, err := strconv.ParseInt(start, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	e, err := strconv.ParseInt(end, 10, 64)
	if err != nil {
		return 0, 0, err
	}

	return s, e, nil
}
