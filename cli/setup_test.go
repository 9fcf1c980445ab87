// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/absmach/kvcache/cli"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

type outputLog uint8

const (
	usageLog outputLog = iota
	errLog
	entityLog
	okLog
	createLog
	rawLog
)

func executeCommand(t *testing.T, root *cobra.Command, args ...string) string {
	buffer := new(bytes.Buffer)
	root.SetOut(buffer)
	root.SetErr(buffer)
	root.SetArgs(args)
	err := root.Execute()
	assert.NoError(t, err, "Error executing command")
	return buffer.String()
}

func newRootCmd(cmds ...*cobra.Command) *cobra.Command {
	rootCmd := &cobra.Command{Use: "kvcache-cli"}
	rootCmd.AddCommand(cmds...)

	return setFlags(rootCmd)
}

func setFlags(rootCmd *cobra.Command) *cobra.Command {
	// Root Flags
	rootCmd.PersistentFlags().BoolVarP(
		&cli.RawOutput,
		"raw",
		"R",
		false,
		"Enables raw output mode for easier parsing of output",
	)

	rootCmd.PersistentFlags().StringVar(
		&cli.ConfigPath,
		"config",
		"",
		"Config file path",
	)

	// Set and range Flags
	rootCmd.PersistentFlags().DurationVarP(
		&cli.TTL,
		"ttl",
		"t",
		0,
		"Time to live of set values",
	)

	rootCmd.PersistentFlags().BoolVar(
		&cli.Reverse,
		"rev",
		false,
		"Range in descending score order",
	)

	rootCmd.PersistentFlags().BoolVar(
		&cli.RandomKey,
		"random-key",
		false,
		"Store the value at a generated key",
	)

	return rootCmd
}

// resetFlags restores flag bound globals, which keep their values
// between executions of the same root command.
func resetFlags() {
	cli.RawOutput = false
	cli.TTL = 0
	cli.Reverse = false
	cli.RandomKey = false
	cli.ConfigPath = ""
}

func usage(use string) string {
	return fmt.Sprintf("\nusage: %s\n\n", use)
}

func errMessage(err error) string {
	return fmt.Sprintf("\nerror: %s\n\n", err)
}

const okMessage = "\nok\n\n"
