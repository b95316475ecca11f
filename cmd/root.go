// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/starknet-testnets/netgen/cmd/generate"
	"github.com/starknet-testnets/netgen/cmd/verify"
	"github.com/starknet-testnets/netgen/pkg/color"
)

var Version = ""

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "netgen",
		Short:         "netgen commands",
		SuggestFor:    []string{"network-generator"},
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		generate.NewCommand(),
		verify.NewCommand(),
	)
	return rootCmd
}

func init() {
	cobra.EnablePrefixMatching = true
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		color.Redf("netgen failed %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
