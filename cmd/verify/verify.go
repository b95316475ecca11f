// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verify

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/starknet-testnets/netgen/local"
	"github.com/starknet-testnets/netgen/pkg/color"
	"github.com/starknet-testnets/netgen/pkg/logutil"
	"github.com/starknet-testnets/netgen/utils/constants"
)

var logLevel string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [network dir]",
		Short: "Checks that every malachite node of a generated network shares the same validator set.",
		RunE:  verifyFunc,
		Args:  cobra.ExactArgs(1),
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", constants.DefaultLogLevel, "log level")

	return cmd
}

func verifyFunc(_ *cobra.Command, args []string) error {
	log, err := logutil.NewConsoleLogger(logLevel, constants.LogNameMain)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	genesis, err := local.VerifyGenesis(args[0])
	if err != nil {
		return err
	}
	for _, v := range genesis.ValidatorSet.Validators {
		log.Debug("validator", zap.String("address", v.Address), zap.Uint64("voting-power", v.VotingPower))
	}
	color.Greenf("genesis is consistent: %d validators\n", len(genesis.ValidatorSet.Validators))
	return nil
}
