// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package generate

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/starknet-testnets/netgen/local"
	"github.com/starknet-testnets/netgen/network"
	"github.com/starknet-testnets/netgen/pkg/logutil"
	"github.com/starknet-testnets/netgen/utils/constants"
	"github.com/starknet-testnets/netgen/ux"
)

const (
	configFileKey       = "config"
	logLevelKey         = "log-level"
	outputDirKey        = "output-dir"
	nameKey             = "name"
	malachitePathKey    = "malachite-path"
	sequencerPathKey    = "sequencer-path"
	malachiteNodesKey   = "malachite-nodes"
	sequencerNodesKey   = "sequencer-nodes"
	proposalTimeoutKey  = "proposal-timeout"
	prevoteTimeoutKey   = "prevote-timeout"
	precommitTimeoutKey = "precommit-timeout"
	latencyKey          = "latency"
)

var errMissingNodeCount = errors.New("node counts are required")

func NewCommand() *cobra.Command {
	cmd, _ := newCommand()
	return cmd
}

func newCommand() (*cobra.Command, *viper.Viper) {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "generate [options]",
		Short: "Generates the configuration of a local malachite/sequencer network.",
		Args:  cobra.ExactArgs(0),
		RunE: func(*cobra.Command, []string) error {
			return generateFunc(v)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(configFileKey, "", "[optional] config file (json, yaml or toml) with any of the flags below")
	flags.String(logLevelKey, constants.DefaultLogLevel, "log level")
	flags.String(outputDirKey, constants.DefaultOutputDir, "directory under which the network directory is created")
	flags.String(nameKey, "", "[optional] name of the network, defaults to m<malachite nodes>-s<sequencer nodes>")
	flags.String(malachitePathKey, "", "absolute path to the malachite repository (required with malachite nodes)")
	flags.String(sequencerPathKey, "", "absolute path to the sequencer repository (required with sequencer nodes)")
	flags.Int(malachiteNodesKey, 0, "number of malachite nodes")
	flags.Int(sequencerNodesKey, 0, "number of sequencer nodes")
	flags.Int(proposalTimeoutKey, constants.DefaultTimeoutMs, "proposal timeout (in ms)")
	flags.Int(prevoteTimeoutKey, constants.DefaultTimeoutMs, "prevote timeout (in ms)")
	flags.Int(precommitTimeoutKey, constants.DefaultTimeoutMs, "precommit timeout (in ms)")
	flags.Int(latencyKey, constants.DefaultLatencyMs, "latency (in ms) between nodes")

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd, v
}

// loadConfig reads the network config from flags, NETGEN_* env vars and
// the optional config file, in that order of precedence.
func loadConfig(v *viper.Viper) (network.Config, error) {
	if configFile := v.GetString(configFileKey); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return network.Config{}, fmt.Errorf("couldn't read config file %q: %w", configFile, err)
		}
	}
	if !v.IsSet(malachiteNodesKey) || !v.IsSet(sequencerNodesKey) {
		return network.Config{}, fmt.Errorf("%w: set --%s and --%s", errMissingNodeCount, malachiteNodesKey, sequencerNodesKey)
	}
	return network.Config{
		Name:           v.GetString(nameKey),
		MalachitePath:  v.GetString(malachitePathKey),
		SequencerPath:  v.GetString(sequencerPathKey),
		MalachiteNodes: v.GetInt(malachiteNodesKey),
		SequencerNodes: v.GetInt(sequencerNodesKey),
		Timeouts: network.Timeouts{
			Propose:   millis(v, proposalTimeoutKey),
			Prevote:   millis(v, prevoteTimeoutKey),
			Precommit: millis(v, precommitTimeoutKey),
		},
		Latency: millis(v, latencyKey),
	}, nil
}

func millis(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetInt(key)) * time.Millisecond
}

func generateFunc(v *viper.Viper) error {
	log, err := logutil.NewConsoleLogger(v.GetString(logLevelKey), constants.LogNameMain)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	log.Debug("loaded config", zap.Any("config", cfg))

	n, err := network.Generate(log, cfg, rand.Reader)
	if err != nil {
		return err
	}
	dir, err := local.WriteNetwork(log, v.GetString(outputDirKey), n)
	if err != nil {
		return err
	}

	ux.Print(log, "{{green}}generated network %q in %s{{/}}", n.Config.Name, dir)
	ux.Print(log, "  malachite nodes: %d", n.Config.MalachiteNodes)
	ux.Print(log, "  sequencer nodes: %d", n.Config.SequencerNodes)
	ux.Print(log, "  validators: %d", len(n.Genesis.ValidatorSet.Validators))
	if n.SequencerTimeouts.Propose != cfg.Timeouts.Propose {
		ux.Print(log, "{{yellow}}  sequencer proposal timeout raised to %s{{/}}", n.SequencerTimeouts.Propose)
	}
	return nil
}
