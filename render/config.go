// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package render

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/starknet-testnets/netgen/network"
	"github.com/starknet-testnets/netgen/utils/constants"
)

type malachiteConfig struct {
	Moniker   string          `toml:"moniker"`
	Consensus consensusConfig `toml:"consensus"`
	Mempool   mempoolConfig   `toml:"mempool"`
	Metrics   metricsConfig   `toml:"metrics"`
	Logging   loggingConfig   `toml:"logging"`
}

type consensusConfig struct {
	TimeoutPropose   string    `toml:"timeout_propose"`
	TimeoutPrevote   string    `toml:"timeout_prevote"`
	TimeoutPrecommit string    `toml:"timeout_precommit"`
	P2P              p2pConfig `toml:"p2p"`
}

type mempoolConfig struct {
	MaxTxCount int       `toml:"max_tx_count"`
	P2P        p2pConfig `toml:"p2p"`
}

type p2pConfig struct {
	ListenAddr      string   `toml:"listen_addr"`
	PersistentPeers []string `toml:"persistent_peers"`
}

type metricsConfig struct {
	Enabled    bool   `toml:"enabled"`
	ListenAddr string `toml:"listen_addr"`
}

type loggingConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

const (
	defaultMempoolMaxTxCount = 10000
	defaultNodeLogLevel      = "debug"
	defaultNodeLogFormat     = "plaintext"
)

func p2p(port int, peers []string) p2pConfig {
	addrs := make([]string, len(peers))
	for i, peer := range peers {
		addrs[i] = network.PeerAddr(peer, port)
	}
	return p2pConfig{
		ListenAddr:      fmt.Sprintf("/ip4/0.0.0.0/tcp/%d", port),
		PersistentPeers: addrs,
	}
}

// MalachiteConfig renders the config.toml of a malachite node.
// Timeouts are written as given, with their unit suffix.
func MalachiteConfig(p network.MalachiteParams) ([]byte, error) {
	cfg := malachiteConfig{
		Moniker: p.Moniker,
		Consensus: consensusConfig{
			TimeoutPropose:   p.TimeoutPropose,
			TimeoutPrevote:   p.TimeoutPrevote,
			TimeoutPrecommit: p.TimeoutPrecommit,
			P2P:              p2p(constants.P2PPort, p.PersistentPeers),
		},
		Mempool: mempoolConfig{
			MaxTxCount: defaultMempoolMaxTxCount,
			P2P:        p2p(constants.MempoolP2PPort, p.PersistentPeers),
		},
		Metrics: metricsConfig{
			Enabled:    true,
			ListenAddr: fmt.Sprintf("0.0.0.0:%d", constants.MetricsPort),
		},
		Logging: loggingConfig{
			LogLevel:  defaultNodeLogLevel,
			LogFormat: defaultNodeLogFormat,
		},
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal malachite config: %w", err)
	}
	return out, nil
}
