// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "path/filepath"

const (
	LogNameMain     = "main"
	EnvPrefix       = "NETGEN"
	DefaultLogLevel = "info"

	// Consensus p2p port every node listens on inside the compose network.
	P2PPort = 27000

	DefaultTimeoutMs = 500
	DefaultLatencyMs = 0
)

var DefaultOutputDir = filepath.Join("shared", "networks")

const (
	MempoolP2PPort = 28000
	MetricsPort    = 9000
)
