// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"strings"

	"go.uber.org/zap"

	"github.com/starknet-testnets/netgen/pkg/color"
)

// Print writes [msg] to stdout, with color markup such as "{{green}}",
// and records the formatted line at debug level.
func Print(log *zap.Logger, msg string, args ...interface{}) {
	line := color.Sprintf(msg, args...)
	color.Outf("%s\n", line)
	log.Debug(strings.TrimSpace(line))
}
