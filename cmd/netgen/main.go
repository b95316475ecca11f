// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import "github.com/starknet-testnets/netgen/cmd"

func main() {
	cmd.Execute()
}
