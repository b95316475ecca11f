// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"fmt"

	"github.com/starknet-testnets/netgen/keys"
)

// Kind of node to set up (malachite validator or sequencer)
type Kind int

const (
	Malachite Kind = iota
	Sequencer
)

const (
	malachiteBinary = "informalsystems-malachitebft-starknet-app"
	sequencerBinary = "apollo_node"
)

func (k Kind) String() string {
	switch k {
	case Malachite:
		return "malachite"
	case Sequencer:
		return "sequencer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Binary returns the executable a node of this kind runs.
func (k Kind) Binary() string {
	switch k {
	case Malachite:
		return malachiteBinary
	case Sequencer:
		return sequencerBinary
	default:
		return ""
	}
}

func (k Kind) Valid() bool {
	return k == Malachite || k == Sequencer
}

// ID uniquely identifies a node in its network.
type ID struct {
	Kind Kind
	// 1-based
	Index int
}

// Name returns the node's host name, e.g. "malachite-node-2".
// Must be unique across all the nodes in its network.
func (id ID) Name() string {
	return Name(id.Kind, id.Index)
}

func (id ID) String() string {
	return id.Name()
}

func Name(kind Kind, index int) string {
	return fmt.Sprintf("%s-node-%d", kind, index)
}

// Ref is a node together with its key material.
type Ref struct {
	ID
	Identity *keys.Identity
}

// Names returns the names of [ids] in order.
func Names(ids []ID) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name()
	}
	return names
}
