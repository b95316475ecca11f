// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"fmt"

	"github.com/starknet-testnets/netgen/network/node"
)

// Topology is the view a single node has of the network.
type Topology struct {
	// Names of the nodes this node keeps persistent connections to.
	Peers []string
	// Node this node dials first to join the network. Nil if none.
	Bootstrap *node.ID
}

// BuildTopology computes the topology of every node in [ids].
//
// Malachite nodes peer with every other malachite node and every sequencer.
// Sequencer i bootstraps from sequencer ((i-2) mod S)+1, so the sequencers
// form a ring where each one dials its predecessor. A lone sequencer has
// nothing to bootstrap from and gets no bootstrap peer.
func BuildTopology(ids []node.ID) (map[node.ID]Topology, error) {
	var (
		seen       = make(map[node.ID]struct{}, len(ids))
		malachites []node.ID
		sequencers []node.ID
	)
	for _, id := range ids {
		if !id.Kind.Valid() {
			return nil, fmt.Errorf("%w: unknown node kind %s", ErrInvalidTopology, id.Kind)
		}
		if id.Index < 1 {
			return nil, fmt.Errorf("%w: node index must be positive, got %d", ErrInvalidTopology, id.Index)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: repeated node %s", ErrInvalidTopology, id)
		}
		seen[id] = struct{}{}
		switch id.Kind {
		case node.Malachite:
			malachites = append(malachites, id)
		case node.Sequencer:
			sequencers = append(sequencers, id)
		}
	}
	if err := checkContiguous(sequencers); err != nil {
		return nil, err
	}

	topology := make(map[node.ID]Topology, len(ids))
	for _, id := range malachites {
		peers := make([]string, 0, len(malachites)-1+len(sequencers))
		for _, other := range malachites {
			if other != id {
				peers = append(peers, other.Name())
			}
		}
		peers = append(peers, node.Names(sequencers)...)
		topology[id] = Topology{Peers: peers}
	}
	for _, id := range sequencers {
		var t Topology
		if bootstrap, ok := BootstrapIndex(id.Index, len(sequencers)); ok {
			t.Bootstrap = &node.ID{Kind: node.Sequencer, Index: bootstrap}
		}
		topology[id] = t
	}
	return topology, nil
}

// BootstrapIndex returns the index of the ring predecessor of sequencer [i]
// in a ring of [count] sequencers. ok is false when count < 2.
func BootstrapIndex(i, count int) (int, bool) {
	if count < 2 {
		return 0, false
	}
	// (i-2) is -1 for the first node; keep the remainder non-negative
	return ((i-2)%count+count)%count + 1, true
}

// checkContiguous makes sure sequencer indices are exactly 1..len(ids),
// otherwise the ring would point at nodes that don't exist.
func checkContiguous(ids []node.ID) error {
	present := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		present[id.Index] = struct{}{}
	}
	for i := 1; i <= len(ids); i++ {
		if _, ok := present[i]; !ok {
			return fmt.Errorf("%w: sequencer indices must be 1..%d, missing %d", ErrInvalidTopology, len(ids), i)
		}
	}
	return nil
}
