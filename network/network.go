// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/starknet-testnets/netgen/keys"
	"github.com/starknet-testnets/netgen/network/node"
)

// Network is the fully derived plan of a network: every identity, the shared
// genesis and the parameters of every node. Nothing in it is written to disk.
type Network struct {
	// Validated config, with Name filled in
	Config Config
	// All nodes in generation order
	Nodes    []node.Ref
	Genesis  Genesis
	Topology map[node.ID]Topology
	// Indexed by node index - 1
	Malachite []MalachiteParams
	Sequencer []SequencerParams
	// Timeouts handed to the sequencer, after the proposal timeout floor
	SequencerTimeouts Timeouts
	Latency           LatencyMatrix
}

// Generate validates [cfg] and derives the whole network.
// Identities are generated from [r] malachite nodes first, then sequencer
// nodes, each in index order; that order is also the genesis order.
func Generate(log *zap.Logger, cfg Config, r io.Reader) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Name = cfg.NetworkName()

	ids := cfg.NodeIDs()
	validators := NewValidatorSetBuilder()
	refs := make([]node.Ref, 0, len(ids))
	for _, id := range ids {
		log.Info("generating node keys", zap.String("node", id.Name()))
		identity, err := keys.Generate(r)
		if err != nil {
			return nil, fmt.Errorf("couldn't generate keys for %s: %w", id, err)
		}
		refs = append(refs, node.Ref{ID: id, Identity: identity})
		validators.AddValidator(NewValidator(identity))
	}

	topology, err := BuildTopology(ids)
	if err != nil {
		return nil, err
	}

	n := &Network{
		Config:            cfg,
		Nodes:             refs,
		Genesis:           validators.Genesis(),
		Topology:          topology,
		SequencerTimeouts: cfg.Timeouts,
		Latency: LatencyMatrix{
			Names:   node.Names(ids),
			Latency: cfg.Latency,
		},
	}

	for _, ref := range n.Nodes {
		if ref.Kind != node.Malachite {
			continue
		}
		n.Malachite = append(n.Malachite, ComputeMalachiteParams(ref.ID, topology[ref.ID], cfg.Timeouts))
	}

	if cfg.SequencerNodes == 0 {
		return n, nil
	}
	n.SequencerTimeouts = SequencerTimeouts(log, cfg.Timeouts)
	addrs := validators.Addresses()
	for _, ref := range n.Nodes {
		if ref.Kind != node.Sequencer {
			continue
		}
		var bootstrap *node.Ref
		if bootstrapID := topology[ref.ID].Bootstrap; bootstrapID != nil {
			b, ok := n.Node(*bootstrapID)
			if !ok {
				return nil, fmt.Errorf("%w: bootstrap peer %s of %s not found", ErrInvalidTopology, bootstrapID, ref.ID)
			}
			bootstrap = &b
		}
		params, err := ComputeSequencerParams(ref, addrs, n.SequencerTimeouts, bootstrap)
		if err != nil {
			return nil, err
		}
		n.Sequencer = append(n.Sequencer, params)
	}
	return n, nil
}

// Node returns the node with the given id.
func (n *Network) Node(id node.ID) (node.Ref, bool) {
	for _, ref := range n.Nodes {
		if ref.ID == id {
			return ref, true
		}
	}
	return node.Ref{}, false
}

// NodesOfKind returns the nodes of [kind] in index order.
func (n *Network) NodesOfKind(kind node.Kind) []node.Ref {
	var refs []node.Ref
	for _, ref := range n.Nodes {
		if ref.Kind == kind {
			refs = append(refs, ref)
		}
	}
	return refs
}
