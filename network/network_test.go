// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/starknet-testnets/netgen/keys"
	"github.com/starknet-testnets/netgen/network/node"
)

func TestGenerateValidatorSet(t *testing.T) {
	for _, counts := range [][2]int{{1, 0}, {0, 1}, {3, 0}, {0, 2}, {2, 3}, {4, 4}} {
		m, s := counts[0], counts[1]
		n, err := Generate(zap.NewNop(), validConfig(t, m, s), rand.Reader)
		require.NoError(t, err)

		validators := n.Genesis.ValidatorSet.Validators
		require.Len(t, validators, m+s)
		seen := map[string]struct{}{}
		for i, v := range validators {
			_, dup := seen[v.Address]
			require.False(t, dup)
			seen[v.Address] = struct{}{}
			// genesis order is generation order
			require.Equal(t, n.Nodes[i].Identity.Address, v.Address)
		}
		require.Len(t, n.Malachite, m)
		require.Len(t, n.Sequencer, s)
	}
}

func TestGenerateCanonicalOrder(t *testing.T) {
	n, err := Generate(zap.NewNop(), validConfig(t, 2, 2), rand.Reader)
	require.NoError(t, err)
	require.Equal(t, []string{
		"malachite-node-1", "malachite-node-2", "sequencer-node-1", "sequencer-node-2",
	}, n.Latency.Names)
	for i, ref := range n.Nodes {
		require.Equal(t, n.Latency.Names[i], ref.Name())
	}
	require.Len(t, n.NodesOfKind(node.Malachite), 2)
	require.Len(t, n.NodesOfKind(node.Sequencer), 2)
}

func TestGenerateMalachiteOnly(t *testing.T) {
	require := require.New(t)

	core, logs := observer.New(zapcore.WarnLevel)
	n, err := Generate(zap.New(core), validConfig(t, 3, 0), rand.Reader)
	require.NoError(err)

	require.Equal("m3-s0", n.Config.Name)
	require.Len(n.Genesis.ValidatorSet.Validators, 3)
	require.Empty(n.Sequencer)
	require.Len(n.Malachite, 3)
	for _, params := range n.Malachite {
		require.Len(params.PersistentPeers, 2)
		require.NotContains(params.PersistentPeers, params.Moniker)
		require.Equal("500ms", params.TimeoutPropose)
	}
	// no sequencer, nothing to adjust
	require.Zero(logs.Len())
	require.Equal(500*time.Millisecond, n.SequencerTimeouts.Propose)
}

func TestGenerateSequencerOnly(t *testing.T) {
	require := require.New(t)

	core, logs := observer.New(zapcore.WarnLevel)
	cfg := validConfig(t, 0, 2)
	cfg.Timeouts.Propose = 500 * time.Millisecond
	n, err := Generate(zap.New(core), cfg, rand.Reader)
	require.NoError(err)

	require.Equal(1, logs.Len())
	require.Equal(1001*time.Millisecond, n.SequencerTimeouts.Propose)
	require.Len(n.Genesis.ValidatorSet.Validators, 2)
	require.Empty(n.Malachite)

	seq1, ok := n.Node(node.ID{Kind: node.Sequencer, Index: 1})
	require.True(ok)
	seq2, ok := n.Node(node.ID{Kind: node.Sequencer, Index: 2})
	require.True(ok)

	require.Equal(1.001, n.Sequencer[0].ProposalTimeout)
	require.True(strings.HasSuffix(n.Sequencer[0].BootstrapPeer, "/p2p/"+seq2.Identity.PeerID.String()))
	require.True(strings.HasPrefix(n.Sequencer[0].BootstrapPeer, "/dns/sequencer-node-2/"))
	require.True(strings.HasSuffix(n.Sequencer[1].BootstrapPeer, "/p2p/"+seq1.Identity.PeerID.String()))
	require.True(strings.HasPrefix(n.Sequencer[1].BootstrapPeer, "/dns/sequencer-node-1/"))
}

func TestGenerateMixed(t *testing.T) {
	require := require.New(t)

	n, err := Generate(zap.NewNop(), validConfig(t, 2, 3), rand.Reader)
	require.NoError(err)

	allAddrs := make([]string, 0, len(n.Nodes))
	for _, v := range n.Genesis.ValidatorSet.Validators {
		allAddrs = append(allAddrs, v.Address)
	}
	for i, params := range n.Sequencer {
		require.Equal(i+1, params.ID)
		require.Equal(5, params.NumValidators)
		require.Equal(strings.Join(allAddrs, ","), params.ValidatorIDs)
		require.NotEmpty(params.BootstrapPeer)
	}
	// sequencer-node-1 wraps around to sequencer-node-3
	require.True(strings.HasPrefix(n.Sequencer[0].BootstrapPeer, "/dns/sequencer-node-3/"))
	for _, params := range n.Malachite {
		require.Len(params.PersistentPeers, 4)
		require.Equal("500ms", params.TimeoutPropose)
	}

	rows := n.Latency.Rows()
	require.Len(rows, 6)
	for _, row := range rows {
		require.Len(row, 6)
	}
	for _, row := range rows[1:] {
		for _, cell := range row[1:] {
			require.Equal("0", cell)
		}
	}
}

func TestGenerateLoneSequencer(t *testing.T) {
	n, err := Generate(zap.NewNop(), validConfig(t, 1, 1), rand.Reader)
	require.NoError(t, err)
	require.Empty(t, n.Sequencer[0].BootstrapPeer)
}

func TestGenerateSecretRoundTrip(t *testing.T) {
	require := require.New(t)

	n, err := Generate(zap.NewNop(), validConfig(t, 1, 3), rand.Reader)
	require.NoError(err)

	for i, params := range n.Sequencer {
		secret, err := hexutil.Decode(params.ConsensusSecretKey)
		require.NoError(err)
		id, err := keys.FromSecret(secret)
		require.NoError(err)
		require.Equal(params.ValidatorID, id.Address)
		// malachite-node-1 comes first in genesis
		require.Equal(n.Genesis.ValidatorSet.Validators[1+i].Address, id.Address)
		require.Equal(n.Genesis.ValidatorSet.Validators[1+i].PublicKey, id.TypedPublicKey())
	}
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := validConfig(t, -1, 2)
	_, err := Generate(zap.NewNop(), cfg, rand.Reader)
	require.ErrorIs(t, err, ErrInvalidTopology)

	cfg = validConfig(t, 0, 0)
	_, err = Generate(zap.NewNop(), cfg, rand.Reader)
	require.ErrorIs(t, err, ErrNoNodes)
}

func TestGenerateEntropyFailure(t *testing.T) {
	// enough for one identity only
	r := bytes.NewReader(make([]byte, keys.SecretLength))
	_, err := Generate(zap.NewNop(), validConfig(t, 2, 0), r)
	require.ErrorIs(t, err, keys.ErrEntropy)
}

func TestGenerateDeterministicSource(t *testing.T) {
	require := require.New(t)

	seed := make([]byte, 5*keys.SecretLength)
	_, err := rand.Read(seed)
	require.NoError(err)

	cfg := validConfig(t, 2, 3)
	a, err := Generate(zap.NewNop(), cfg, bytes.NewReader(seed))
	require.NoError(err)
	b, err := Generate(zap.NewNop(), cfg, bytes.NewReader(seed))
	require.NoError(err)
	require.Equal(a.Genesis, b.Genesis)
	require.Equal(a.Sequencer, b.Sequencer)
	require.Equal(a.Malachite, b.Malachite)
}
