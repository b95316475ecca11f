// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ma "github.com/multiformats/go-multiaddr"
	"go.uber.org/zap"

	"github.com/starknet-testnets/netgen/network/node"
	"github.com/starknet-testnets/netgen/utils/constants"
)

const (
	// The sequencer rejects proposal timeouts of 1s or less.
	minSequencerProposeTimeout = time.Second
	sequencerProposeTimeout    = 1001 * time.Millisecond
)

var errMissingIdentity = errors.New("node has no identity")

// MalachiteParams are the inputs of a malachite node's config and scripts.
type MalachiteParams struct {
	ID      int
	Moniker string
	// Names of the persistent peers
	PersistentPeers []string
	// Duration strings with unit suffix, e.g. "500ms"
	TimeoutPropose   string
	TimeoutPrevote   string
	TimeoutPrecommit string
}

// SequencerParams are the inputs of a sequencer node's scripts.
type SequencerParams struct {
	ID int
	// 0x-prefixed hex of the signing secret
	ConsensusSecretKey string
	// This node's chain address
	ValidatorID   string
	NumValidators int
	// Comma separated addresses of all validators, in genesis order
	ValidatorIDs string
	// Multiaddr of the bootstrap peer; empty when there is none
	BootstrapPeer string
	// Fractional seconds
	ProposalTimeout  float64
	PrevoteTimeout   float64
	PrecommitTimeout float64
}

// DurationMillis renders [d] the way malachite expects it, e.g. "500ms".
func DurationMillis(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// DurationSeconds renders [d] the way the sequencer expects it, e.g. 0.5.
func DurationSeconds(d time.Duration) float64 {
	return d.Seconds()
}

// SequencerTimeouts returns [t] with the proposal timeout raised to 1001ms
// when it is not above 1s.
func SequencerTimeouts(log *zap.Logger, t Timeouts) Timeouts {
	if t.Propose <= minSequencerProposeTimeout {
		log.Warn("proposal timeout should be > 1s for the sequencer, overriding it",
			zap.Duration("configured", t.Propose),
			zap.Duration("using", sequencerProposeTimeout),
		)
		t.Propose = sequencerProposeTimeout
	}
	return t
}

// ComputeMalachiteParams derives the parameters of malachite node [id].
func ComputeMalachiteParams(id node.ID, topology Topology, timeouts Timeouts) MalachiteParams {
	return MalachiteParams{
		ID:               id.Index,
		Moniker:          id.Name(),
		PersistentPeers:  append([]string{}, topology.Peers...),
		TimeoutPropose:   DurationMillis(timeouts.Propose),
		TimeoutPrevote:   DurationMillis(timeouts.Prevote),
		TimeoutPrecommit: DurationMillis(timeouts.Precommit),
	}
}

// ComputeSequencerParams derives the parameters of sequencer [ref].
// [validatorAddrs] must hold every validator of the network and
// [timeouts] must already have gone through SequencerTimeouts.
// [bootstrap] may be nil.
func ComputeSequencerParams(
	ref node.Ref,
	validatorAddrs []string,
	timeouts Timeouts,
	bootstrap *node.Ref,
) (SequencerParams, error) {
	if ref.Identity == nil {
		return SequencerParams{}, fmt.Errorf("%w: %s", errMissingIdentity, ref.Name())
	}
	params := SequencerParams{
		ID:                 ref.Index,
		ConsensusSecretKey: ref.Identity.SecretHex(),
		ValidatorID:        ref.Identity.Address,
		NumValidators:      len(validatorAddrs),
		ValidatorIDs:       strings.Join(validatorAddrs, ","),
		ProposalTimeout:    DurationSeconds(timeouts.Propose),
		PrevoteTimeout:     DurationSeconds(timeouts.Prevote),
		PrecommitTimeout:   DurationSeconds(timeouts.Precommit),
	}
	if bootstrap != nil {
		addr, err := BootstrapAddr(*bootstrap)
		if err != nil {
			return SequencerParams{}, err
		}
		params.BootstrapPeer = addr.String()
	}
	return params, nil
}

// BootstrapAddr returns the multiaddr other nodes dial to reach [ref]:
// its host name, the p2p port and its peer id.
func BootstrapAddr(ref node.Ref) (ma.Multiaddr, error) {
	if ref.Identity == nil {
		return nil, fmt.Errorf("%w: %s", errMissingIdentity, ref.Name())
	}
	s := fmt.Sprintf("/dns/%s/tcp/%d/p2p/%s", ref.Name(), constants.P2PPort, ref.Identity.PeerID)
	addr, err := ma.NewMultiaddr(s)
	if err != nil {
		return nil, fmt.Errorf("couldn't build bootstrap address %q: %w", s, err)
	}
	return addr, nil
}

// PeerAddr returns the multiaddr of host [name] on [port], without peer id.
func PeerAddr(name string, port int) string {
	return fmt.Sprintf("/dns/%s/tcp/%d", name, port)
}
