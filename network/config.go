// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starknet-testnets/netgen/network/node"
	"github.com/starknet-testnets/netgen/utils"
	"github.com/starknet-testnets/netgen/utils/constants"
)

var (
	ErrInvalidTopology      = errors.New("invalid topology")
	ErrNoNodes              = errors.New("network has no nodes")
	ErrMissingMalachitePath = errors.New("malachite repository path is required")
	ErrMissingSequencerPath = errors.New("sequencer repository path is required")
	ErrInvalidDuration      = errors.New("invalid duration")
	ErrInvalidName          = errors.New("invalid network name")
)

// Timeouts are the consensus round timeouts shared by both node kinds.
type Timeouts struct {
	Propose   time.Duration `json:"propose"`
	Prevote   time.Duration `json:"prevote"`
	Precommit time.Duration `json:"precommit"`
}

func DefaultTimeouts() Timeouts {
	d := constants.DefaultTimeoutMs * time.Millisecond
	return Timeouts{
		Propose:   d,
		Prevote:   d,
		Precommit: d,
	}
}

// Config that defines a network when it is generated.
type Config struct {
	// Name for the network. Defaults to DefaultName() when empty.
	Name string `json:"name"`
	// Host paths of the node repositories mounted into the containers.
	MalachitePath string `json:"malachitePath"`
	SequencerPath string `json:"sequencerPath"`
	// May be 0, but not both
	MalachiteNodes int `json:"malachiteNodes"`
	SequencerNodes int `json:"sequencerNodes"`

	Timeouts Timeouts `json:"timeouts"`
	// Simulated latency between every pair of nodes
	Latency time.Duration `json:"latency"`
}

// DefaultName returns "m<malachite nodes>-s<sequencer nodes>".
func (c *Config) DefaultName() string {
	return fmt.Sprintf("m%d-s%d", c.MalachiteNodes, c.SequencerNodes)
}

// NetworkName returns the configured name, or the default one.
func (c *Config) NetworkName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.DefaultName()
}

// Validate checks the config before anything is generated.
func (c *Config) Validate() error {
	switch {
	case c.MalachiteNodes < 0 || c.SequencerNodes < 0:
		return fmt.Errorf(
			"%w: node counts must not be negative (malachite=%d, sequencer=%d)",
			ErrInvalidTopology, c.MalachiteNodes, c.SequencerNodes,
		)
	case c.MalachiteNodes == 0 && c.SequencerNodes == 0:
		return ErrNoNodes
	case strings.ContainsAny(c.Name, `/\`) || c.Name == "." || c.Name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, c.Name)
	}
	if c.MalachiteNodes > 0 {
		if c.MalachitePath == "" {
			return ErrMissingMalachitePath
		}
		if err := utils.CheckRepoPath(c.MalachitePath); err != nil {
			return fmt.Errorf("malachite repository: %w", err)
		}
	}
	if c.SequencerNodes > 0 {
		if c.SequencerPath == "" {
			return ErrMissingSequencerPath
		}
		if err := utils.CheckRepoPath(c.SequencerPath); err != nil {
			return fmt.Errorf("sequencer repository: %w", err)
		}
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"proposal timeout", c.Timeouts.Propose},
		{"prevote timeout", c.Timeouts.Prevote},
		{"precommit timeout", c.Timeouts.Precommit},
		{"latency", c.Latency},
	}
	for _, entry := range durations {
		if entry.d < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidDuration, entry.name, entry.d)
		}
	}
	return nil
}

// NodeIDs returns every node of the network in generation order:
// malachite nodes by increasing index, then sequencer nodes.
func (c *Config) NodeIDs() []node.ID {
	ids := make([]node.ID, 0, c.MalachiteNodes+c.SequencerNodes)
	for i := 1; i <= c.MalachiteNodes; i++ {
		ids = append(ids, node.ID{Kind: node.Malachite, Index: i})
	}
	for i := 1; i <= c.SequencerNodes; i++ {
		ids = append(ids, node.ID{Kind: node.Sequencer, Index: i})
	}
	return ids
}
