// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"encoding/json"

	"github.com/starknet-testnets/netgen/keys"
)

// Voting power every generated validator starts with
const DefaultVotingPower = 1

type Validator struct {
	Address     string        `json:"address"`
	PublicKey   keys.TypedKey `json:"public_key"`
	VotingPower uint64        `json:"voting_power"`
}

type ValidatorSet struct {
	Validators []Validator `json:"validators"`
}

// Genesis is the genesis document shared by every malachite node.
type Genesis struct {
	ValidatorSet ValidatorSet `json:"validator_set"`
}

// NewValidator returns the genesis entry of [id].
func NewValidator(id *keys.Identity) Validator {
	return Validator{
		Address:     id.Address,
		PublicKey:   id.TypedPublicKey(),
		VotingPower: DefaultVotingPower,
	}
}

// ValidatorSetBuilder accumulates validators in insertion order.
// It never reorders, deduplicates or filters entries.
type ValidatorSetBuilder struct {
	validators []Validator
}

func NewValidatorSetBuilder() *ValidatorSetBuilder {
	return &ValidatorSetBuilder{}
}

func (b *ValidatorSetBuilder) AddValidator(v Validator) {
	b.validators = append(b.validators, v)
}

func (b *ValidatorSetBuilder) Len() int {
	return len(b.validators)
}

// Snapshot returns a copy of the validators added so far.
func (b *ValidatorSetBuilder) Snapshot() []Validator {
	return append([]Validator{}, b.validators...)
}

// Addresses returns the validator addresses in insertion order.
func (b *ValidatorSetBuilder) Addresses() []string {
	addrs := make([]string, len(b.validators))
	for i, v := range b.validators {
		addrs[i] = v.Address
	}
	return addrs
}

func (b *ValidatorSetBuilder) Genesis() Genesis {
	return Genesis{
		ValidatorSet: ValidatorSet{
			Validators: b.Snapshot(),
		},
	}
}

// Marshal returns the genesis file contents.
// The output only depends on the validator list, so every node gets the same bytes.
func (g Genesis) Marshal() ([]byte, error) {
	return json.MarshalIndent(g, "", "    ")
}
