// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keys generates validator key material and derives the two
// identifiers every node is known by: its chain address and its libp2p
// peer id.
package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	p2pcrypto "github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
)

const (
	// AddressLength is the number of keccak256 output bytes kept in an address.
	AddressLength = 31
	// SecretLength is the size of the signing secret (the Ed25519 seed).
	SecretLength = ed25519.SeedSize

	PrivKeyType = "tendermint/PrivKeyEd25519"
	PubKeyType  = "tendermint/PubKeyEd25519"
)

var (
	ErrEntropy       = errors.New("couldn't read from random source")
	ErrInvalidSecret = errors.New("invalid signing secret")
)

// Identity is the immutable key material of a single node.
type Identity struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
	// Chain address, see AddressFromPublicKey.
	Address string
	// Network-layer identity, see PeerIDFromPublicKey.
	PeerID peer.ID
}

// TypedKey is a base64 key value tagged with its algorithm.
type TypedKey struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// KeyFile is the private validator key document read by malachite nodes.
type KeyFile struct {
	PrivateKey TypedKey `json:"private_key"`
	PublicKey  TypedKey `json:"public_key"`
	Address    string   `json:"address"`
}

// Generate creates a new identity from a seed read from [r].
// [r] should be crypto/rand.Reader outside of tests.
func Generate(r io.Reader) (*Identity, error) {
	secret := make([]byte, SecretLength)
	if _, err := io.ReadFull(r, secret); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return FromSecret(secret)
}

// FromSecret rebuilds the identity whose signing secret is [secret].
func FromSecret(secret []byte) (*Identity, error) {
	if len(secret) != SecretLength {
		return nil, fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidSecret, SecretLength, len(secret))
	}
	privateKey := ed25519.NewKeyFromSeed(secret)
	publicKey, ok := privateKey.Public().(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("expected ed25519.PublicKey but got %T", privateKey.Public())
	}
	peerID, err := PeerIDFromPublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	return &Identity{
		PrivateKey: privateKey,
		PublicKey:  publicKey,
		Address:    AddressFromPublicKey(publicKey),
		PeerID:     peerID,
	}, nil
}

// AddressFromPublicKey returns "0x" followed by the hex encoding of the
// first [AddressLength] bytes of keccak256(pub).
func AddressFromPublicKey(pub ed25519.PublicKey) string {
	return hexutil.Encode(crypto.Keccak256(pub)[:AddressLength])
}

// PeerIDFromPublicKey returns the libp2p peer id of [pub].
// This is independent of the chain address: it hashes the protobuf encoded
// key, not the raw key bytes.
func PeerIDFromPublicKey(pub ed25519.PublicKey) (peer.ID, error) {
	p2pKey, err := p2pcrypto.UnmarshalEd25519PublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("couldn't parse ed25519 public key: %w", err)
	}
	id, err := peer.IDFromPublicKey(p2pKey)
	if err != nil {
		return "", fmt.Errorf("couldn't derive peer id: %w", err)
	}
	return id, nil
}

// Secret returns a copy of the 32 byte signing secret.
func (id *Identity) Secret() []byte {
	return append([]byte(nil), id.PrivateKey.Seed()...)
}

// SecretHex returns the signing secret as 0x-prefixed hex.
func (id *Identity) SecretHex() string {
	return hexutil.Encode(id.PrivateKey.Seed())
}

func (id *Identity) TypedPublicKey() TypedKey {
	return TypedKey{
		Type:  PubKeyType,
		Value: base64.StdEncoding.EncodeToString(id.PublicKey),
	}
}

// KeyFile returns the private key document for this identity.
func (id *Identity) KeyFile() KeyFile {
	return KeyFile{
		PrivateKey: TypedKey{
			Type:  PrivKeyType,
			Value: base64.StdEncoding.EncodeToString(id.PrivateKey.Seed()),
		},
		PublicKey: id.TypedPublicKey(),
		Address:   id.Address,
	}
}
