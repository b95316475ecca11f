package local

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/starknet-testnets/netgen/network"
	"github.com/starknet-testnets/netgen/network/node"
)

var (
	ErrNoGenesis          = errors.New("no genesis file found")
	ErrGenesisMismatch    = errors.New("genesis files differ")
	ErrDuplicateValidator = errors.New("duplicate validator address")
)

// VerifyGenesis checks that every malachite node under [networkDir] has a
// byte identical genesis file with distinct validator addresses, and
// returns that genesis.
func VerifyGenesis(networkDir string) (*network.Genesis, error) {
	pattern := filepath.Join(networkDir, node.Malachite.String()+"-node-*", configSubDir, genesisFileName)
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoGenesis, networkDir)
	}

	first, err := os.ReadFile(paths[0])
	if err != nil {
		return nil, fmt.Errorf("couldn't read %q: %w", paths[0], err)
	}
	for _, path := range paths[1:] {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("couldn't read %q: %w", path, err)
		}
		if !bytes.Equal(first, b) {
			return nil, fmt.Errorf("%w: %q and %q", ErrGenesisMismatch, paths[0], path)
		}
	}

	var genesis network.Genesis
	if err := json.Unmarshal(first, &genesis); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal genesis %q: %w", paths[0], err)
	}
	seen := make(map[string]struct{}, len(genesis.ValidatorSet.Validators))
	for _, v := range genesis.ValidatorSet.Validators {
		if _, ok := seen[v.Address]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateValidator, v.Address)
		}
		seen[v.Address] = struct{}{}
	}
	return &genesis, nil
}
