// Package local writes a generated network to the local filesystem.
package local

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/starknet-testnets/netgen/network"
	"github.com/starknet-testnets/netgen/network/node"
	"github.com/starknet-testnets/netgen/render"
	"github.com/starknet-testnets/netgen/utils"
)

const (
	composeFileName = "docker-compose.yml"
	latencyFileName = "latencies.csv"
	logsDirName     = "logs"
	configSubDir    = "config"
	configFileName  = "config.toml"
	genesisFileName = "genesis.json"
	privKeyFileName = "priv_validator_key.json"
	startScriptName = "start.sh"
	resetScriptName = "reset.sh"
	bashrcFileName  = ".bashrc"
	jsonIndent      = "    "
)

type file struct {
	path     string
	contents []byte
	perm     fs.FileMode
}

// WriteNetwork writes every artifact of [n] under [rootDir]/<network name>
// and returns that directory.
// Files are written one by one; if a write fails, the files already
// written are left in place.
func WriteNetwork(log *zap.Logger, rootDir string, n *network.Network) (string, error) {
	name := n.Config.NetworkName()
	networkDir, err := makeNetworkDir(log, rootDir, name)
	if err != nil {
		return "", err
	}
	log.Info("writing network configuration", zap.String("dir", networkDir))

	compose, err := render.Compose(render.ComposeParams{
		NetworkName:    name,
		MalachitePath:  n.Config.MalachitePath,
		SequencerPath:  n.Config.SequencerPath,
		MalachiteCount: n.Config.MalachiteNodes,
		SequencerCount: n.Config.SequencerNodes,
	})
	if err != nil {
		return "", err
	}
	if err := writeFiles(file{
		path:     filepath.Join(networkDir, composeFileName),
		contents: compose,
		perm:     utils.DataFilePerms,
	}); err != nil {
		return "", err
	}

	// marshalled once so every node gets the same bytes
	genesis, err := n.Genesis.Marshal()
	if err != nil {
		return "", fmt.Errorf("couldn't marshal genesis: %w", err)
	}
	for _, ref := range n.NodesOfKind(node.Malachite) {
		files, err := malachiteFiles(networkDir, name, ref, n.Malachite[ref.Index-1], genesis)
		if err != nil {
			return "", err
		}
		log.Info("writing node files", zap.String("node", ref.Name()))
		if err := writeFiles(files...); err != nil {
			return "", err
		}
	}
	for _, params := range n.Sequencer {
		files, err := sequencerFiles(networkDir, name, params)
		if err != nil {
			return "", err
		}
		log.Info("writing node files", zap.String("node", node.Name(node.Sequencer, params.ID)))
		if err := writeFiles(files...); err != nil {
			return "", err
		}
	}

	var latencies bytes.Buffer
	if err := n.Latency.WriteCSV(&latencies); err != nil {
		return "", fmt.Errorf("couldn't encode latency matrix: %w", err)
	}
	if err := writeFiles(file{
		path:     filepath.Join(networkDir, latencyFileName),
		contents: latencies.Bytes(),
		perm:     utils.DataFilePerms,
	}); err != nil {
		return "", err
	}

	logsDir := filepath.Join(networkDir, logsDirName)
	if err := os.MkdirAll(logsDir, utils.DirPerms); err != nil {
		return "", fmt.Errorf("couldn't create logs dir %q: %w", logsDir, err)
	}
	return networkDir, nil
}

func malachiteFiles(
	networkDir string,
	networkName string,
	ref node.Ref,
	params network.MalachiteParams,
	genesis []byte,
) ([]file, error) {
	nodeDir := getNodeDir(networkDir, ref.Name())
	configDir := filepath.Join(nodeDir, configSubDir)

	config, err := render.MalachiteConfig(params)
	if err != nil {
		return nil, err
	}
	keyFile, err := json.MarshalIndent(ref.Identity.KeyFile(), "", jsonIndent)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal key file of %s: %w", ref.Name(), err)
	}
	start, err := render.MalachiteStart(networkName, ref.Index)
	if err != nil {
		return nil, err
	}
	reset, err := render.MalachiteReset(networkName, ref.Index)
	if err != nil {
		return nil, err
	}
	bashrc, err := render.Bashrc(networkName, node.Malachite, ref.Index)
	if err != nil {
		return nil, err
	}
	return []file{
		{path: filepath.Join(configDir, configFileName), contents: config, perm: utils.DataFilePerms},
		{path: filepath.Join(configDir, genesisFileName), contents: genesis, perm: utils.DataFilePerms},
		{path: filepath.Join(configDir, privKeyFileName), contents: keyFile, perm: utils.PrivateFilePerms},
		{path: filepath.Join(nodeDir, startScriptName), contents: start, perm: utils.ExecFilePerms},
		{path: filepath.Join(nodeDir, resetScriptName), contents: reset, perm: utils.ExecFilePerms},
		{path: filepath.Join(nodeDir, bashrcFileName), contents: bashrc, perm: utils.ExecFilePerms},
	}, nil
}

func sequencerFiles(networkDir string, networkName string, params network.SequencerParams) ([]file, error) {
	nodeDir := getNodeDir(networkDir, node.Name(node.Sequencer, params.ID))

	start, err := render.SequencerStart(networkName, params)
	if err != nil {
		return nil, err
	}
	reset, err := render.SequencerReset(networkName, params.ID)
	if err != nil {
		return nil, err
	}
	bashrc, err := render.Bashrc(networkName, node.Sequencer, params.ID)
	if err != nil {
		return nil, err
	}
	return []file{
		{path: filepath.Join(nodeDir, startScriptName), contents: start, perm: utils.ExecFilePerms},
		{path: filepath.Join(nodeDir, resetScriptName), contents: reset, perm: utils.ExecFilePerms},
		{path: filepath.Join(nodeDir, bashrcFileName), contents: bashrc, perm: utils.ExecFilePerms},
	}, nil
}

func writeFiles(files ...file) error {
	for _, f := range files {
		if err := createFileAndWrite(f.path, f.contents, f.perm); err != nil {
			return fmt.Errorf("couldn't write file at %q: %w", f.path, err)
		}
	}
	return nil
}
