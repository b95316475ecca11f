package local

import (
	"crypto/rand"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/starknet-testnets/netgen/keys"
	"github.com/starknet-testnets/netgen/network"
	"github.com/starknet-testnets/netgen/utils"
)

func generate(t *testing.T, malachiteNodes, sequencerNodes int) *network.Network {
	n, err := network.Generate(zap.NewNop(), network.Config{
		MalachitePath:  t.TempDir(),
		SequencerPath:  t.TempDir(),
		MalachiteNodes: malachiteNodes,
		SequencerNodes: sequencerNodes,
		Timeouts:       network.DefaultTimeouts(),
	}, rand.Reader)
	require.NoError(t, err)
	return n
}

func TestWriteNetworkMixed(t *testing.T) {
	require := require.New(t)

	n := generate(t, 2, 3)
	root := t.TempDir()
	dir, err := WriteNetwork(zap.NewNop(), root, n)
	require.NoError(err)
	require.Equal(filepath.Join(root, "m2-s3"), dir)

	for _, name := range []string{composeFileName, latencyFileName} {
		require.FileExists(filepath.Join(dir, name))
	}
	require.DirExists(filepath.Join(dir, logsDirName))

	var genesis []byte
	for _, name := range []string{"malachite-node-1", "malachite-node-2"} {
		configDir := filepath.Join(dir, name, configSubDir)
		require.FileExists(filepath.Join(configDir, configFileName))

		b, err := os.ReadFile(filepath.Join(configDir, genesisFileName))
		require.NoError(err)
		if genesis == nil {
			genesis = b
		}
		// byte identical across nodes
		require.Equal(genesis, b)

		info, err := os.Stat(filepath.Join(configDir, privKeyFileName))
		require.NoError(err)
		require.Equal(utils.PrivateFilePerms, info.Mode().Perm())
	}

	var decoded network.Genesis
	require.NoError(json.Unmarshal(genesis, &decoded))
	require.Len(decoded.ValidatorSet.Validators, 5)
	require.Equal(n.Genesis, decoded)

	for _, name := range []string{"malachite-node-1", "sequencer-node-1", "sequencer-node-3"} {
		for _, script := range []string{startScriptName, resetScriptName, bashrcFileName} {
			info, err := os.Stat(filepath.Join(dir, name, script))
			require.NoError(err)
			require.Equal(utils.ExecFilePerms, info.Mode().Perm())
		}
	}

	f, err := os.Open(filepath.Join(dir, latencyFileName))
	require.NoError(err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(err)
	require.Len(rows, 6)
	for _, row := range rows {
		require.Len(row, 6)
	}
}

func TestWriteNetworkMalachiteOnly(t *testing.T) {
	require := require.New(t)

	n := generate(t, 3, 0)
	dir, err := WriteNetwork(zap.NewNop(), t.TempDir(), n)
	require.NoError(err)

	entries, err := os.ReadDir(dir)
	require.NoError(err)
	for _, e := range entries {
		require.NotRegexp(`^sequencer-node-`, e.Name())
	}

	var kf keys.KeyFile
	b, err := os.ReadFile(filepath.Join(dir, "malachite-node-2", configSubDir, privKeyFileName))
	require.NoError(err)
	require.NoError(json.Unmarshal(b, &kf))
	require.Equal(n.Nodes[1].Identity.Address, kf.Address)
	require.Equal(keys.PrivKeyType, kf.PrivateKey.Type)
}

func TestWriteNetworkSequencerSecret(t *testing.T) {
	require := require.New(t)

	n := generate(t, 1, 2)
	dir, err := WriteNetwork(zap.NewNop(), t.TempDir(), n)
	require.NoError(err)

	secretRe := regexp.MustCompile(`secret_key (0x[0-9a-f]+)`)
	for i := range n.Sequencer {
		script, err := os.ReadFile(filepath.Join(dir, n.Nodes[1+i].Name(), startScriptName))
		require.NoError(err)
		match := secretRe.FindSubmatch(script)
		require.Len(match, 2)

		secret, err := hexutil.Decode(string(match[1]))
		require.NoError(err)
		id, err := keys.FromSecret(secret)
		require.NoError(err)
		require.Equal(n.Genesis.ValidatorSet.Validators[1+i].Address, id.Address)
	}
}

func TestWriteNetworkFailure(t *testing.T) {
	n := generate(t, 1, 0)
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, nil, utils.DataFilePerms))

	_, err := WriteNetwork(zap.NewNop(), root, n)
	require.Error(t, err)
}

func TestCreateFileAndWrite(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "a", "b", "start.sh")
	require.NoError(createFileAndWrite(path, []byte("first"), utils.DataFilePerms))
	require.NoError(createFileAndWrite(path, []byte("2nd"), utils.ExecFilePerms))

	b, err := os.ReadFile(path)
	require.NoError(err)
	require.Equal("2nd", string(b))
	info, err := os.Stat(path)
	require.NoError(err)
	require.Equal(utils.ExecFilePerms, info.Mode().Perm())
}
