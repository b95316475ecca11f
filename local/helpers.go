package local

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/starknet-testnets/netgen/utils"
)

func makeNetworkDir(log *zap.Logger, rootDir, networkName string) (string, error) {
	if rootDir == "" {
		log.Warn("no output root directory defined; will create the network directory in working directory")
	}
	// [networkDir] is where the compose file, the latency matrix and
	// every node's directory are written.
	networkDir := filepath.Join(rootDir, networkName)
	if _, err := os.Stat(networkDir); err == nil {
		log.Warn("network directory already exists, files will be overwritten", zap.String("dir", networkDir))
	}
	if err := os.MkdirAll(networkDir, utils.DirPerms); err != nil {
		return "", fmt.Errorf("error creating network dir %w", err)
	}
	return networkDir, nil
}

func getNodeDir(networkDir string, nodeName string) string {
	return filepath.Join(networkDir, nodeName)
}

// createFileAndWrite creates a file with the given path and
// writes the given contents. [perm] is applied even if the file
// already existed.
func createFileAndWrite(path string, contents []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), utils.DirPerms); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return err
	}
	if err := file.Chmod(perm); err != nil {
		return err
	}
	return file.Close()
}
