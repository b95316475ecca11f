package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	ErrEmptyRepoPath = errors.New("repository path is not defined")
	ErrNotExists     = errors.New("repository path does not exist")
	ErrNotDir        = errors.New("repository path is not a directory")
)

// CheckRepoPath checks that [path] names an existing directory.
func CheckRepoPath(path string) error {
	if path == "" {
		return ErrEmptyRepoPath
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotExists, path)
		}
		return fmt.Errorf("failed to stat repository %q (%w)", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %q", ErrNotDir, path)
	}
	return nil
}
