package utils

import "io/fs"

const (
	// Scripts and shell rc files
	ExecFilePerms    fs.FileMode = 0o755
	DataFilePerms    fs.FileMode = 0o644
	// Key material
	PrivateFilePerms fs.FileMode = 0o600
	DirPerms         fs.FileMode = 0o750
)
