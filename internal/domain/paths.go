package domain

import "path/filepath"

// Paths holds the output file locations under the root directory.
type Paths struct {
	RootDir         string
	AnniversaryPath string
}

// NewPaths creates a new Paths instance rooted at rootDir.
func NewPaths(rootDir string) *Paths {
	rootDir = filepath.Join(rootDir, "kinodays")
	return &Paths{
		RootDir:         rootDir,
		AnniversaryPath: filepath.Join(rootDir, "anniversaries.json"),
	}
}
