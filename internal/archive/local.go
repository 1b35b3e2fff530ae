package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider writes snapshots to the local filesystem under a base
// directory.
type LocalProvider struct {
	baseDir string
}

// NewLocalProvider validates the base directory and returns a filesystem
// backed provider. The directory is created when missing.
func NewLocalProvider(baseDir string) (*LocalProvider, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	info, err := os.Stat(baseDir)
	switch {
	case os.IsNotExist(err):
		if mkErr := os.MkdirAll(baseDir, 0o750); mkErr != nil {
			return nil, fmt.Errorf("create base directory: %w", mkErr)
		}
	case err != nil:
		return nil, fmt.Errorf("stat base directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("base directory path is not a directory")
	}
	return &LocalProvider{baseDir: baseDir}, nil
}

// Save writes data to a file below the base directory, creating intermediate
// directories as needed.
func (p *LocalProvider) Save(_ context.Context, objectName string, data []byte) error {
	cleaned := filepath.Clean(objectName)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return fmt.Errorf("object name %q escapes the base directory", objectName)
	}
	target := filepath.Join(p.baseDir, cleaned)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create object directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o640); err != nil {
		return fmt.Errorf("write object %s: %w", objectName, err)
	}
	return nil
}
