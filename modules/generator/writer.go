package generator

import (
	"os"
	"path/filepath"
)

// writeFile replaces path with data. The data goes to a temp file in the same
// directory first, so a failed write never leaves a truncated playlist behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tempPath := f.Name()

	commit := func() error {
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		if err := os.Chmod(tempPath, 0o644); err != nil {
			return err
		}
		return os.Rename(tempPath, path)
	}

	if err := commit(); err != nil {
		_ = os.Remove(tempPath)
		return err
	}

	return nil
}
