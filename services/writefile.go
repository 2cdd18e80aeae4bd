package services

import (
	"os"
	"path/filepath"
)

// publishFile writes data to a temporary file beside outPath and renames it
// into place. Exports are all-or-nothing: a failure anywhere leaves nothing
// at the target path, and readers only ever observe a complete file.
func publishFile(outPath string, data []byte) error {
	dir := filepath.Dir(outPath)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(outPath)+".*")
	if err != nil {
		return &FileWriteError{Path: outPath, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &FileWriteError{Path: outPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &FileWriteError{Path: outPath, Err: err}
	}
	// CreateTemp opens 0600; published artifacts should be world-readable.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &FileWriteError{Path: outPath, Err: err}
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		os.Remove(tmpName)
		return &FileWriteError{Path: outPath, Err: err}
	}
	return nil
}
