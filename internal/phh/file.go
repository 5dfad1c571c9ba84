package phh

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile encodes h to <dir>/<hand id>.phh and returns the path. The file
// appears atomically: readers see either nothing or the complete hand.
func WriteFile(dir string, h *HandHistory) (string, error) {
	data, err := EncodeToBytes(h)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("phh: create history dir: %w", err)
	}

	path := filepath.Join(dir, h.HandID+".phh")
	if err := writeAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("phh: %w", err)
	}
	return path, nil
}

// writeAtomic writes to a temp file in the same directory and renames it into place.
func writeAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true
	return nil
}
