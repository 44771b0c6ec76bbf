// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audmix/mixer"
)

// loadState applies the token stored at path. A missing file is not an
// error.
func loadState(m *mixer.Mixer, path string) (bool, error) {
	if path == "" {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read volume state: %w", err)
	}

	if err := m.LoadVolumeRestoreData(strings.TrimSpace(string(data))); err != nil {
		return false, fmt.Errorf("load volume state from %s: %w", path, err)
	}
	return true, nil
}

func saveState(m *mixer.Mixer, path string) error {
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save volume state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(m.VolumeRestoreData()+"\n"), 0o644); err != nil {
		return fmt.Errorf("save volume state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save volume state: %w", err)
	}
	return nil
}
