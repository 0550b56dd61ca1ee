package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"engined/pkg/types"
)

// LoadDir scans a directory for model artifacts (*.gguf, *.uqff) and builds
// a registry from filenames. ID is the full filename (including extension);
// Path is the absolute file path.
func LoadDir(dir string) ([]types.Artifact, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var arts []types.Artifact
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".gguf" && ext != ".uqff" {
			continue
		}
		var sizeMB int64
		if fi, err := e.Info(); err == nil {
			sizeMB = fi.Size() >> 20
		}
		arts = append(arts, types.Artifact{
			ID:     name,
			Name:   name,
			Path:   filepath.Join(abs, name),
			Format: strings.TrimPrefix(ext, "."),
			SizeMB: sizeMB,
		})
	}
	return arts, nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
