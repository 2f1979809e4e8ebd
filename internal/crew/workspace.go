package crew

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListWorkspace returns the workspace file listing as plain text context
// for the developer agent: every file under root, recursive, paths
// relative to root, sorted, one per line. Directories are omitted.
func ListWorkspace(root string) (string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to list workspace: %w", err)
	}

	sort.Strings(paths)
	return strings.Join(paths, "\n"), nil
}

// applyChanges writes each change under root, creating parent directories
// as needed, and returns the touched relative paths. In dry-run mode
// nothing is written; the planned paths are still returned.
func applyChanges(root string, changes []FileChange, dryRun bool) ([]string, error) {
	paths := make([]string, 0, len(changes))
	for _, change := range changes {
		paths = append(paths, change.Path)
		if dryRun {
			continue
		}

		full := filepath.Join(root, change.Path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return paths, fmt.Errorf("failed to create directory for %s: %w", change.Path, err)
		}
		if err := os.WriteFile(full, []byte(change.Content), 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", change.Path, err)
		}
	}
	return paths, nil
}
