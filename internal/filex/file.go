package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the parent directory of path when it does not
// exist yet, so that opening a file at path cannot fail on a missing
// directory. A path without a directory component is left alone.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
