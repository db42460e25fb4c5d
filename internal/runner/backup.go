package runner

import (
	"fmt"
	"io"
	"os"
)

// BackupSuffix is appended to a file's path to form its backup sibling.
const BackupSuffix = ".bak"

// Backup snapshots the file at path to a .bak sibling and returns the
// backup's path. An existing backup is overwritten: the .bak always holds
// the latest pre-change content, a single-generation undo rather than a
// history. The snapshot is taken before any destructive write so a recovery
// point exists before the original is touched.
func Backup(path string) (string, error) {
	bak := path + BackupSuffix
	if err := copyFile(path, bak); err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	return bak, nil
}

// copyFile copies src to dst, preserving the source's permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // Operates on operator-selected site files
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close() //nolint:errcheck // Write error takes precedence
		return err
	}
	return out.Close()
}
