package scaffold

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// skipDirs are dependency and tool-owned directories excluded from
// backups; they are regenerable and can dwarf the rest of the tree.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
}

// Backup copies the target directory to a timestamped sibling and returns
// the backup path. It must run before the first destructive write, so a
// bad import can always be recovered by hand from the copy.
func (t Target) Backup() (string, error) {
	src := filepath.Clean(t.Dir)
	dst := fmt.Sprintf("%s-backup-%s", src, time.Now().Format("20060102-150405"))

	if err := copyTree(src, dst); err != nil {
		return "", fmt.Errorf("backup to %q failed: %w", dst, err)
	}
	return dst, nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return os.MkdirAll(filepath.Join(dst, rel), 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, filepath.Join(dst, rel))
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
