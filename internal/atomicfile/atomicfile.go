// Package atomicfile writes files through a temporary sibling followed
// by a rename, so a crashed or failed write never leaves a partial
// output at the destination path.
package atomicfile

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

const filePerm = 0o644

// WriteFile writes data to path atomically.
func WriteFile(path string, data []byte) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteReader streams r to path atomically.
func WriteReader(path string, r io.Reader) error {
	return writeAtomic(path, func(w io.Writer) error {
		_, err := io.Copy(w, r)
		return err
	})
}

func writeAtomic(path string, fill func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, filePerm)

	bw := bufio.NewWriter(tmp)
	if err := fill(bw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// Best effort: flush the directory entry on platforms that allow it.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}
