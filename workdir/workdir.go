// Package workdir manages the per-run staging directory. Each run stages
// copies of the day's report files into a scratch directory, works only on
// the copies, and removes the directory when done, so the source of the
// files is never modified and a failed run leaves no partial state behind.
package workdir

import (
	"io"
	"os"
	"path/filepath"
)

// FileSource stages the day's report files into a destination directory
// and reports how many it delivered. The pipeline only ever sees staged
// copies, so where the files come from (a drop folder today, a mailbox
// fetcher upstream) stays behind this interface.
type FileSource interface {
	Fetch(dstDir string) (int, error)
}

// DirSource stages files from a local drop directory.
type DirSource struct {
	Dir string
}

// Fetch copies every regular file directly under the drop directory into
// dstDir. Subdirectories are ignored; the files arrive flat.
func (s DirSource) Fetch(dstDir string) (int, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		src := filepath.Join(s.Dir, e.Name())
		dst := filepath.Join(dstDir, e.Name())
		if err := copyFile(src, dst); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Dir is an acquired staging directory.
type Dir struct {
	Path string
}

// Acquire creates the staging directory at path, clearing any leftovers
// from a previous crashed run.
func Acquire(path string) (*Dir, error) {
	if err := os.RemoveAll(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return &Dir{Path: path}, nil
}

// Release removes the staging directory and everything in it.
func (d *Dir) Release() error {
	return os.RemoveAll(d.Path)
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
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
