// Package archive unpacks the zip files vendors drop alongside plain
// reports. Everything is extracted flat into the staging directory so the
// processors can glob for their inputs without knowing which archive a
// file arrived in.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vnm-bi/autoreport/utils"
)

// Summary reports what one staging pass unpacked.
type Summary struct {
	Archives  int
	Extracted int
	Skipped   int // directory entries and unsafe paths
}

// ExtractAll unpacks every *.zip directly under dir into dir itself and
// returns a summary. When removeArchives is set, each archive is deleted
// after a successful extraction. A corrupt archive fails the pass.
func ExtractAll(dir string, removeArchives bool, log *utils.Logger) (Summary, error) {
	archives, err := filepath.Glob(filepath.Join(dir, "*.zip"))
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, path := range archives {
		n, skipped, err := extractOne(path, dir, log)
		if err != nil {
			return sum, fmt.Errorf("extract %s: %w", filepath.Base(path), err)
		}
		sum.Archives++
		sum.Extracted += n
		sum.Skipped += skipped
		log.Info("extracted %d file(s) from %s", n, filepath.Base(path))
		if removeArchives {
			if err := os.Remove(path); err != nil {
				return sum, err
			}
		}
	}
	return sum, nil
}

func extractOne(path, dir string, log *utils.Logger) (extracted, skipped int, err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			skipped++
			continue
		}
		// Flatten nested directories and refuse names that would
		// escape the staging directory.
		name := filepath.Base(filepath.Clean(f.Name))
		if name == "." || name == ".." || strings.HasPrefix(name, "..") {
			log.Warn("skipping unsafe entry %q in %s", f.Name, filepath.Base(path))
			skipped++
			continue
		}
		if err := writeEntry(f, filepath.Join(dir, name)); err != nil {
			return extracted, skipped, err
		}
		extracted++
	}
	return extracted, skipped, nil
}

func writeEntry(f *zip.File, dst string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
