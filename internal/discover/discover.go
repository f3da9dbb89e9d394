// Package discover locates annotation files on disk and reads them,
// transparently decompressing xz-packed transcriptions.
package discover

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// MaxFileSize caps how much of a single transcription file is read
// (64 MB). Real .eaf files are a few megabytes at most; anything larger
// is a data error or a decompression bomb.
const MaxFileSize = 64 << 20

// ErrFileTooLarge marks a file exceeding MaxFileSize.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// IsAnnotationFile reports whether path names a transcription file this
// package knows how to read.
func IsAnnotationFile(path string) bool {
	return strings.HasSuffix(path, ".eaf") || strings.HasSuffix(path, ".eaf.xz")
}

// FindAnnotationFiles walks dir recursively and returns the paths of all
// .eaf and .eaf.xz files, in lexical walk order.
func FindAnnotationFiles(dir string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsAnnotationFile(path) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	return matches, nil
}

// Open reads a transcription file, decompressing it when the name carries
// the .xz suffix. The read is capped at MaxFileSize.
func Open(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("opening xz stream %s: %w", path, err)
		}
		r = xzr
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, path)
	}
	return data, nil
}
