// Package vfs implements the directory reading and writing collaborators on
// top of billy filesystems, so the same code runs against the real disk
// (osfs) and in memory (memfs).
package vfs

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/flauschfuchs/reduced-ui-animations/internal/logging"
)

// ErrDestinationNotDirectory is returned when the output root exists but is
// not a directory.
var ErrDestinationNotDirectory = errors.New("destination exists and is not a directory")

// FileEntry is a file read from a directory.
type FileEntry struct {
	Name    string
	Content []byte
}

// ReadDirectory enumerates files of one directory.
type ReadDirectory interface {
	// Subdirectory composes a child path without touching storage.
	Subdirectory(name string) ReadDirectory
	// EnumerateFiles returns the regular files directly inside the directory,
	// sorted by name. Subdirectories and other entries are skipped.
	EnumerateFiles() ([]FileEntry, error)
	Path() string
}

// WriteDirectory creates files inside one directory.
type WriteDirectory interface {
	Subdirectory(name string) WriteDirectory
	// CreateFile writes name, creating the directory and its parents first.
	CreateFile(name string, content []byte) error
	Path() string
}

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Reader is a ReadDirectory over a billy filesystem.
type Reader struct {
	fs     billy.Filesystem
	path   string
	logger *log.Logger
}

// NewReader returns a reader rooted at path inside fs.
func NewReader(fs billy.Filesystem, path string, logger *log.Logger) *Reader {
	return &Reader{fs: fs, path: path, logger: logging.OrDiscard(logger)}
}

func (r *Reader) Path() string { return r.path }

func (r *Reader) Subdirectory(name string) ReadDirectory {
	return &Reader{fs: r.fs, path: r.fs.Join(r.path, name), logger: r.logger}
}

func (r *Reader) EnumerateFiles() ([]FileEntry, error) {
	r.logger.Debug("Enumerating directory entries", "path", r.path)
	infos, err := r.fs.ReadDir(r.path)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", r.path, err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	entries := make([]FileEntry, 0, len(infos))
	for _, info := range infos {
		filePath := r.fs.Join(r.path, info.Name())
		if !info.Mode().IsRegular() {
			r.logger.Debug("Ignoring non-file directory entry", "path", filePath)
			continue
		}
		content, err := util.ReadFile(r.fs, filePath)
		if err != nil {
			return nil, fmt.Errorf("read file %s: %w", filePath, err)
		}
		r.logger.Debug("Read file", "name", info.Name(), "size", len(content))
		entries = append(entries, FileEntry{Name: info.Name(), Content: content})
	}
	return entries, nil
}

// Writer is a WriteDirectory over a billy filesystem.
type Writer struct {
	fs     billy.Filesystem
	path   string
	logger *log.Logger
}

// NewWriter returns a writer rooted at path inside fs.
func NewWriter(fs billy.Filesystem, path string, logger *log.Logger) *Writer {
	return &Writer{fs: fs, path: path, logger: logging.OrDiscard(logger)}
}

func (w *Writer) Path() string { return w.path }

func (w *Writer) Subdirectory(name string) WriteDirectory {
	return &Writer{fs: w.fs, path: w.fs.Join(w.path, name), logger: w.logger}
}

func (w *Writer) CreateFile(name string, content []byte) error {
	if err := w.fs.MkdirAll(w.path, dirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", w.path, err)
	}
	filePath := w.fs.Join(w.path, name)
	w.logger.Debug("Creating file", "path", filePath, "size", len(content))
	if err := util.WriteFile(w.fs, filePath, content, filePerm); err != nil {
		return fmt.Errorf("write file %s: %w", filePath, err)
	}
	return nil
}

// ClearDestination removes path from fs so it can be written from scratch.
// A missing path is not an error; a path that is not a directory is.
func ClearDestination(fs billy.Filesystem, path string, logger *log.Logger) error {
	logger = logging.OrDiscard(logger)
	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("Destination directory does not exist yet", "path", path)
			return nil
		}
		return fmt.Errorf("stat destination %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrDestinationNotDirectory, path)
	}
	logger.Info("Clearing destination directory", "path", path)
	if err := util.RemoveAll(fs, path); err != nil {
		return fmt.Errorf("clear destination %s: %w", path, err)
	}
	return nil
}
