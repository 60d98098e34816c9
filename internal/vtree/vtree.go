// Package vtree stages an output directory tree in memory before any of it
// is written to disk.
//
// Entries are kept in a map and sorted by name whenever the tree is read,
// walked or emitted, so the result depends only on path names and never on
// insertion order.
package vtree

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/flauschfuchs/reduced-ui-animations/internal/vfs"
)

var (
	ErrDuplicateEntry = errors.New("entry already exists")
	ErrNotDirectory   = errors.New("entry is not a directory")
	ErrEmptyPath      = errors.New("empty path")
	ErrInvalidName    = errors.New("invalid entry name")
)

// Entry is either file content or a nested directory, never both.
type Entry struct {
	Content []byte
	Dir     *Directory
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool { return e.Dir != nil }

// Directory maps unique names to entries.
type Directory struct {
	entries map[string]*Entry
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{entries: make(map[string]*Entry)}
}

// Len returns the number of direct entries.
func (d *Directory) Len() int { return len(d.entries) }

// Names returns the direct entry names in sorted order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InsertFile stores content at the path given by segments, creating
// intermediate directories. The last segment is the file name.
func (d *Directory) InsertFile(segments []string, content []byte) error {
	if len(segments) == 0 {
		return ErrEmptyPath
	}
	parent, err := d.mkdirs(segments[:len(segments)-1])
	if err != nil {
		return err
	}
	return parent.put(segments, &Entry{Content: content})
}

// Merge nests sub under name.
func (d *Directory) Merge(name string, sub *Directory) error {
	if sub == nil {
		sub = New()
	}
	return d.put([]string{name}, &Entry{Dir: sub})
}

// MergeAt nests sub under the path given by segments, creating the
// intermediate directories.
func (d *Directory) MergeAt(segments []string, sub *Directory) error {
	if len(segments) == 0 {
		return ErrEmptyPath
	}
	parent, err := d.mkdirs(segments[:len(segments)-1])
	if err != nil {
		return err
	}
	return parent.Merge(segments[len(segments)-1], sub)
}

// Lookup returns the entry at segments.
func (d *Directory) Lookup(segments ...string) (*Entry, bool) {
	cur := &Entry{Dir: d}
	for _, name := range segments {
		if !cur.IsDir() {
			return nil, false
		}
		next, ok := cur.Dir.entries[name]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Walk calls fn for every file in the tree, depth first, with entries of
// each directory visited in name order.
func (d *Directory) Walk(fn func(segments []string, content []byte) error) error {
	return d.walk(nil, fn)
}

func (d *Directory) walk(prefix []string, fn func([]string, []byte) error) error {
	for _, name := range d.Names() {
		e := d.entries[name]
		segments := append(append([]string(nil), prefix...), name)
		if e.IsDir() {
			if err := e.Dir.walk(segments, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(segments, e.Content); err != nil {
			return err
		}
	}
	return nil
}

// Files returns the slash-separated paths of all files in walk order.
func (d *Directory) Files() []string {
	var files []string
	_ = d.Walk(func(segments []string, _ []byte) error {
		files = append(files, path.Join(segments...))
		return nil
	})
	return files
}

// Digest hashes every file path and content in walk order. Two trees with
// the same files have the same digest regardless of how they were built.
func (d *Directory) Digest() uint64 {
	h := xxhash.New()
	var size [8]byte
	_ = d.Walk(func(segments []string, content []byte) error {
		_, _ = h.WriteString(path.Join(segments...))
		binary.LittleEndian.PutUint64(size[:], uint64(len(content)))
		_, _ = h.Write(size[:])
		_, _ = h.Write(content)
		return nil
	})
	return h.Sum64()
}

// Emit writes the tree into w in name order. Empty directories produce
// nothing on disk since directories are only created for the files in them.
func (d *Directory) Emit(w vfs.WriteDirectory) error {
	for _, name := range d.Names() {
		e := d.entries[name]
		if e.IsDir() {
			if err := e.Dir.Emit(w.Subdirectory(name)); err != nil {
				return err
			}
			continue
		}
		if err := w.CreateFile(name, e.Content); err != nil {
			return err
		}
	}
	return nil
}

func (d *Directory) mkdirs(segments []string) (*Directory, error) {
	cur := d
	for i, name := range segments {
		if err := validName(name); err != nil {
			return nil, fmt.Errorf("%s: %w", strings.Join(segments[:i+1], "/"), err)
		}
		e, ok := cur.entries[name]
		if !ok {
			e = &Entry{Dir: New()}
			cur.entries[name] = e
		}
		if !e.IsDir() {
			return nil, fmt.Errorf("%s: %w", strings.Join(segments[:i+1], "/"), ErrNotDirectory)
		}
		cur = e.Dir
	}
	return cur, nil
}

// put adds e under the last of segments; the rest only serves error messages.
func (d *Directory) put(segments []string, e *Entry) error {
	name := segments[len(segments)-1]
	if err := validName(name); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(segments, "/"), err)
	}
	if _, exists := d.entries[name]; exists {
		return fmt.Errorf("%s: %w", strings.Join(segments, "/"), ErrDuplicateEntry)
	}
	d.entries[name] = e
	return nil
}

func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w %q", ErrInvalidName, name)
	}
	return nil
}
