package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_EnumerateFilesSkipsDirectories(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "wpfg/b.xaml", []byte("b"), 0o644))
	require.NoError(t, util.WriteFile(fs, "wpfg/a.xaml", []byte("a"), 0o644))
	require.NoError(t, util.WriteFile(fs, "wpfg/dialog/c.xaml", []byte("c"), 0o644))

	r := NewReader(fs, "wpfg", nil)
	files, err := r.EnumerateFiles()
	require.NoError(t, err)
	assert.Equal(t, []FileEntry{
		{Name: "a.xaml", Content: []byte("a")},
		{Name: "b.xaml", Content: []byte("b")},
	}, files)

	sub := r.Subdirectory("dialog")
	assert.Equal(t, filepath.Join("wpfg", "dialog"), sub.Path())
	files, err = sub.EnumerateFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "c.xaml", files[0].Name)
}

func TestReader_MissingDirectoryFails(t *testing.T) {
	fs := osfs.New(t.TempDir())
	_, err := NewReader(fs, "does-not-exist", nil).EnumerateFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestWriter_CreatesParents(t *testing.T) {
	root := t.TempDir()
	fs := osfs.New(root)

	w := NewWriter(fs, "mod", nil).Subdirectory("resources").Subdirectory("_common")
	require.NoError(t, w.CreateFile("x.xaml", []byte("<x/>")))

	got, err := os.ReadFile(filepath.Join(root, "mod", "resources", "_common", "x.xaml"))
	require.NoError(t, err)
	assert.Equal(t, "<x/>", string(got))
}

func TestClearDestination(t *testing.T) {
	t.Run("missing is fine", func(t *testing.T) {
		assert.NoError(t, ClearDestination(memfs.New(), "mod", nil))
	})

	t.Run("directory is removed", func(t *testing.T) {
		fs := memfs.New()
		require.NoError(t, util.WriteFile(fs, "mod/old/stale.xaml", []byte("x"), 0o644))
		require.NoError(t, ClearDestination(fs, "mod", nil))
		_, err := fs.Stat("mod")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("file is rejected", func(t *testing.T) {
		fs := memfs.New()
		require.NoError(t, util.WriteFile(fs, "mod", []byte("x"), 0o644))
		err := ClearDestination(fs, "mod", nil)
		assert.ErrorIs(t, err, ErrDestinationNotDirectory)

		_, statErr := fs.Stat("mod")
		assert.NoError(t, statErr, "a non-directory destination is left alone")
	})
}
