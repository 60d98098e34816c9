// Package modgen assembles the mod: it scans the game's wpfg asset
// directories, patches every XAML file and stages the changed files together
// with info.json in a virtual directory tree.
package modgen

import (
	"errors"
	"path"

	"github.com/flauschfuchs/reduced-ui-animations/internal/vfs"
)

// Layout names the asset directories that are scanned. Root is both the
// location inside the installation and inside the generated mod.
type Layout struct {
	Root           []string
	Subdirectories []string
}

// DefaultLayout covers the game's WPF UI markup.
var DefaultLayout = Layout{
	Root:           []string{"resources", "_common", "wpfg"},
	Subdirectories: []string{"dialog", "panel", "screen", "tab"},
}

var errEmptyLayout = errors.New("layout root must not be empty")

// scanDir is one directory of the layout, with its path relative to Root.
type scanDir struct {
	name string // "" for Root itself
	dir  vfs.ReadDirectory
}

func (l Layout) validate() error {
	if len(l.Root) == 0 {
		return errEmptyLayout
	}
	return nil
}

// directories resolves Root and each subdirectory under installation, Root first.
func (l Layout) directories(installation vfs.ReadDirectory) []scanDir {
	root := installation
	for _, seg := range l.Root {
		root = root.Subdirectory(seg)
	}
	dirs := []scanDir{{dir: root}}
	for _, name := range l.Subdirectories {
		dirs = append(dirs, scanDir{name: name, dir: root.Subdirectory(name)})
	}
	return dirs
}

// relPath is the slash path of a file inside the mod.
func (l Layout) relPath(sub, file string) string {
	return path.Join(path.Join(l.Root...), sub, file)
}
