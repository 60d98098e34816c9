package modgen

import (
	"fmt"

	"github.com/charmbracelet/log"
	billy "github.com/go-git/go-billy/v5"

	"github.com/flauschfuchs/reduced-ui-animations/internal/logging"
	"github.com/flauschfuchs/reduced-ui-animations/internal/vfs"
	"github.com/flauschfuchs/reduced-ui-animations/internal/vtree"
)

// Publish replaces dest inside fs with the contents of tree.
// Clearing and writing are not atomic: a failure part way leaves a
// partially written destination behind.
func Publish(tree *vtree.Directory, fs billy.Filesystem, dest string, logger *log.Logger) error {
	logger = logging.OrDiscard(logger)
	if err := vfs.ClearDestination(fs, dest, logger); err != nil {
		return err
	}
	logger.Info("Writing the mod to the destination directory", "path", dest, "files", len(tree.Files()))
	if err := tree.Emit(vfs.NewWriter(fs, dest, logger)); err != nil {
		return fmt.Errorf("write mod: %w", err)
	}
	return nil
}
