package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/flauschfuchs/reduced-ui-animations/internal/config"
	"github.com/flauschfuchs/reduced-ui-animations/internal/modgen"
	"github.com/flauschfuchs/reduced-ui-animations/internal/patch"
	"github.com/flauschfuchs/reduced-ui-animations/internal/vfs"
	"github.com/flauschfuchs/reduced-ui-animations/internal/vtree"
)

func newGenerateCmd(g *globalFlags) *cobra.Command {
	var (
		overrides config.Config
		dryRun    bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Patch the game's XAML files and write the mod",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, home, err := loadConfig(cmd, g, overrides)
			if err != nil {
				return err
			}
			if !dryRun {
				if c, err = c.Resolve(home); err != nil {
					return err
				}
			}
			logger, err := newLogger(cmd, c)
			if err != nil {
				return err
			}

			strategy, err := patch.NewStrategy(c.Backend, patch.DefaultRules(), c.ModName)
			if err != nil {
				return err
			}

			logger.Info("Age of Empires II DE installation", "path", c.InstallRoot)
			installation := vfs.NewReader(osfs.New(c.InstallRoot), "", logger)
			tree, _, err := modgen.NewGenerator(strategy, c.ModName, logger).Generate(installation)
			if err != nil {
				return err
			}

			if dryRun {
				return printTree(cmd, tree)
			}

			logger.Info("Generating mod", "path", c.OutputRoot)
			parent := osfs.New(filepath.Dir(c.OutputRoot))
			return modgen.Publish(tree, parent, filepath.Base(c.OutputRoot), logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&overrides.InstallRoot, "install-root", "", "Game installation directory (default "+config.DefaultInstallRoot+")")
	f.StringVarP(&overrides.OutputRoot, "output", "o", "", "Mod directory to (re)create")
	f.StringVar(&overrides.ModsRoot, "mods-root", "", "Local mods directory; the mod is written to <mods-root>/<mod-name>")
	f.StringVar(&overrides.ProfileID, "profile-id", "", "Steam profile id used to locate the local mods directory")
	f.StringVar(&overrides.ModName, "mod-name", "", "Mod name, used as title and directory name")
	f.StringVar(&overrides.Backend, "backend", "", fmt.Sprintf("Patch backend %v", patch.Strategies()))
	f.BoolVar(&dryRun, "dry-run", false, "Print the files that would be written instead of writing them")
	return cmd
}

func printTree(cmd *cobra.Command, tree *vtree.Directory) error {
	out := cmd.OutOrStdout()
	err := tree.Walk(func(segments []string, content []byte) error {
		_, err := fmt.Fprintf(out, "%8d  %s\n", len(content), filepath.ToSlash(filepath.Join(segments...)))
		return err
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "digest %016x\n", tree.Digest())
	return err
}
