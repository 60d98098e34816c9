package cmd

import (
	"fmt"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/flauschfuchs/reduced-ui-animations/internal/config"
	"github.com/flauschfuchs/reduced-ui-animations/internal/modgen"
	"github.com/flauschfuchs/reduced-ui-animations/internal/patch"
	"github.com/flauschfuchs/reduced-ui-animations/internal/vfs"
)

func newCompareCmd(g *globalFlags) *cobra.Command {
	var overrides config.Config
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run both patch backends and list the files they disagree on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := loadConfig(cmd, g, overrides)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, c)
			if err != nil {
				return err
			}

			structural, err := patch.NewStrategy(patch.StructuralName, patch.DefaultRules(), c.ModName)
			if err != nil {
				return err
			}
			textual, err := patch.NewStrategy(patch.TextualName, patch.DefaultRules(), c.ModName)
			if err != nil {
				return err
			}

			installation := vfs.NewReader(osfs.New(c.InstallRoot), "", logger)
			diffs, err := modgen.Compare(installation, modgen.DefaultLayout, structural, textual)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, d := range diffs {
				fmt.Fprintf(out, "%s: %s=%s %v, %s=%s %v\n", d.Path,
					structural.Name(), d.Status[0], d.Rules[0],
					textual.Name(), d.Status[1], d.Rules[1])
			}
			logger.Info("Comparison finished", "disagreements", len(diffs))
			return nil
		},
	}
	cmd.Flags().StringVar(&overrides.InstallRoot, "install-root", "", "Game installation directory")
	cmd.Flags().StringVar(&overrides.ModName, "mod-name", "", "Mod name used in placeholder comments")
	return cmd
}
