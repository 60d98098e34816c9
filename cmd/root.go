package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/flauschfuchs/reduced-ui-animations/internal/config"
	"github.com/flauschfuchs/reduced-ui-animations/internal/logging"
)

// globalFlags are shared by all subcommands.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "modgen",
		Short: "Generate the Reduced UI Animations mod from an Age of Empires II DE installation",
		Long: `modgen scans the game's WPF UI markup, removes the blur and swipe
effects, shrinks the fade rectangle and writes only the changed files plus
info.json into a local mod directory.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to an HCL config file (default ~/"+config.DirName+"/"+config.FileName+")")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format (text, json, logfmt)")

	root.AddCommand(newGenerateCmd(g), newCompareCmd(g))
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges defaults, the config file and flag overrides. The
// returned config is validated but its output root is not resolved yet.
func loadConfig(cmd *cobra.Command, g *globalFlags, overrides config.Config) (config.Config, string, error) {
	// Without a home directory only explicit paths work.
	home, _ := os.UserHomeDir()

	path := g.configPath
	required := cmd.Flags().Changed("config")
	if path == "" && home != "" {
		path = config.DefaultPath(home)
	}
	c, err := config.Load(path, required)
	if err != nil {
		return config.Config{}, "", err
	}
	overrides.LogLevel = g.logLevel
	overrides.LogFormat = g.logFormat
	c = c.Merge(overrides)
	if err := c.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return c, home, nil
}

func newLogger(cmd *cobra.Command, c config.Config) (*log.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), c.LogLevel, c.LogFormat)
}
