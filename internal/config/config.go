// Package config resolves where the game is installed and where the mod is
// written. Values come from built-in defaults, an optional HCL file and
// command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/flauschfuchs/reduced-ui-animations/api"
	"github.com/flauschfuchs/reduced-ui-animations/internal/patch"
)

const (
	DefaultInstallRoot = "C:/Program Files (x86)/Steam/steamapps/common/AoE2DE"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"

	// FileName is looked up in DirName under the user's home directory.
	FileName = "modgen.hcl"
	DirName  = ".reduced-ui-animations"

	gameDataDir = "Games/Age of Empires 2 DE"
	localMods   = "mods/local"
)

var ErrNoDestination = errors.New("no output root: set output_root, mods_root or profile_id")

// Config is the fully resolved run configuration.
type Config struct {
	InstallRoot string `hcl:"install_root,optional"`
	OutputRoot  string `hcl:"output_root,optional"`
	ModsRoot    string `hcl:"mods_root,optional"`
	ProfileID   string `hcl:"profile_id,optional"`
	ModName     string `hcl:"mod_name,optional"`
	Backend     string `hcl:"backend,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	LogFormat   string `hcl:"log_format,optional"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InstallRoot: DefaultInstallRoot,
		ModName:     api.DefaultModName,
		Backend:     patch.DefaultName,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
	}
}

// DefaultPath returns the config file location under home.
func DefaultPath(home string) string {
	return filepath.Join(home, DirName, FileName)
}

// LoadFile decodes an HCL config file.
func LoadFile(path string) (Config, error) {
	var c Config
	if err := hclsimple.DecodeFile(path, nil, &c); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return c, nil
}

// Load returns the defaults overlaid with the file at path. When required is
// false a missing file is skipped.
func Load(path string, required bool) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	if _, err := os.Stat(path); err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return Config{}, fmt.Errorf("config file: %w", err)
	}
	f, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	return c.Merge(f), nil
}

// Merge returns c with every non-empty field of o applied.
func (c Config) Merge(o Config) Config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.InstallRoot, o.InstallRoot)
	set(&c.OutputRoot, o.OutputRoot)
	set(&c.ModsRoot, o.ModsRoot)
	set(&c.ProfileID, o.ProfileID)
	set(&c.ModName, o.ModName)
	set(&c.Backend, o.Backend)
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFormat, o.LogFormat)
	return c
}

// Resolve validates c and derives the output root. The mods root defaults to
// <home>/Games/Age of Empires 2 DE/<profile id>/mods/local and the output
// root to <mods root>/<mod name>.
func (c Config) Resolve(home string) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	if c.OutputRoot == "" {
		if c.ModsRoot == "" {
			if c.ProfileID == "" || home == "" {
				return Config{}, ErrNoDestination
			}
			c.ModsRoot = filepath.Join(home, gameDataDir, c.ProfileID, localMods)
		}
		c.OutputRoot = filepath.Join(c.ModsRoot, c.ModName)
	}
	return c, nil
}

// Validate checks the settings that do not depend on the destination.
func (c Config) Validate() error {
	if c.InstallRoot == "" {
		return errors.New("install root must not be empty")
	}
	if c.ModName == "" {
		return errors.New("mod name must not be empty")
	}
	if strings.Contains(c.ModName, "--") || strings.ContainsAny(c.ModName, `/\`) {
		return fmt.Errorf("mod name %q must not contain \"--\" or path separators", c.ModName)
	}
	if !slices.Contains(patch.Strategies(), c.Backend) {
		return fmt.Errorf("%w: %q (known: %v)", patch.ErrUnknownStrategy, c.Backend, patch.Strategies())
	}
	return nil
}
