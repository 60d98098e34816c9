package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	swipeDoc = `<Page xmlns:local="l"><local:Age2SwipeEffect/></Page>`
	fadeDoc  = `<Page><Rectangle x:Name="Fade" Fill="X"/></Page>`
	plainDoc = `<Page><Canvas Width="1"/></Page>`
)

// fakeInstall lays out a minimal game installation under a temp dir.
func fakeInstall(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	wpfg := filepath.Join(root, "resources", "_common", "wpfg")
	for _, sub := range []string{"dialog", "panel", "screen", "tab"} {
		require.NoError(t, os.MkdirAll(filepath.Join(wpfg, sub), 0o755))
	}
	write := func(rel, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(wpfg, rel), []byte(content), 0o644))
	}
	write("menu.xaml", swipeDoc)
	write("plain.xaml", plainDoc)
	write(filepath.Join("tab", "fade.xaml"), fadeDoc)
	return root
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modgen.hcl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerate_WritesMod(t *testing.T) {
	install := fakeInstall(t)
	out := filepath.Join(t.TempDir(), "mods", "Reduced UI Animations")
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "stale.txt"), []byte("old"), 0o644))

	_, _, err := run(t, "generate", "--config", emptyConfig(t), "--install-root", install, "--output", out)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(out, "stale.txt"))
	assert.FileExists(t, filepath.Join(out, "info.json"))

	wpfg := filepath.Join(out, "resources", "_common", "wpfg")
	menu, err := os.ReadFile(filepath.Join(wpfg, "menu.xaml"))
	require.NoError(t, err)
	assert.Equal(t, `<Page xmlns:local="l"><!--The mod Reduced UI Animations replaced an element here: local:Age2SwipeEffect--></Page>`, string(menu))
	assert.FileExists(t, filepath.Join(wpfg, "tab", "fade.xaml"))
	assert.NoFileExists(t, filepath.Join(wpfg, "plain.xaml"))
	assert.NoDirExists(t, filepath.Join(wpfg, "panel"))
}

func TestGenerate_DryRunWritesNothing(t *testing.T) {
	install := fakeInstall(t)
	out := filepath.Join(t.TempDir(), "mod")

	stdout, _, err := run(t, "generate", "--config", emptyConfig(t), "--install-root", install, "--output", out, "--dry-run")
	require.NoError(t, err)

	assert.NoDirExists(t, out)
	assert.Contains(t, stdout, "info.json")
	assert.Contains(t, stdout, "resources/_common/wpfg/menu.xaml")
	assert.Contains(t, stdout, "resources/_common/wpfg/tab/fade.xaml")
	assert.NotContains(t, stdout, "plain.xaml")
	assert.Regexp(t, `digest [0-9a-f]{16}`, stdout)
}

func TestGenerate_ConfigFileSuppliesDestination(t *testing.T) {
	install := fakeInstall(t)
	mods := t.TempDir()
	cfg := filepath.Join(t.TempDir(), "modgen.hcl")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"install_root = \""+filepath.ToSlash(install)+"\"\n"+
			"mods_root = \""+filepath.ToSlash(mods)+"\"\n"+
			"mod_name = \"Quiet UI\"\n"+
			"backend = \"textual\"\n"), 0o644))

	_, _, err := run(t, "generate", "--config", cfg)
	require.NoError(t, err)

	menu, err := os.ReadFile(filepath.Join(mods, "Quiet UI", "resources", "_common", "wpfg", "menu.xaml"))
	require.NoError(t, err)
	assert.Equal(t, `<Page xmlns:local="l"><!--The mod Quiet UI commented out an element here: <local:Age2SwipeEffect/>--></Page>`, string(menu))
	// The textual backend has no rewrite rule.
	assert.NoFileExists(t, filepath.Join(mods, "Quiet UI", "resources", "_common", "wpfg", "tab", "fade.xaml"))
}

func TestGenerate_RejectsUnknownBackend(t *testing.T) {
	_, _, err := run(t, "generate", "--config", emptyConfig(t), "--install-root", fakeInstall(t),
		"--output", t.TempDir(), "--backend", "regex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "regex")
}

func TestGenerate_MissingConfigFile(t *testing.T) {
	_, _, err := run(t, "generate", "--config", filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
}

func TestCompare_ListsFadeFile(t *testing.T) {
	stdout, _, err := run(t, "compare", "--config", emptyConfig(t), "--install-root", fakeInstall(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "resources/_common/wpfg/tab/fade.xaml")
	assert.NotContains(t, stdout, "menu.xaml")
}
