package modgen

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/flauschfuchs/reduced-ui-animations/api"
	"github.com/flauschfuchs/reduced-ui-animations/internal/logging"
	"github.com/flauschfuchs/reduced-ui-animations/internal/patch"
	"github.com/flauschfuchs/reduced-ui-animations/internal/vfs"
	"github.com/flauschfuchs/reduced-ui-animations/internal/vtree"
)

// Generator builds the mod tree from a game installation.
type Generator struct {
	Strategy patch.Strategy
	Layout   Layout
	Info     api.ModInfo
	Logger   *log.Logger
}

// NewGenerator returns a generator with the default layout and metadata for modName.
func NewGenerator(strategy patch.Strategy, modName string, logger *log.Logger) *Generator {
	return &Generator{
		Strategy: strategy,
		Layout:   DefaultLayout,
		Info:     api.DefaultModInfo(modName),
		Logger:   logger,
	}
}

// Report summarizes one generation run.
type Report struct {
	Scanned int
	Changed int
	// Rules counts how often each rule fired.
	Rules map[string]int
}

// RuleNames returns the names of the rules that fired, sorted.
func (r *Report) RuleNames() []string {
	names := make([]string, 0, len(r.Rules))
	for name := range r.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate scans every layout directory, patches each file and returns a
// tree holding info.json plus the files that changed. Unchanged files are
// left out. Any read, decode or markup error aborts the whole run.
func (g *Generator) Generate(installation vfs.ReadDirectory) (*vtree.Directory, *Report, error) {
	if err := g.Layout.validate(); err != nil {
		return nil, nil, err
	}
	logger := logging.OrDiscard(g.Logger).With("strategy", g.Strategy.Name())

	tree := vtree.New()
	logger.Info("Creating metadata file", "name", InfoFileName)
	if err := tree.InsertFile([]string{InfoFileName}, MarshalInfo(g.Info)); err != nil {
		return nil, nil, err
	}

	report := &Report{Rules: make(map[string]int)}
	assets := vtree.New()
	for _, sd := range g.Layout.directories(installation) {
		dirLogger := logger
		if sd.name != "" {
			dirLogger = logger.With("subdirectory", sd.name)
		}
		patched, err := g.patchDirectory(sd, dirLogger, report)
		if err != nil {
			return nil, nil, err
		}
		if sd.name == "" {
			assets = patched
			continue
		}
		if err := assets.Merge(sd.name, patched); err != nil {
			return nil, nil, fmt.Errorf("stage %s: %w", sd.dir.Path(), err)
		}
	}
	if err := tree.MergeAt(g.Layout.Root, assets); err != nil {
		return nil, nil, err
	}

	logger.Info("Mod generated", "scanned", report.Scanned, "changed", report.Changed,
		"digest", fmt.Sprintf("%016x", tree.Digest()))
	return tree, report, nil
}

func (g *Generator) patchDirectory(sd scanDir, logger *log.Logger, report *Report) (*vtree.Directory, error) {
	files, err := sd.dir.EnumerateFiles()
	if err != nil {
		return nil, err
	}

	out := vtree.New()
	for _, f := range files {
		report.Scanned++
		content, res, err := patch.PatchFile(g.Strategy, g.Layout.relPath(sd.name, f.Name), f.Content)
		if err != nil {
			return nil, err
		}
		if content == nil {
			logger.Info("XAML file needs no changes", "file", f.Name)
			continue
		}
		for _, a := range res.Applied {
			report.Rules[a.Rule]++
			logger.Info("Applied rule", "file", f.Name, "rule", a.Rule, "tag", a.Tag)
		}
		logger.Info("XAML file will be replaced", "file", f.Name)
		if err := out.InsertFile([]string{f.Name}, content); err != nil {
			return nil, err
		}
		report.Changed++
	}
	return out, nil
}
