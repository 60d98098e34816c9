package modgen

import (
	"slices"

	"github.com/flauschfuchs/reduced-ui-animations/internal/patch"
	"github.com/flauschfuchs/reduced-ui-animations/internal/vfs"
)

// Disagreement is a file on which two strategies reached different results.
type Disagreement struct {
	Path   string
	Status [2]patch.Status
	Rules  [2][]string
}

// Compare runs both strategies over every file of the layout and returns
// the files whose status or fired rules differ. Either strategy failing on
// a file aborts the comparison.
func Compare(installation vfs.ReadDirectory, layout Layout, a, b patch.Strategy) ([]Disagreement, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}
	var out []Disagreement
	for _, sd := range layout.directories(installation) {
		files, err := sd.dir.EnumerateFiles()
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			p := layout.relPath(sd.name, f.Name)
			_, ra, err := patch.PatchFile(a, p, f.Content)
			if err != nil {
				return nil, err
			}
			_, rb, err := patch.PatchFile(b, p, f.Content)
			if err != nil {
				return nil, err
			}
			d := Disagreement{
				Path:   p,
				Status: [2]patch.Status{ra.Status, rb.Status},
				Rules:  [2][]string{ruleNames(ra), ruleNames(rb)},
			}
			if d.Status[0] != d.Status[1] || !slices.Equal(d.Rules[0], d.Rules[1]) {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func ruleNames(res *patch.Result) []string {
	names := make([]string, 0, len(res.Applied))
	for _, a := range res.Applied {
		names = append(names, a.Rule)
	}
	return names
}
