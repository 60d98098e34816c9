package patch

import (
	"fmt"
	"sort"
)

// Status records whether a patch pass changed anything.
// Once Changed, a pass never returns to Unchanged.
type Status int

const (
	Unchanged Status = iota
	Changed
)

func (s Status) String() string {
	if s == Changed {
		return "changed"
	}
	return "unchanged"
}

// Merge folds the status of a nested pass into s.
func (s Status) Merge(other Status) Status {
	if s == Changed || other == Changed {
		return Changed
	}
	return Unchanged
}

// Applied describes one rule firing on one element.
type Applied struct {
	Rule string
	Tag  string
	// Line is the 1-indexed line of the element when the backend knows it, 0 otherwise.
	Line int
}

// Result is the outcome of patching one document.
// When Status is Unchanged, Text is the input document.
type Result struct {
	Text    string
	Status  Status
	Applied []Applied
}

func (r *Result) record(a Applied) {
	r.Applied = append(r.Applied, a)
	r.Status = Changed
}

// Strategy abstracts over the structural and textual backends.
// Implementations must be deterministic: equal input yields equal output.
type Strategy interface {
	// Name identifies the backend in logs and configuration.
	Name() string
	// Patch applies the backend's rules to a decoded document.
	Patch(doc string) (*Result, error)
}

const (
	StructuralName = "structural"
	TextualName    = "textual"
	DefaultName    = StructuralName
)

var constructors = map[string]func(rules []Rule, modName string) (Strategy, error){
	StructuralName: func(rules []Rule, modName string) (Strategy, error) {
		return NewStructural(rules, modName)
	},
	TextualName: func(rules []Rule, modName string) (Strategy, error) {
		return NewTextual(rules, modName)
	},
}

// NewStrategy builds the backend registered under name.
func NewStrategy(name string, rules []Rule, modName string) (Strategy, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownStrategy, name, Strategies())
	}
	return ctor(rules, modName)
}

// Strategies lists the registered backend names.
func Strategies() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PatchFile decodes raw file content and runs s over it.
// It returns nil content when nothing changed.
func PatchFile(s Strategy, path string, raw []byte) ([]byte, *Result, error) {
	doc, err := Decode(raw)
	if err != nil {
		return nil, nil, &FileError{Path: path, Strategy: s.Name(), Err: err}
	}
	res, err := s.Patch(doc)
	if err != nil {
		return nil, nil, &FileError{Path: path, Strategy: s.Name(), Err: err}
	}
	if res.Status == Unchanged {
		return nil, res, nil
	}
	return []byte(res.Text), res, nil
}
