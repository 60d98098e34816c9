package patch

import (
	"strings"
)

// Textual comments out removal targets without parsing the document, which
// keeps all unrelated formatting byte-identical. A target spans from
// "<tag" to the nearest following "/>", so only self-closing elements are
// matched reliably.
//
// Rewrite rules are not supported by this backend and are ignored.
type Textual struct {
	matcher SpanMatcher
	label   string
}

// NewTextual returns the text-scanning backend for the removal rules in rules.
func NewTextual(rules []Rule, modName string) (*Textual, error) {
	if err := ValidateRules(rules, modName); err != nil {
		return nil, err
	}
	t := &Textual{label: commentLabel(modName)}
	for _, r := range removalRules(rules) {
		t.matcher.Pairs = append(t.matcher.Pairs, MarkerPair{
			Rule:  r.Name,
			Start: r.StartMarker(),
			End:   "/>",
		})
	}
	return t, nil
}

func (t *Textual) Name() string { return TextualName }

func (t *Textual) Patch(doc string) (*Result, error) {
	out, spans, err := t.matcher.Wrap(doc, t.wrap)
	if err != nil {
		return nil, err
	}
	res := &Result{Text: out}
	for _, sp := range spans {
		line, _ := position(doc, sp.Start)
		res.record(Applied{Rule: sp.Rule, Tag: tagOf(doc[sp.Start:sp.End]), Line: line})
	}
	return res, nil
}

func (t *Textual) wrap(span string) (string, error) {
	if strings.Contains(span, "--") {
		return "", ErrUnsafeSpan
	}
	return commentOpen + t.label + span + commentClose, nil
}

// tagOf extracts the element name from a span starting with "<".
func tagOf(span string) string {
	name := strings.TrimPrefix(span, "<")
	if i := strings.IndexAny(name, " \t\r\n/>"); i >= 0 {
		name = name[:i]
	}
	return name
}
