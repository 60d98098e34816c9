package patch

import (
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"
)

// Structural parses the document into an element tree, applies the rules
// node by node and serializes the tree again. Attributes are emitted sorted
// by their full name so the output does not depend on parse order.
type Structural struct {
	rules   []Rule
	modName string
}

// NewStructural returns the tree-based backend.
func NewStructural(rules []Rule, modName string) (*Structural, error) {
	if err := ValidateRules(rules, modName); err != nil {
		return nil, err
	}
	return &Structural{rules: rules, modName: modName}, nil
}

func (s *Structural) Name() string { return StructuralName }

func (s *Structural) Patch(doc string) (*Result, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromString(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMarkup, err)
	}

	res := &Result{Text: doc}
	s.walk(&tree.Element, res)
	if res.Status == Unchanged {
		return res, nil
	}

	sortAttrs(&tree.Element)
	// Keep character references such as &#xA; in attribute values; written
	// raw they would be normalized to spaces by the reader.
	tree.WriteSettings.CanonicalAttrVal = true
	out, err := tree.WriteToString()
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	// The parser folds CRLF into LF.
	if strings.Contains(doc, "\r\n") {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	res.Text = out
	return res, nil
}

// walk visits the children of parent in document order. A removed child is
// swapped for a comment at the same index and not descended into.
func (s *Structural) walk(parent *etree.Element, res *Result) {
	for i := 0; i < len(parent.Child); i++ {
		child, ok := parent.Child[i].(*etree.Element)
		if !ok {
			continue
		}
		tag := child.FullTag()
		lookup := attrLookup(child)

		if rule, ok := s.removal(tag, lookup); ok {
			parent.RemoveChildAt(i)
			parent.InsertChildAt(i, etree.NewComment(Placeholder(s.modName, tag)))
			res.record(Applied{Rule: rule.Name, Tag: tag})
			continue
		}

		for _, rule := range s.rules {
			if rule.Action != Rewrite || !rule.Matches(tag, lookup) {
				continue
			}
			for _, a := range rule.Set {
				setAttr(child, a.Name, a.Value)
			}
			res.record(Applied{Rule: rule.Name, Tag: tag})
		}

		s.walk(child, res)
	}
}

func (s *Structural) removal(tag string, lookup func(string) (string, bool)) (Rule, bool) {
	for _, rule := range s.rules {
		if rule.Action == Remove && rule.Matches(tag, lookup) {
			return rule, true
		}
	}
	return Rule{}, false
}

func attrLookup(e *etree.Element) func(string) (string, bool) {
	return func(name string) (string, bool) {
		for i := range e.Attr {
			if e.Attr[i].FullKey() == name {
				return e.Attr[i].Value, true
			}
		}
		return "", false
	}
}

func setAttr(e *etree.Element, name, value string) {
	for i := range e.Attr {
		if e.Attr[i].FullKey() == name {
			e.Attr[i].Value = value
			return
		}
	}
	e.CreateAttr(name, value)
}

func sortAttrs(e *etree.Element) {
	slices.SortStableFunc(e.Attr, func(a, b etree.Attr) int {
		return strings.Compare(a.FullKey(), b.FullKey())
	})
	for _, child := range e.ChildElements() {
		sortAttrs(child)
	}
}
