// Package patch rewrites XAML markup so that the UI animation effects of the
// installed game are neutralized.
//
// Two interchangeable backends implement [Strategy]: the structural backend
// parses the document into an element tree, and the textual backend comments
// out marker-delimited spans without parsing. Both share the same [Rule] set.
package patch

import (
	"fmt"
	"strings"
)

// Action is what a rule does to a matching element.
type Action int

const (
	// Remove replaces the element with a placeholder comment.
	Remove Action = iota
	// Rewrite overwrites a fixed set of attributes in place.
	Rewrite
)

func (a Action) String() string {
	switch a {
	case Remove:
		return "remove"
	case Rewrite:
		return "rewrite"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Attr is a single attribute assignment, keyed by its full (prefixed) name.
type Attr struct {
	Name  string
	Value string
}

// Rule matches elements by full tag name and, optionally, by the value of an
// identifying attribute.
type Rule struct {
	Name   string
	Tag    string
	Action Action

	// MatchAttr and MatchValue restrict the rule to elements carrying
	// MatchAttr="MatchValue". Empty MatchAttr matches on the tag alone.
	MatchAttr  string
	MatchValue string

	// Set lists the attributes a Rewrite rule assigns.
	Set []Attr
}

const (
	BlurEffectTag   = "local:Age2BlurEffect"
	SwipeEffectTag  = "local:Age2SwipeEffect"
	FadeRectTag     = "Rectangle"
	FadeRectNameKey = "x:Name"
	FadeRectName    = "Fade"
)

// DefaultRules returns the rule set of the Reduced UI Animations mod.
// The fade rectangle values follow "0xDB No UI Transitions 1.4".
func DefaultRules() []Rule {
	return []Rule{
		{Name: "remove-blur-effect", Tag: BlurEffectTag, Action: Remove},
		{Name: "remove-swipe-effect", Tag: SwipeEffectTag, Action: Remove},
		{
			Name:       "rewrite-fade-rectangle",
			Tag:        FadeRectTag,
			Action:     Rewrite,
			MatchAttr:  FadeRectNameKey,
			MatchValue: FadeRectName,
			Set: []Attr{
				{Name: "Canvas.Left", Value: "-1"},
				{Name: "Canvas.Top", Value: "-1"},
				{Name: "Fill", Value: "Green"},
				{Name: "Height", Value: "1"},
				{Name: "Width", Value: "1"},
			},
		},
	}
}

// StartMarker is the literal that opens an element of the rule's tag.
func (r Rule) StartMarker() string { return "<" + r.Tag }

// Matches reports whether an element with the given tag and attribute lookup
// is targeted by the rule.
func (r Rule) Matches(tag string, attr func(name string) (string, bool)) bool {
	if tag != r.Tag {
		return false
	}
	if r.MatchAttr == "" {
		return true
	}
	v, ok := attr(r.MatchAttr)
	return ok && v == r.MatchValue
}

// Placeholder is the comment text left where a removed element used to be.
func Placeholder(modName, tag string) string {
	return fmt.Sprintf("The mod %s replaced an element here: %s", modName, tag)
}

// commentLabel prefixes every span the textual backend comments out.
func commentLabel(modName string) string {
	return fmt.Sprintf("The mod %s commented out an element here: ", modName)
}

// ValidateRules checks that no placeholder or comment label produced for
// modName can be matched again by a removal rule, and that all of them are
// legal comment text.
func ValidateRules(rules []Rule, modName string) error {
	texts := []string{commentLabel(modName)}
	for _, r := range rules {
		if r.Tag == "" {
			return fmt.Errorf("rule %q: empty tag", r.Name)
		}
		if r.Action == Remove {
			texts = append(texts, Placeholder(modName, r.Tag))
		}
	}
	for _, text := range texts {
		if strings.Contains(text, "--") || strings.HasSuffix(text, "-") {
			return fmt.Errorf("%w: %q is not legal comment text", ErrUnsafePlaceholder, text)
		}
		for _, r := range rules {
			if r.Action == Remove && strings.Contains(text, r.StartMarker()) {
				return fmt.Errorf("%w: %q contains %q", ErrUnsafePlaceholder, text, r.StartMarker())
			}
		}
	}
	return nil
}

func removalRules(rules []Rule) []Rule {
	var out []Rule
	for _, r := range rules {
		if r.Action == Remove {
			out = append(out, r)
		}
	}
	return out
}
