package patch

import (
	"strings"
)

// MarkerPair delimits a span: it starts at Start and ends at the nearest
// following End, both included.
type MarkerPair struct {
	Rule  string
	Start string
	End   string
}

// Span is a matched byte range [Start, End) of the input document.
type Span struct {
	Rule  string
	Start int
	End   int
}

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	cdataOpen    = "<![CDATA["
	cdataClose   = "]]>"
)

// SpanMatcher finds marker-delimited spans left to right, without overlap,
// and replaces each with wrap(span). Text outside the spans is copied
// byte for byte. Comments and CDATA sections are never searched, so a span
// that was already wrapped in a comment is not matched again.
type SpanMatcher struct {
	Pairs []MarkerPair
}

// Wrap rewrites every span of doc. It fails if a start marker has no end
// marker before the end of input, or if that end marker sits inside a quoted
// attribute value.
func (m *SpanMatcher) Wrap(doc string, wrap func(span string) (string, error)) (string, []Span, error) {
	var (
		b     strings.Builder
		spans []Span
		pos   int
	)
	for {
		start, pair, err := m.nextStart(doc, pos)
		if err != nil {
			return "", nil, err
		}
		if start < 0 {
			break
		}

		bodyStart := start + len(pair.Start)
		rel := strings.Index(doc[bodyStart:], pair.End)
		if rel < 0 {
			return "", nil, newMarkerError(doc, start, pair.Rule, pair.Start, ErrUnbalancedMarker)
		}
		if openQuote(doc[bodyStart : bodyStart+rel]) {
			return "", nil, newMarkerError(doc, start, pair.Rule, pair.Start, ErrQuotedEndMarker)
		}
		end := bodyStart + rel + len(pair.End)

		wrapped, err := wrap(doc[start:end])
		if err != nil {
			return "", nil, newMarkerError(doc, start, pair.Rule, pair.Start, err)
		}
		if b.Len() == 0 {
			b.Grow(len(doc) + len(wrapped) - (end - start))
		}
		b.WriteString(doc[pos:start])
		b.WriteString(wrapped)
		spans = append(spans, Span{Rule: pair.Rule, Start: start, End: end})
		pos = end
	}
	if len(spans) == 0 {
		return doc, nil, nil
	}
	b.WriteString(doc[pos:])
	return b.String(), spans, nil
}

// nextStart returns the offset of the earliest start marker at or after pos
// that lies outside comments and CDATA sections and ends on a name boundary.
func (m *SpanMatcher) nextStart(doc string, pos int) (int, MarkerPair, error) {
	for pos < len(doc) {
		lt := strings.IndexByte(doc[pos:], '<')
		if lt < 0 {
			break
		}
		at := pos + lt
		rest := doc[at:]

		if skip, closer := opaqueSection(rest); skip != "" {
			closeAt := strings.Index(rest[len(skip):], closer)
			if closeAt < 0 {
				return -1, MarkerPair{}, newMarkerError(doc, at, "", skip, ErrUnterminatedComment)
			}
			pos = at + len(skip) + closeAt + len(closer)
			continue
		}

		for _, pair := range m.Pairs {
			if strings.HasPrefix(rest, pair.Start) && nameBoundary(rest, len(pair.Start)) {
				return at, pair, nil
			}
		}
		pos = at + 1
	}
	return -1, MarkerPair{}, nil
}

// openQuote reports whether s leaves a single- or double-quoted value open.
func openQuote(s string) bool {
	var quote byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case quote == 0 && (c == '"' || c == '\''):
			quote = c
		case c == quote:
			quote = 0
		}
	}
	return quote != 0
}

func opaqueSection(s string) (opener, closer string) {
	switch {
	case strings.HasPrefix(s, commentOpen):
		return commentOpen, commentClose
	case strings.HasPrefix(s, cdataOpen):
		return cdataOpen, cdataClose
	default:
		return "", ""
	}
}

// nameBoundary reports whether the tag name ending at s[i] is complete, so
// that "<local:Age2BlurEffect" does not match "<local:Age2BlurEffectHost".
func nameBoundary(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	switch s[i] {
	case ' ', '\t', '\r', '\n', '/', '>':
		return true
	default:
		return false
	}
}
