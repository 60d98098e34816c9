package patch

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEncoding     = errors.New("content is not valid UTF-8")
	ErrUnbalancedMarker    = errors.New("start marker has no matching end marker")
	ErrUnterminatedComment = errors.New("comment or CDATA section is never closed")
	ErrUnsafeSpan          = errors.New(`span contains "--" and cannot be placed in a comment`)
	ErrQuotedEndMarker     = errors.New("end marker falls inside a quoted attribute value")
	ErrMalformedMarkup     = errors.New("malformed markup")
	ErrUnsafePlaceholder   = errors.New("placeholder text would re-match a removal rule")
	ErrUnknownStrategy     = errors.New("unknown patch strategy")
)

// MarkerError locates a textual matching failure inside a document.
type MarkerError struct {
	Rule   string
	Marker string
	Offset int
	Line   int // 1-indexed
	Column int // 1-indexed, in bytes
	Err    error
}

func (e *MarkerError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("%d:%d: %v (marker %q)", e.Line, e.Column, e.Err, e.Marker)
	}
	return fmt.Sprintf("%d:%d: rule %s: %v (marker %q)", e.Line, e.Column, e.Rule, e.Err, e.Marker)
}

func (e *MarkerError) Unwrap() error { return e.Err }

func newMarkerError(doc string, offset int, rule, marker string, err error) *MarkerError {
	line, col := position(doc, offset)
	return &MarkerError{
		Rule:   rule,
		Marker: marker,
		Offset: offset,
		Line:   line,
		Column: col,
		Err:    err,
	}
}

// position converts a byte offset into a 1-indexed line and column.
func position(doc string, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(doc); i++ {
		if doc[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// FileError ties a patch failure to the file and backend that produced it.
type FileError struct {
	Path     string
	Strategy string
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("patch %s (%s): %v", e.Path, e.Strategy, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }
