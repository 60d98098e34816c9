package patch

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Decode validates raw as UTF-8 and strips a leading byte order mark.
// Invalid input is rejected rather than repaired with replacement characters.
func Decode(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrInvalidEncoding
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
