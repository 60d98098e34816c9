package modgen

import (
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	"github.com/flauschfuchs/reduced-ui-animations/api"
)

// InfoFileName is the metadata file at the root of every mod.
const InfoFileName = "info.json"

// MarshalInfo renders info as single-line JSON with keys in sorted order.
// HTML in the description is written as is.
func MarshalInfo(info api.ModInfo) []byte {
	obj := map[string]any{
		"Author":      info.Author,
		"CacheStatus": info.CacheStatus,
		"Description": info.Description,
		"Title":       info.Title,
	}
	return []byte(oj.JSON(obj, &ojg.Options{Sort: true, HTMLUnsafe: true}))
}
