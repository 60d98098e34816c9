package api

// ModInfo is the metadata the game reads from a mod's info.json.
type ModInfo struct {
	// Author shown in the mod browser.
	Author string `json:"Author"`
	// CacheStatus is always 0 for locally built mods.
	CacheStatus int `json:"CacheStatus"`
	// Description may contain simple HTML markup such as <b>.
	Description string `json:"Description"`
	// Title of the mod; also the name of its directory under mods/local.
	Title string `json:"Title"`
}

const (
	DefaultModName = "Reduced UI Animations"
	DefaultAuthor  = "Flauschfuchs"
)

// DefaultModInfo returns the metadata published for a mod named title.
func DefaultModInfo(title string) ModInfo {
	return ModInfo{
		Author:      DefaultAuthor,
		CacheStatus: 0,
		Description: "Recreation of <b>0xDB No UI Transitions 1.4</b> by Flauschfuchs so that it works in May 2024.",
		Title:       title,
	}
}
