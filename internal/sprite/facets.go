package sprite

import "strings"

// Facet keywords. A facet holds when one of the path segments equals its
// keyword.
const (
	KeywordShiny       = "shiny"
	KeywordFemale      = "female"
	KeywordBack        = "back"
	KeywordGrey        = "grey"
	KeywordTransparent = "transparent"
	KeywordAnimated    = "animated"
	KeywordLowRes      = "lowres"
)

// Facets are the independent boolean attributes of a sprite.
type Facets struct {
	Shiny       bool
	Female      bool
	Back        bool
	Grey        bool
	Transparent bool
	Animated    bool
	LowRes      bool
}

// ExtractFacets derives the facets of a sprite from its path segments.
// Segment order does not matter.
func ExtractFacets(segments []string) Facets {
	var f Facets
	for _, s := range segments {
		switch s {
		case KeywordShiny:
			f.Shiny = true
		case KeywordFemale:
			f.Female = true
		case KeywordBack:
			f.Back = true
		case KeywordGrey:
			f.Grey = true
		case KeywordTransparent:
			f.Transparent = true
		case KeywordAnimated:
			f.Animated = true
		case KeywordLowRes:
			f.LowRes = true
		}
	}
	return f
}

// Segments splits a slash separated path, dropping empty elements.
func Segments(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}
