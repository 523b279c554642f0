// Package sprite catalogues the sprite image tree.
//
// Everything the catalogue records is inferred from path strings: the
// subject id and variant from the file name, boolean facets from the
// directory segments, and game versions from version directory names.
// Nothing opens an image.
package sprite

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotSprite is returned for file names that do not name a subject.
var ErrNotSprite = errors.New("not a sprite file name")

var subjectPattern = regexp.MustCompile(`^(\d+)(?:[-_]?(.+))?$`)

var imageExtensions = map[string]bool{
	".png": true,
	".gif": true,
	".svg": true,
}

// Subject is the identity encoded in a sprite file name.
type Subject struct {
	ID      int64
	Variant string // "" when the name has no label
}

// HasVariant reports whether the file name carried a label.
func (s Subject) HasVariant() bool {
	return s.Variant != ""
}

// ParseSubjectAndVariant parses a file name such as "25.png", "25-cap.png"
// or "10001_mega.png". The stem must start with a positive integer; any
// remainder after an optional '-' or '_' is the variant.
func ParseSubjectAndVariant(name string) (Subject, error) {
	base := path.Base(name)
	stem := strings.TrimSuffix(base, path.Ext(base))

	m := subjectPattern.FindStringSubmatch(stem)
	if m == nil {
		return Subject{}, fmt.Errorf("%w: %q", ErrNotSprite, base)
	}

	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Subject{}, fmt.Errorf("%w: %q: %v", ErrNotSprite, base, err)
	}
	if id <= 0 {
		return Subject{}, fmt.Errorf("%w: %q: id must be positive", ErrNotSprite, base)
	}

	return Subject{ID: id, Variant: m[2]}, nil
}

// IsImage reports whether name has an image extension.
func IsImage(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}
