package sprite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
	"github.com/JonMunkholm/pokedex-ingest/internal/logging"
)

// Directory layout below the sprite root.
const (
	PokemonDir  = "pokemon"
	OtherDir    = "pokemon/other"
	OfficialDir = "pokemon/other/official-artwork"
	ShinyDir    = "pokemon/other/official-artwork/shiny"
	VersionsDir = "pokemon/versions"

	generationPrefix = "generation"
	iconsDir         = "icons"
)

// Catalogue is the output of one pass.
type Catalogue struct {
	Rows    *core.Buffer
	Skipped int // files or directories that could not be classified
}

// Pass is one cataloguing pass and the table its rows load into.
type Pass struct {
	Name         string
	Table        string
	GeneratedKey bool
	// Versioned passes need a VersionMatcher.
	Versioned bool
	Run       func(ctx context.Context, fsys fs.FS, versions *VersionMatcher) (*Catalogue, error)
}

// Passes returns the cataloguing passes in load order.
func Passes() []Pass {
	return []Pass{
		{
			Name:  "sprites",
			Table: "pokemon_sprite",
			Run: func(ctx context.Context, fsys fs.FS, _ *VersionMatcher) (*Catalogue, error) {
				return CatalogAll(ctx, fsys)
			},
		},
		{
			Name:         "official artwork",
			Table:        "pokemon_official_sprite",
			GeneratedKey: true,
			Run: func(ctx context.Context, fsys fs.FS, _ *VersionMatcher) (*Catalogue, error) {
				return CatalogOfficial(ctx, fsys)
			},
		},
		{
			Name:         "default artwork",
			Table:        "pokemon_default_sprite",
			GeneratedKey: true,
			Run: func(ctx context.Context, fsys fs.FS, _ *VersionMatcher) (*Catalogue, error) {
				return CatalogDefault(ctx, fsys)
			},
		},
		{
			Name:         "misc artwork",
			Table:        "pokemon_misc_sprite",
			GeneratedKey: true,
			Run: func(ctx context.Context, fsys fs.FS, _ *VersionMatcher) (*Catalogue, error) {
				return CatalogMisc(ctx, fsys)
			},
		},
		{
			Name:         "version artwork",
			Table:        "pokemon_version_sprite",
			GeneratedKey: true,
			Versioned:    true,
			Run:          CatalogVersions,
		},
	}
}

// CatalogAll lists every image below pokemon/ with its subject and
// variant.
func CatalogAll(ctx context.Context, fsys fs.FS) (*Catalogue, error) {
	cat := &Catalogue{Rows: core.NewBuffer("path", "pokemon_id", "variant")}

	err := walkImages(fsys, PokemonDir, nil, func(p string) error {
		subject, ok := parseOrSkip(ctx, cat, p)
		if !ok {
			return nil
		}
		variant := pgtype.Text{String: subject.Variant, Valid: subject.HasVariant()}
		return cat.Rows.Append(p, subject.ID, variant)
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// CatalogOfficial lists the official artwork and its shiny subdirectory.
// Only direct children are considered.
func CatalogOfficial(ctx context.Context, fsys fs.FS) (*Catalogue, error) {
	cat := &Catalogue{Rows: core.NewBuffer("sprite_path", "is_shiny")}

	for _, dir := range []struct {
		path  string
		shiny bool
	}{
		{OfficialDir, false},
		{ShinyDir, true},
	} {
		entries, err := readDir(ctx, fsys, dir.path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !IsImage(e.Name()) {
				continue
			}
			p := path.Join(dir.path, e.Name())
			if _, ok := parseOrSkip(ctx, cat, p); !ok {
				continue
			}
			if err := cat.Rows.Append(p, dir.shiny); err != nil {
				return nil, err
			}
		}
	}
	return cat, nil
}

// CatalogDefault lists the images outside the versions and other branches,
// with facets taken from the full path.
func CatalogDefault(ctx context.Context, fsys fs.FS) (*Catalogue, error) {
	cat := &Catalogue{Rows: core.NewBuffer("sprite_path", "is_shiny", "is_female", "is_back", "is_low_res")}

	skip := func(dir string) bool {
		name := path.Base(dir)
		return name == "versions" || name == "other"
	}

	err := walkImages(fsys, PokemonDir, skip, func(p string) error {
		if _, ok := parseOrSkip(ctx, cat, p); !ok {
			return nil
		}
		f := ExtractFacets(Segments(p))
		return cat.Rows.Append(p, f.Shiny, f.Female, f.Back, f.LowRes)
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// CatalogMisc lists the images below pokemon/other/<category>/, except the
// official artwork. Facets are taken from the path below other/.
func CatalogMisc(ctx context.Context, fsys fs.FS) (*Catalogue, error) {
	cat := &Catalogue{Rows: core.NewBuffer("sprite_path", "category", "is_female", "is_shiny", "is_back")}

	if !branchExists(ctx, fsys, OtherDir) {
		return cat, nil
	}

	skip := func(dir string) bool {
		return dir == OfficialDir
	}

	err := walkImages(fsys, OtherDir, skip, func(p string) error {
		rel := Segments(strings.TrimPrefix(p, OtherDir+"/"))
		if len(rel) < 2 {
			// Files directly in other/ belong to no category.
			return nil
		}
		if _, ok := parseOrSkip(ctx, cat, p); !ok {
			return nil
		}
		f := ExtractFacets(rel)
		return cat.Rows.Append(p, rel[0], f.Female, f.Shiny, f.Back)
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// CatalogVersions lists the images below
// pokemon/versions/generation*/<version-dir>/, one row per version the
// directory name matches. Facets are taken from the path below the version
// directory. A directory naming no known version is skipped whole.
func CatalogVersions(ctx context.Context, fsys fs.FS, versions *VersionMatcher) (*Catalogue, error) {
	if versions == nil {
		return nil, errors.New("version artwork needs a version lookup")
	}

	cat := &Catalogue{Rows: core.NewBuffer(
		"sprite_path", "version_id", "is_shiny", "is_female", "is_back",
		"is_grey", "is_animated", "is_transparent",
	)}
	logger := logging.FromContext(ctx)

	generations, err := readDir(ctx, fsys, VersionsDir)
	if err != nil {
		return nil, err
	}

	for _, gen := range generations {
		if !gen.IsDir() || !strings.HasPrefix(gen.Name(), generationPrefix) {
			continue
		}
		genPath := path.Join(VersionsDir, gen.Name())

		versionDirs, err := fs.ReadDir(fsys, genPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", genPath, err)
		}

		for _, vd := range versionDirs {
			if !vd.IsDir() || vd.Name() == iconsDir {
				continue
			}
			versionPath := path.Join(genPath, vd.Name())

			ids, err := versions.Match(vd.Name())
			if err != nil {
				logger.Warn("skipping version directory", "path", versionPath, "error", err)
				cat.Skipped++
				continue
			}

			err = walkImages(fsys, versionPath, nil, func(p string) error {
				if _, ok := parseOrSkip(ctx, cat, p); !ok {
					return nil
				}
				f := ExtractFacets(Segments(strings.TrimPrefix(p, versionPath+"/")))
				for _, id := range ids {
					if err := cat.Rows.Append(p, id, f.Shiny, f.Female, f.Back, f.Grey, f.Animated, f.Transparent); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return cat, nil
}

// walkImages calls fn with the slash separated path of every image file
// below root. Directories for which skip returns true are not entered.
func walkImages(fsys fs.FS, root string, skip func(dir string) bool, fn func(p string) error) error {
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skip != nil && skip(p) {
				return fs.SkipDir
			}
			return nil
		}
		if !IsImage(d.Name()) {
			return nil
		}
		return fn(p)
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	return nil
}

// readDir lists a branch directory. A missing branch is logged and treated
// as empty.
func readDir(ctx context.Context, fsys fs.FS, dir string) ([]fs.DirEntry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		logging.FromContext(ctx).Warn("sprite directory missing", "path", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	return entries, nil
}

func branchExists(ctx context.Context, fsys fs.FS, dir string) bool {
	if _, err := fs.Stat(fsys, dir); errors.Is(err, fs.ErrNotExist) {
		logging.FromContext(ctx).Warn("sprite directory missing", "path", dir)
		return false
	}
	return true
}

func parseOrSkip(ctx context.Context, cat *Catalogue, p string) (Subject, bool) {
	subject, err := ParseSubjectAndVariant(p)
	if err != nil {
		logging.FromContext(ctx).Warn("skipping sprite", "path", p, "error", err)
		cat.Skipped++
		return Subject{}, false
	}
	return subject, true
}
