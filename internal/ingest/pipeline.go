// Package ingest drives a full ingest run.
//
// A run loads the simple tables, then the transformed tables, then the
// sprite catalogues, all inside one transaction that is committed once at
// the end. Each stage runs under its own savepoint: a failing stage is
// rolled back and logged, and the run moves on to the next one.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
	"github.com/JonMunkholm/pokedex-ingest/internal/database"
	"github.com/JonMunkholm/pokedex-ingest/internal/logging"
	"github.com/JonMunkholm/pokedex-ingest/internal/sprite"
)

// Options configures a Pipeline.
type Options struct {
	// Registry holds the table definitions in load order.
	Registry *core.Registry

	// Open opens source tables by file stem.
	Open core.Opener

	// Sprites is the sprite tree root. It is read only after Repository
	// has made it available.
	Sprites fs.FS

	// Repository acquires the sprite tree. Nil skips acquisition.
	Repository sprite.Repository

	// Passes overrides the sprite passes; nil uses sprite.Passes().
	Passes []sprite.Pass
}

// Pipeline runs the ingest stages against one transaction.
type Pipeline struct {
	tx     database.Txn
	opts   Options
	report *Report
	seq    int
}

// New creates a pipeline bound to tx.
func New(tx database.Txn, opts Options) *Pipeline {
	if opts.Passes == nil {
		opts.Passes = sprite.Passes()
	}
	return &Pipeline{tx: tx, opts: opts}
}

// Run executes every stage and commits. Stage failures are recorded in the
// report and never stop the run; the returned error is only set when the
// commit fails.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	p.report = &Report{}
	logger := logging.FromContext(ctx)
	start := time.Now()

	logger.Info("loading tables", "tables", p.opts.Registry.TableCount())
	for _, def := range p.opts.Registry.ByGroup(core.GroupPassthrough) {
		p.loadTable(ctx, def)
	}
	for _, def := range p.opts.Registry.ByGroup(core.GroupTransformed) {
		p.loadTable(ctx, def)
	}

	p.loadSprites(ctx)

	if err := p.tx.Commit(ctx); err != nil {
		logger.Error("commit failed", "error", err)
		return p.report, fmt.Errorf("commit: %w", err)
	}
	p.report.Committed = true

	logger.Info("ingest finished",
		"stages", len(p.report.Stages),
		"failed", len(p.report.Failed()),
		"inserted", p.report.Inserted(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return p.report, nil
}

// loadTable runs one table definition as a stage.
func (p *Pipeline) loadTable(ctx context.Context, def core.TableDefinition) {
	p.stage(ctx, def.Info.Label, def.Info.Key, func(ctx context.Context, res *StageResult) error {
		var (
			lr  core.LoadResult
			err error
		)
		if def.Passthrough() {
			lr, err = p.loadPassthrough(ctx, def)
		} else {
			lr, err = p.loadTransformed(ctx, def)
		}
		record(ctx, res, lr)
		return err
	})
}

func (p *Pipeline) loadPassthrough(ctx context.Context, def core.TableDefinition) (core.LoadResult, error) {
	f, err := p.opts.Open(def.Info.Source)
	if err != nil {
		return core.LoadResult{}, err
	}
	defer f.Close()

	src := core.NewCountingReader(f)
	lr, err := core.Load(ctx, p.tx, def.Info.Key, src, core.LoadOptions{GeneratedKey: def.GeneratedKey})
	logging.FromContext(ctx).Debug("source streamed", "table", def.Info.Key, "bytes", src.BytesRead)
	return lr, err
}

func (p *Pipeline) loadTransformed(ctx context.Context, def core.TableDefinition) (core.LoadResult, error) {
	buf, err := core.Transform(p.opts.Open, def)
	if err != nil {
		return core.LoadResult{}, err
	}
	logging.FromContext(ctx).Debug("rows transformed", "table", def.Info.Key, "rows", buf.Rows(), "columns", buf.Header())
	return core.Load(ctx, p.tx, def.Info.Key, buf.Reader(), core.LoadOptions{GeneratedKey: def.GeneratedKey})
}

// loadSprites acquires the sprite tree and runs every pass as its own
// stage. When acquisition fails every pass stage fails with that error.
func (p *Pipeline) loadSprites(ctx context.Context) {
	var acquireErr error
	if p.opts.Repository != nil {
		res := p.stage(ctx, "sprite repository", "", func(ctx context.Context, _ *StageResult) error {
			return p.opts.Repository.Ensure(ctx)
		})
		if res.Err != nil {
			acquireErr = fmt.Errorf("sprite repository unavailable: %w", res.Err)
		}
	}

	var (
		versions   *sprite.VersionMatcher
		versionErr error
	)
	for _, pass := range p.opts.Passes {
		if pass.Versioned && versions == nil && versionErr == nil {
			versions, versionErr = p.loadVersions(ctx)
		}

		p.stage(ctx, pass.Name, pass.Table, func(ctx context.Context, res *StageResult) error {
			if acquireErr != nil {
				return acquireErr
			}
			if pass.Versioned && versionErr != nil {
				return fmt.Errorf("version lookup: %w", versionErr)
			}

			cat, err := pass.Run(ctx, p.opts.Sprites, versions)
			if err != nil {
				return err
			}
			res.Skipped = cat.Skipped
			logging.FromContext(ctx).Debug("sprites catalogued", "table", pass.Table, "rows", cat.Rows.Rows(), "skipped", cat.Skipped)

			lr, err := core.Load(ctx, p.tx, pass.Table, cat.Rows.Reader(), core.LoadOptions{GeneratedKey: pass.GeneratedKey})
			record(ctx, res, lr)
			return err
		})
	}
}

func (p *Pipeline) loadVersions(ctx context.Context) (*sprite.VersionMatcher, error) {
	f, err := p.opts.Open(sprite.VersionSource)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := sprite.LoadVersionMatcher(f)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug("version lookup loaded", "versions", m.Len())
	return m, nil
}

// record copies a load's counts into the stage result.
func record(ctx context.Context, res *StageResult, lr core.LoadResult) {
	res.Staged, res.Inserted = lr.Staged, lr.Inserted
	if n := lr.Conflicts(); n > 0 {
		logging.FromContext(ctx).Debug("rows already present", "table", lr.Table, "conflicts", n)
	}
}

// stage runs fn under a savepoint. A failure rolls the savepoint back so
// the transaction stays usable for the stages that follow.
func (p *Pipeline) stage(ctx context.Context, name, table string, fn func(context.Context, *StageResult) error) StageResult {
	p.seq++
	savepoint := fmt.Sprintf("stage_%d", p.seq)
	logger := logging.WithFields(ctx, "stage", name, "table", table)
	start := time.Now()

	res := StageResult{Name: name, Table: table}
	logger.Info("stage started")

	if _, err := p.tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
		res.Err = fmt.Errorf("create savepoint: %w", err)
	} else if err := fn(ctx, &res); err != nil {
		res.Err = err
		if _, rbErr := p.tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			res.Err = errors.Join(err, fmt.Errorf("rollback to savepoint: %w", rbErr))
		} else if _, relErr := p.tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint); relErr != nil {
			logger.Debug("release after rollback failed", "savepoint", savepoint, "error", relErr)
		}
	} else if _, err := p.tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		res.Err = fmt.Errorf("release savepoint: %w", err)
	}

	res.Duration = time.Since(start)
	if res.Err != nil {
		// A rolled back stage loaded nothing.
		res.Staged, res.Inserted = 0, 0
		logger.Error("stage failed", "error", res.Err, "duration", res.Duration.Round(time.Millisecond))
	} else {
		logger.Info("stage finished",
			"staged", res.Staged,
			"inserted", res.Inserted,
			"skipped", res.Skipped,
			"duration", res.Duration.Round(time.Millisecond),
		)
	}

	p.report.add(res)
	return res
}
