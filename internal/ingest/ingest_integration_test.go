package ingest

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/JonMunkholm/pokedex-ingest/internal/core"
	"github.com/JonMunkholm/pokedex-ingest/internal/database"
	"github.com/JonMunkholm/pokedex-ingest/internal/sprite"
)

const postgresImage = "postgres:17-alpine"

func setupPostgres(t *testing.T, ctx context.Context) string {
	t.Helper()

	waitForLogs := wait.
		ForLog("database system is ready to accept connections").
		WithOccurrence(2).
		WithStartupTimeout(30 * time.Second)

	ctr, err := postgres.Run(ctx, postgresImage, testcontainers.WithWaitStrategy(waitForLogs))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ctr.Terminate(context.Background())
	})

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return url
}

func Test_Load_Idempotent(t *testing.T) {
	if os.Getenv("INGEST_INTEGRATION_TESTS") == "" {
		t.Skip("skipping integration test...")
	}

	ctx := context.Background()
	url := setupPostgres(t, ctx)

	conn, err := database.Connect(ctx, database.ConnectConfig{URL: url, Attempts: 5, Delay: time.Second})
	require.NoError(t, err)
	defer conn.Close(ctx)

	setup, err := conn.Begin(ctx)
	require.NoError(t, err)
	for _, ddl := range []string{
		`CREATE TABLE region (id integer PRIMARY KEY, identifier text NOT NULL)`,
		`CREATE TABLE pokemon_official_sprite (
			id integer GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			sprite_path text NOT NULL UNIQUE,
			is_shiny boolean NOT NULL
		)`,
	} {
		_, err := setup.Exec(ctx, ddl)
		require.NoError(t, err)
	}
	require.NoError(t, setup.Commit(ctx))

	regions := "id,identifier\n1,kanto\n2,johto\n"
	official := core.NewBuffer("sprite_path", "is_shiny")
	require.NoError(t, official.Append("pokemon/other/official-artwork/1.png", false))
	require.NoError(t, official.Append("pokemon/other/official-artwork/shiny/1.png", true))

	load := func(t *testing.T) (core.LoadResult, core.LoadResult) {
		tx, err := conn.Begin(ctx)
		require.NoError(t, err)

		r1, err := core.Load(ctx, tx, "region", strings.NewReader(regions), core.LoadOptions{})
		require.NoError(t, err)
		r2, err := core.Load(ctx, tx, "pokemon_official_sprite", official.Reader(), core.LoadOptions{GeneratedKey: true})
		require.NoError(t, err)

		// The scratch table is dropped, so a table can be loaded twice in
		// one transaction.
		again, err := core.Load(ctx, tx, "region", strings.NewReader(regions), core.LoadOptions{})
		require.NoError(t, err)
		require.Equal(t, int64(0), again.Inserted)

		require.NoError(t, tx.Commit(ctx))
		return r1, r2
	}

	first, firstSprites := load(t)
	require.Equal(t, int64(2), first.Staged)
	require.Equal(t, int64(2), first.Inserted)
	require.Equal(t, int64(2), firstSprites.Inserted)

	second, secondSprites := load(t)
	require.Equal(t, int64(2), second.Staged)
	require.Equal(t, int64(0), second.Inserted)
	require.Equal(t, int64(2), second.Conflicts())
	require.Equal(t, int64(0), secondSprites.Inserted)
}

func Test_Pipeline_StageRollback(t *testing.T) {
	if os.Getenv("INGEST_INTEGRATION_TESTS") == "" {
		t.Skip("skipping integration test...")
	}

	ctx := context.Background()
	url := setupPostgres(t, ctx)

	conn, err := database.Connect(ctx, database.ConnectConfig{URL: url, Attempts: 5, Delay: time.Second})
	require.NoError(t, err)
	defer conn.Close(ctx)

	setup, err := conn.Begin(ctx)
	require.NoError(t, err)
	_, err = setup.Exec(ctx, `CREATE TABLE region (id integer PRIMARY KEY, identifier text NOT NULL)`)
	require.NoError(t, err)
	require.NoError(t, setup.Commit(ctx))

	reg := core.NewRegistry()
	// generation has no destination table, its stage fails.
	reg.Register(core.TableDefinition{Info: core.TableInfo{Key: "generation", Source: "generations", Group: core.GroupPassthrough}})
	reg.Register(core.TableDefinition{Info: core.TableInfo{Key: "region", Source: "regions", Group: core.GroupPassthrough}})

	tx, err := conn.Begin(ctx)
	require.NoError(t, err)

	report, err := New(tx, Options{
		Registry: reg,
		Open: opener(map[string]string{
			"generations": "id,identifier\n1,generation-i\n",
			"regions":     "id,identifier\n1,kanto\n",
		}),
		Passes: []sprite.Pass{},
	}).Run(ctx)
	require.NoError(t, err)

	require.Len(t, report.Failed(), 1)
	var missing *database.ErrRelationDoesNotExist
	require.ErrorAs(t, report.Failed()[0].Err, &missing)
	require.Equal(t, int64(1), report.Succeeded()[0].Inserted)
}
