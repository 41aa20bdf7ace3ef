package postgres_test

import (
	"context"
	"testing"

	"github.com/nuvex/pgapply/pkg/catalog"
	"github.com/nuvex/pgapply/pkg/docker"
	"github.com/nuvex/pgapply/pkg/executor"
	"github.com/nuvex/pgapply/pkg/parser"
	"github.com/nuvex/pgapply/pkg/plan"
	"github.com/nuvex/pgapply/pkg/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApplyPipeline_Integration runs the full split/snapshot/filter/rewrite/
// apply pipeline against a disposable PostgreSQL container.
func TestApplyPipeline_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container := docker.New()
	require.NoError(t, container.Start(ctx))
	defer func() { _ = container.Stop(ctx) }()

	cfg, err := container.Config(ctx)
	require.NoError(t, err)

	client, err := postgres.Connect(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	schema := `CREATE TABLE users (
id serial PRIMARY KEY,
email text NOT NULL
);
CREATE INDEX users_email_idx ON users(email);
CREATE OR REPLACE FUNCTION touch_noop()
RETURNS TRIGGER AS $$
BEGIN
RETURN NEW;
END;
$$ LANGUAGE plpgsql;`

	stmts := parser.Split(schema)
	require.Len(t, stmts, 3)

	// First run: nothing exists, everything applies.
	first := plan.Build(stmts, catalog.Load(ctx, client))
	require.Len(t, first.Statements, 3)

	result := executor.New(client).Apply(ctx, first.Statements)
	require.Empty(t, result.Failures)
	assert.Equal(t, 3, result.Applied)
	assert.Equal(t, executor.StatusApplied, result.Status())

	// Second run: table and index are redundant; the OR REPLACE function is
	// kept and re-runs cleanly.
	snap := catalog.Load(ctx, client)
	assert.True(t, snap.Has(catalog.Tables, "users"))
	assert.True(t, snap.Has(catalog.Indexes, "users_email_idx"))
	assert.True(t, snap.Has(catalog.Functions, "touch_noop"))

	second := plan.Build(stmts, snap)
	require.Len(t, second.Statements, 1)
	assert.Equal(t, parser.KindFunction, second.Statements[0].Kind)

	result = executor.New(client).Apply(ctx, second.Statements)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 0, result.Failed)
}

func TestEnsureDatabase_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container := docker.New()
	require.NoError(t, container.Start(ctx))
	defer func() { _ = container.Stop(ctx) }()

	cfg, err := container.Config(ctx)
	require.NoError(t, err)
	cfg.Database = "pgapply_test"

	created, err := postgres.EnsureDatabase(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	// Second call finds the database and does nothing.
	created, err = postgres.EnsureDatabase(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	client, err := postgres.Connect(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.RunStatement(ctx, "CREATE TABLE t (id int)"))

	names, err := client.RunQuery(ctx, "SELECT tablename FROM pg_tables WHERE schemaname = 'public'")
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, names)
}
