package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nuvex/pgapply/pkg/backup"
	"github.com/nuvex/pgapply/pkg/catalog"
	"github.com/nuvex/pgapply/pkg/executor"
	"github.com/nuvex/pgapply/pkg/parser"
	"github.com/nuvex/pgapply/pkg/plan"
	"github.com/nuvex/pgapply/pkg/postgres"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

// apply creates the apply command, the full update pipeline: split the schema
// file, snapshot the catalog, drop redundant statements, rewrite the rest for
// safety, confirm, back up, and execute.
//
// Example usage:
//
//	# Apply schema.sql with a confirmation prompt
//	pgapply apply
//
//	# Apply a specific file without prompting
//	pgapply apply --schema db/schema.sql --yes
func apply() *cli.Command {
	return &cli.Command{
		Name:  "apply",
		Usage: "Apply pending schema changes to the database",
		Description: `Apply the schema definition file to the configured database.

Statements whose target objects already exist are skipped. Surviving CREATE
TABLE, CREATE INDEX, enum CREATE TYPE, and CREATE EXTENSION statements gain
an IF NOT EXISTS guard before execution. A full pg_dump backup is taken
before anything runs; the update is aborted if the backup fails.

Statements execute one at a time with no shared transaction. A failing
statement is reported and counted but never stops the batch: later
statements are still attempted, and the run is reported as completed with
warnings.`,
		Flags: []cli.Flag{
			schemaFlag,
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runApply(ctx, cmd)
		},
	}
}

var schemaFlag = &cli.StringFlag{
	Name:    "schema",
	Aliases: []string{"f"},
	Usage:   "Schema definition file (overrides the configured schema_file)",
	Config: cli.StringConfig{
		TrimSpace: true,
	},
}

func runApply(ctx context.Context, cmd *cli.Command) error {
	if err := ensureCredentials(currentConfig); err != nil {
		return err
	}

	schemaFile := currentConfig.SchemaFile
	if path := cmd.String("schema"); path != "" {
		schemaFile = path
	}

	content, err := os.ReadFile(schemaFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read schema file %s", schemaFile)
	}

	cfg := currentConfig.PostgresConfig()

	created, err := postgres.EnsureDatabase(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "failed to ensure database exists")
	}
	if created {
		fmt.Fprintf(cmd.Writer, "Created database %s\n", cfg.Database)
	}

	client, err := postgres.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	fmt.Fprintln(cmd.Writer, "Analyzing current database schema...")

	stmts := parser.Split(string(content))
	p := plan.Build(stmts, catalog.Load(ctx, client))

	slog.Info("Planned schema changes",
		"statements", p.Total,
		"redundant", p.Redundant,
		"pending", len(p.Statements),
	)

	if p.Empty() {
		fmt.Fprintln(cmd.Writer, "Database schema is up to date.")
		return nil
	}

	fmt.Fprintln(cmd.Writer)
	p.Render(cmd.Writer)

	if !cmd.Bool("yes") && !confirm(os.Stdin) {
		fmt.Fprintln(cmd.Writer, "Update cancelled.")
		return errors.New("update cancelled")
	}

	fmt.Fprintln(cmd.Writer, "\nCreating database backup...")

	backupFile, err := backup.New(currentConfig.BackupDir).Dump(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "aborting update due to backup failure")
	}
	fmt.Fprintf(cmd.Writer, "Database backup created: %s\n", backupFile)

	fmt.Fprintln(cmd.Writer, "\nApplying schema updates...")

	result := executor.New(client).Apply(ctx, p.Statements)

	return reportResult(cmd, result)
}

func reportResult(cmd *cli.Command, result *executor.Result) error {
	for _, failure := range result.Failures {
		fmt.Fprintf(cmd.Writer, "Warning: failed to apply statement: %s\n", failure.Statement)
		fmt.Fprintf(cmd.Writer, "  %v\n", failure.Err)
	}

	fmt.Fprintln(cmd.Writer)

	switch result.Status() {
	case executor.StatusUpToDate:
		fmt.Fprintln(cmd.Writer, "Database schema is up to date.")

	case executor.StatusApplied:
		fmt.Fprintf(cmd.Writer, "Schema updates completed successfully! Applied %d change(s) in %v.\n",
			result.Applied, result.Elapsed)

	case executor.StatusPartial:
		fmt.Fprintf(cmd.Writer, "Schema updates completed with warnings: %d success(es), %d error(s).\n",
			result.Applied, result.Failed)

	case executor.StatusFailed:
		fmt.Fprintf(cmd.Writer, "Schema update failed: all %d statement(s) errored.\n", result.Failed)
		return errors.New("schema update failed")
	}

	return nil
}
