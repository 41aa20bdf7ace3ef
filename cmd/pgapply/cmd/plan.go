package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nuvex/pgapply/pkg/catalog"
	"github.com/nuvex/pgapply/pkg/parser"
	"github.com/nuvex/pgapply/pkg/plan"
	"github.com/nuvex/pgapply/pkg/postgres"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

// planCmd creates the plan command: a dry run that shows which statements
// would be applied without executing anything or taking a backup.
func planCmd() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Show pending schema changes without applying them",
		Description: `Compare the schema definition file against the current database catalog
and print the statements that would be applied, after redundancy filtering
and safety rewriting. Nothing is executed and no backup is taken.`,
		Flags: []cli.Flag{schemaFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPlan(ctx, cmd)
		},
	}
}

func runPlan(ctx context.Context, cmd *cli.Command) error {
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

	client, err := postgres.Connect(ctx, currentConfig.PostgresConfig())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	stmts := parser.Split(string(content))
	p := plan.Build(stmts, catalog.Load(ctx, client))

	if p.Empty() {
		fmt.Fprintln(cmd.Writer, "Database schema is up to date.")
		return nil
	}

	p.Render(cmd.Writer)

	return nil
}
