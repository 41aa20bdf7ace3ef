package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/nuvex/pgapply/pkg/catalog"
	"github.com/nuvex/pgapply/pkg/postgres"
	"github.com/urfave/cli/v3"
)

// maxNamesShown caps how many object names are listed per category before
// the remainder is summarized.
const maxNamesShown = 10

// status creates the status command, which prints a snapshot of the objects
// currently present in the database, per category.
func status() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the objects currently present in the database",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runStatus(ctx, cmd)
		},
	}
}

func runStatus(ctx context.Context, cmd *cli.Command) error {
	if err := ensureCredentials(currentConfig); err != nil {
		return err
	}

	client, err := postgres.Connect(ctx, currentConfig.PostgresConfig())
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	snap := catalog.Load(ctx, client)

	fmt.Fprintf(cmd.Writer, "Database: %s\n\n", currentConfig.Connection.Database)

	for _, category := range catalog.Categories {
		names := snap.Names(category)
		fmt.Fprintf(cmd.Writer, "%-12s %d\n", string(category)+":", len(names))

		shown := names
		if len(shown) > maxNamesShown {
			shown = shown[:maxNamesShown]
		}
		if len(shown) > 0 {
			fmt.Fprintf(cmd.Writer, "  %s\n", strings.Join(shown, ", "))
		}
		if len(names) > maxNamesShown {
			fmt.Fprintf(cmd.Writer, "  ... and %d more\n", len(names)-maxNamesShown)
		}
	}

	return nil
}
