package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nuvex/pgapply/pkg/config"
	"github.com/nuvex/pgapply/pkg/consts"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
)

var currentConfig *config.Config

// Version carries the build information stamped into release binaries.
type Version struct {
	Version string
	Commit  string
	Date    string
}

// Run creates and executes the main pgapply CLI application with the given
// version and command-line arguments.
//
// Settings are resolved before any command runs, lowest to highest
// precedence: built-in defaults, the pgapply.yaml project file (when present
// in the working directory), and a DATABASE_URL from the environment or a
// local .env file. Credentials still missing when a command needs to connect
// are prompted for interactively.
//
// Global flags:
//   - --config, -c: project configuration file (defaults to pgapply.yaml)
//
// Example usage:
//
//	# Preview pending schema changes
//	err := Run(ctx, version, []string{"pgapply", "plan"})
//
//	# Apply the schema without the confirmation prompt
//	err := Run(ctx, version, []string{"pgapply", "apply", "--yes"})
func Run(ctx context.Context, version Version, args []string) error {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", version.Date)
	}

	app := &cli.Command{
		Name:  "pgapply",
		Usage: "Apply incremental schema updates to a PostgreSQL database",
		Description: `pgapply applies a flat SQL schema definition file to a live PostgreSQL
database incrementally: statements whose target objects already exist are
skipped, the rest are rewritten to be safely re-runnable and executed one at
a time after a full backup.`,
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the project configuration file",
				Sources: cli.EnvVars("PGAPPLY_CONFIG"),
				Value:   consts.DefaultConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			path := cmd.String("config")

			switch _, err := os.Stat(path); {
			case os.IsNotExist(err):
				currentConfig = config.Default()
			case err != nil:
				return ctx, errors.Wrapf(err, "failed to stat %s", path)
			default:
				cfg, err := config.LoadFile(path)
				if err != nil {
					return ctx, err
				}
				currentConfig = cfg
			}

			if _, err := currentConfig.ResolveDatabaseURL(); err != nil {
				return ctx, err
			}

			return ctx, nil
		},
		Commands: []*cli.Command{
			apply(),
			planCmd(),
			status(),
		},
	}

	return app.Run(ctx, args)
}
