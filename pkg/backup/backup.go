// Package backup produces full logical database dumps before schema changes
// are applied. A failed backup must abort the apply phase; callers treat the
// returned error as fatal.
package backup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nuvex/pgapply/pkg/consts"
	"github.com/nuvex/pgapply/pkg/postgres"
	"github.com/pkg/errors"
)

type (
	// RunFunc executes an external dump command with the given environment
	// and returns its combined output. Swapped for a fake in tests.
	RunFunc func(ctx context.Context, env []string, name string, args ...string) ([]byte, error)

	// Dumper writes timestamped pg_dump backups into a directory.
	Dumper struct {
		dir string
		run RunFunc
	}
)

// New creates a Dumper writing into dir using pg_dump.
//
// Example usage:
//
//	dumper := backup.New("backups")
//	path, err := dumper.Dump(ctx, cfg)
//	if err != nil {
//		return errors.Wrap(err, "aborting update due to backup failure")
//	}
//	fmt.Printf("backup created: %s\n", path)
func New(dir string) *Dumper {
	return &Dumper{dir: dir, run: runCommand}
}

// NewWithRunner creates a Dumper with a custom command runner.
func NewWithRunner(dir string, run RunFunc) *Dumper {
	return &Dumper{dir: dir, run: run}
}

// Dump writes a plain-format logical dump of the configured database to a
// timestamped file in the dump directory and returns the file path. The
// password is passed to pg_dump through the environment, never on the command
// line.
func (d *Dumper) Dump(ctx context.Context, cfg postgres.Config) (string, error) {
	if err := os.MkdirAll(d.dir, consts.ModeDir); err != nil {
		return "", errors.Wrapf(err, "failed to create backup directory %s", d.dir)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(d.dir, fmt.Sprintf("%s_backup_%s.sql", cfg.Database, timestamp))

	args := []string{
		"-U", cfg.User,
		"-h", cfg.Host,
	}
	if cfg.Port > 0 {
		args = append(args, "-p", strconv.Itoa(cfg.Port))
	}
	args = append(args, cfg.Database, "-F", "p", "-f", path)

	env := append(os.Environ(), "PGPASSWORD="+cfg.Password)

	output, err := d.run(ctx, env, "pg_dump", args...)
	if err != nil {
		return "", errors.Wrapf(err, "pg_dump failed: %s", string(output))
	}

	// pg_dump can exit zero without producing a file on some invocation
	// errors; the file itself is the success condition.
	if _, err := os.Stat(path); err != nil {
		return "", errors.Wrap(err, "backup file was not created")
	}

	return path, nil
}

func runCommand(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env
	return cmd.CombinedOutput()
}
