package executor

import (
	"context"
	"time"

	"github.com/nuvex/pgapply/pkg/parser"
)

// excerptLen caps how much of a failed statement is carried in the result for
// display.
const excerptLen = 100

type (
	// StatementRunner is the narrow execution interface the apply loop needs.
	// It is satisfied by postgres.Client and by in-memory fakes in tests.
	StatementRunner interface {
		// RunStatement executes a single schema statement against the
		// database.
		RunStatement(ctx context.Context, stmt string) error
	}

	// Runner executes a batch of schema statements sequentially.
	Runner struct {
		conn StatementRunner
	}

	// Failure records one statement that could not be applied.
	Failure struct {
		// Statement is a truncated excerpt of the failed statement text.
		Statement string

		// Err is the execution error reported by the database.
		Err error
	}

	// Result is the outcome of one apply run. Built once per run and
	// discarded after reporting.
	Result struct {
		// Applied is the number of statements that executed successfully.
		Applied int

		// Failed is the number of statements that could not be executed.
		Failed int

		// Failures lists the failed statements in execution order.
		Failures []Failure

		// Elapsed is the total wall time of the apply run.
		Elapsed time.Duration
	}

	// Status classifies the overall outcome of an apply run.
	Status string
)

const (
	// StatusUpToDate means there was nothing to apply.
	StatusUpToDate Status = "up to date"

	// StatusApplied means every statement executed successfully.
	StatusApplied Status = "applied"

	// StatusPartial means some statements executed and some failed.
	StatusPartial Status = "applied with warnings"

	// StatusFailed means no statement executed successfully.
	StatusFailed Status = "failed"
)

// New creates a Runner that executes statements through conn.
func New(conn StatementRunner) *Runner {
	return &Runner{conn: conn}
}

// Apply executes every statement in order, one at a time, and returns the
// batch outcome. A failed statement is recorded and counted; execution always
// continues with the next statement. An empty batch is a successful no-op.
//
// Example usage:
//
//	result := executor.New(client).Apply(ctx, p.Statements)
//	for _, f := range result.Failures {
//		fmt.Printf("warning: failed to apply statement: %s\n", f.Statement)
//	}
//	fmt.Println(result.Status())
func (r *Runner) Apply(ctx context.Context, stmts []parser.Statement) *Result {
	start := time.Now()
	result := &Result{}

	for _, stmt := range stmts {
		if err := r.conn.RunStatement(ctx, stmt.Text); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, Failure{
				Statement: stmt.Excerpt(excerptLen),
				Err:       err,
			})
			continue
		}

		result.Applied++
	}

	result.Elapsed = time.Since(start)

	return result
}

// Status classifies the run outcome.
func (r *Result) Status() Status {
	switch {
	case r.Applied == 0 && r.Failed == 0:
		return StatusUpToDate
	case r.Failed == 0:
		return StatusApplied
	case r.Applied == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

// Succeeded reports whether the run counts as a completed, reportable run:
// either nothing needed to be applied, or at least one statement succeeded.
func (r *Result) Succeeded() bool {
	return r.Status() != StatusFailed
}
