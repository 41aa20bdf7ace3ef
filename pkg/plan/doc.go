// Package plan decides which schema statements still need to run against a
// database and rewrites the survivors to be safely re-runnable.
//
// Planning is a pure, order-preserving two-pass transform over the statements
// produced by the parser package:
//
//   - The redundancy filter drops statements whose target object already
//     exists in the catalog snapshot, keeping replaceable functions and
//     anything whose name could not be determined.
//   - The safety rewriter inserts idempotency guards (IF NOT EXISTS) where the
//     dialect supports them, so that re-running a surviving statement against
//     a concurrently-created object does not fail the batch.
//
// The output of Build is the exact list of statements shown to the operator
// for confirmation and handed to the executor.
package plan
