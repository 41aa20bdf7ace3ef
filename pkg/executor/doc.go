// Package executor applies schema statements to a PostgreSQL database one at
// a time, tolerating partial failure.
//
// Statements are executed strictly in source order with no shared transaction:
// later statements may depend on objects created by earlier ones, and the
// engine does not support concurrent DDL safely, so nothing runs concurrently
// and a single failure never aborts the batch. Failures are counted and
// recorded with a truncated excerpt of the offending statement; the batch
// outcome distinguishes a fully clean run, a run with warnings, a run where
// everything failed, and an empty batch (already up to date).
//
// The executor talks to the database through a single-method interface so the
// apply loop is testable with an in-memory fake.
package executor
