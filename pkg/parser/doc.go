// Package parser splits flat PostgreSQL schema definition files into discrete,
// independently executable statements.
//
// The parser is deliberately line-oriented rather than grammar-based: schema
// files are expected to consist of top-level CREATE statement blocks, and
// plpgsql function bodies (which contain nested semicolons) are carried as a
// single statement terminated by their closing LANGUAGE clause. Each statement
// is classified by the kind of object it creates and, where possible, the
// target object name is extracted for catalog comparison.
//
// Known limitations, by design:
//   - A function body is terminated only by a line ending in "LANGUAGE plpgsql;".
//     Functions written in other procedural languages, or bodies containing that
//     exact text mid-statement, are not split correctly.
//   - Quoted identifiers, mixed-case names, and schemas other than a literal
//     "public." prefix are not recognized by name extraction.
//   - Content preceding the first CREATE statement is ignored unless an earlier
//     accumulator is still open.
package parser
