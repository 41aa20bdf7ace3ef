package plan

import (
	"fmt"
	"io"

	"github.com/nuvex/pgapply/pkg/catalog"
	"github.com/nuvex/pgapply/pkg/parser"
)

// Plan is the change set produced by filtering and rewriting a schema file
// against a catalog snapshot. Statements appear in source order and are the
// exact texts the executor will run.
type Plan struct {
	// Statements are the surviving, safety-rewritten statements.
	Statements []parser.Statement

	// Total is the number of statements split from the source file.
	Total int

	// Redundant is the number of statements dropped because their target
	// object already exists.
	Redundant int
}

// Build filters stmts against the snapshot and rewrites the survivors.
//
// Example usage:
//
//	stmts := parser.Split(string(schemaFile))
//	snap, _ := catalog.Load(ctx, client)
//	p := plan.Build(stmts, snap)
//	if p.Empty() {
//		fmt.Println("schema is up to date")
//	}
func Build(stmts []parser.Statement, snap *catalog.Snapshot) *Plan {
	kept := Filter(stmts, snap)

	return &Plan{
		Statements: Rewrite(kept),
		Total:      len(stmts),
		Redundant:  len(stmts) - len(kept),
	}
}

// Empty reports whether there is nothing left to apply.
func (p *Plan) Empty() bool {
	return len(p.Statements) == 0
}

// Render writes a numbered, human-readable preview of the change set,
// suitable for showing before confirmation.
func (p *Plan) Render(w io.Writer) {
	fmt.Fprintln(w, "The following schema changes will be applied:")

	for i, stmt := range p.Statements {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, stmt.Text)
	}

	if p.Redundant > 0 {
		fmt.Fprintf(w, "\n%d statement(s) skipped: target objects already exist.\n", p.Redundant)
	}
}
