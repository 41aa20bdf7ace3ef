package plan

import (
	"github.com/nuvex/pgapply/pkg/catalog"
	"github.com/nuvex/pgapply/pkg/parser"
)

// rule describes how one statement kind is checked against the catalog
// snapshot: which category holds its objects, and whether an OR REPLACE
// declaration makes the statement safe to re-run regardless of existence.
type rule struct {
	category    catalog.Category
	replaceable bool
}

// rules maps each recognized statement kind to its redundancy check. Kinds
// absent from the table (extensions, unrecognized statements) are never
// dropped.
var rules = map[parser.Kind]rule{
	parser.KindTable:    {category: catalog.Tables},
	parser.KindIndex:    {category: catalog.Indexes},
	parser.KindFunction: {category: catalog.Functions, replaceable: true},
	parser.KindTrigger:  {category: catalog.Triggers},
	parser.KindPolicy:   {category: catalog.Policies},
	parser.KindType:     {category: catalog.Types},
}

// Filter returns the statements whose target objects do not already exist in
// the snapshot, preserving source order.
//
// A statement is dropped only when its kind has a catalog rule, its name was
// extracted, and that name is present in the corresponding category. A
// function declaring OR REPLACE is always kept. Statements with no extracted
// name are conservatively kept: ambiguous input is never skipped.
func Filter(stmts []parser.Statement, snap *catalog.Snapshot) []parser.Statement {
	kept := make([]parser.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		if redundant(stmt, snap) {
			continue
		}
		kept = append(kept, stmt)
	}
	return kept
}

func redundant(stmt parser.Statement, snap *catalog.Snapshot) bool {
	r, ok := rules[stmt.Kind]
	if !ok || stmt.Name == "" {
		return false
	}

	if !snap.Has(r.category, stmt.Name) {
		return false
	}

	if r.replaceable && stmt.OrReplace() {
		return false
	}

	return true
}
