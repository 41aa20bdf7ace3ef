// Package catalog reads a point-in-time snapshot of the objects that already
// exist in a PostgreSQL database, one name set per object category.
//
// Snapshots are built once per run from independent catalog queries and are
// treated as read-only for the duration of an apply pass. A failed category
// query degrades that category to the empty set rather than aborting the
// snapshot: the filter then errs toward re-running statements (which are
// rewritten to be idempotent) instead of silently skipping them.
package catalog

import (
	"context"
	"log/slog"
	"sort"
)

type (
	// Category identifies one class of schema object tracked in a snapshot.
	Category string

	// Querier is the narrow read interface the snapshot builder needs. It is
	// satisfied by postgres.Client and by in-memory fakes in tests.
	Querier interface {
		// RunQuery executes a catalog query and returns the first column of
		// each row as text, one entry per row.
		RunQuery(ctx context.Context, query string) ([]string, error)
	}

	// Snapshot maps each object category to the set of existing object names,
	// unqualified and scoped to the public schema. Never mutated after Load.
	Snapshot struct {
		objects map[Category]map[string]struct{}
	}
)

const (
	Tables      Category = "tables"
	Functions   Category = "functions"
	Triggers    Category = "triggers"
	Indexes     Category = "indexes"
	Constraints Category = "constraints"
	Policies    Category = "policies"
	Types       Category = "types"
)

// Categories lists every snapshot category in display order.
var Categories = []Category{Tables, Functions, Triggers, Indexes, Constraints, Policies, Types}

// queries holds the catalog query for each category. Constraints has no query:
// the category exists in the snapshot but nothing populates it, and no
// statement kind checks against it.
var queries = map[Category]string{
	Tables:    `SELECT tablename FROM pg_tables WHERE schemaname = 'public'`,
	Functions: `SELECT proname FROM pg_proc WHERE pronamespace = (SELECT oid FROM pg_namespace WHERE nspname = 'public')`,
	Triggers:  `SELECT tgname FROM pg_trigger`,
	Indexes:   `SELECT indexname FROM pg_indexes WHERE schemaname = 'public'`,
	Policies:  `SELECT polname FROM pg_policy`,
	Types:     `SELECT typname FROM pg_type WHERE typtype = 'e' AND typnamespace = (SELECT oid FROM pg_namespace WHERE nspname = 'public')`,
}

// Load builds a snapshot of existing database objects by running one catalog
// query per category. Each category is independent: a query failure is logged
// and leaves that category empty, and the remaining categories still load.
//
// Example usage:
//
//	snap, _ := catalog.Load(ctx, client)
//	if snap.Has(catalog.Tables, "users") {
//		fmt.Println("users table already exists")
//	}
func Load(ctx context.Context, conn Querier) *Snapshot {
	snap := &Snapshot{objects: make(map[Category]map[string]struct{}, len(Categories))}

	for _, category := range Categories {
		snap.objects[category] = make(map[string]struct{})

		query, ok := queries[category]
		if !ok {
			continue
		}

		names, err := conn.RunQuery(ctx, query)
		if err != nil {
			slog.Warn("catalog query failed; treating category as empty",
				"category", string(category),
				"error", err,
			)
			continue
		}

		for _, name := range names {
			snap.objects[category][name] = struct{}{}
		}
	}

	return snap
}

// New builds a snapshot from literal category contents. Intended for tests and
// previews; Load is the production entry point.
func New(objects map[Category][]string) *Snapshot {
	snap := &Snapshot{objects: make(map[Category]map[string]struct{}, len(Categories))}
	for _, category := range Categories {
		snap.objects[category] = make(map[string]struct{})
		for _, name := range objects[category] {
			snap.objects[category][name] = struct{}{}
		}
	}
	return snap
}

// Has reports whether name exists in the given category. Matching is
// case-sensitive; catalog names arrive lower-cased unless they were quoted at
// creation time.
func (s *Snapshot) Has(category Category, name string) bool {
	_, ok := s.objects[category][name]
	return ok
}

// Count returns the number of objects recorded for the category.
func (s *Snapshot) Count(category Category) int {
	return len(s.objects[category])
}

// Names returns the sorted object names for the category.
func (s *Snapshot) Names(category Category) []string {
	names := make([]string, 0, len(s.objects[category]))
	for name := range s.objects[category] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
