package parser

import (
	"regexp"
	"strings"
)

type (
	// Kind identifies the type of object a statement creates. It determines
	// which catalog category the statement is checked against and which safety
	// rewrite (if any) applies to it.
	Kind string

	// Statement represents one atomic, independently executable unit of schema
	// definition text. Statements are immutable once split; the safety rewrite
	// step produces a new Statement with transformed text and the same kind and
	// name.
	Statement struct {
		// Text is the newline-joined statement body with blank and comment
		// lines removed.
		Text string

		// Kind is the inferred statement kind, KindOther when the statement
		// does not match any recognized CREATE shape.
		Kind Kind

		// Name is the extracted target object name. Empty when extraction
		// missed, in which case the statement is conservatively treated as
		// non-redundant downstream.
		Name string

		// Table is the table a policy is attached to. Captured for policy
		// statements only; name matching remains name-only.
		Table string
	}
)

const (
	KindTable     Kind = "table"
	KindIndex     Kind = "index"
	KindFunction  Kind = "function"
	KindTrigger   Kind = "trigger"
	KindPolicy    Kind = "policy"
	KindType      Kind = "type"
	KindExtension Kind = "extension"
	KindOther     Kind = "other"
)

// Name extraction patterns per kind. Patterns tolerate an optional
// IF NOT EXISTS clause and a literal public. schema qualifier; matching is
// case-sensitive against catalog names as the database reports them.
var (
	indexNameRe    = regexp.MustCompile(`CREATE INDEX (?:IF NOT EXISTS )?(?:public\.)?(\w+)`)
	tableNameRe    = regexp.MustCompile(`CREATE TABLE (?:IF NOT EXISTS )?(?:public\.)?(\w+)`)
	functionNameRe = regexp.MustCompile(`CREATE (?:OR REPLACE )?FUNCTION (?:public\.)?(\w+)`)
	triggerNameRe  = regexp.MustCompile(`CREATE TRIGGER (?:public\.)?(\w+)`)
	policyNameRe   = regexp.MustCompile(`CREATE POLICY (?:public\.)?(\w+) ON (\w+)`)
	typeNameRe     = regexp.MustCompile(`CREATE TYPE (?:public\.)?(\w+)`)
)

// newStatement builds a Statement from accumulated lines, classifying its kind
// and extracting the target object name.
func newStatement(lines []string) Statement {
	stmt := Statement{Text: strings.Join(lines, "\n")}
	stmt.Kind = classify(stmt.Text)
	stmt.Name, stmt.Table = extractName(stmt.Kind, stmt.Text)
	return stmt
}

// classify infers the statement kind from its text. The switch order is part
// of the contract: a statement matches at most one kind.
func classify(text string) Kind {
	switch {
	case strings.Contains(text, "CREATE INDEX"):
		return KindIndex
	case strings.Contains(text, "CREATE TABLE"):
		return KindTable
	case strings.Contains(text, "CREATE FUNCTION"), strings.Contains(text, "CREATE OR REPLACE FUNCTION"):
		return KindFunction
	case strings.Contains(text, "CREATE TRIGGER"):
		return KindTrigger
	case strings.Contains(text, "CREATE POLICY"):
		return KindPolicy
	case strings.Contains(text, "CREATE TYPE"):
		return KindType
	case strings.Contains(text, "CREATE EXTENSION"):
		return KindExtension
	default:
		return KindOther
	}
}

// extractName pulls the target object name out of the statement text. Returns
// empty strings on a pattern miss; callers must treat that as "unknown", never
// as an error.
func extractName(kind Kind, text string) (name, table string) {
	switch kind {
	case KindIndex:
		if m := indexNameRe.FindStringSubmatch(text); m != nil {
			return m[1], ""
		}
	case KindTable:
		if m := tableNameRe.FindStringSubmatch(text); m != nil {
			return m[1], ""
		}
	case KindFunction:
		if m := functionNameRe.FindStringSubmatch(text); m != nil {
			return m[1], ""
		}
	case KindTrigger:
		if m := triggerNameRe.FindStringSubmatch(text); m != nil {
			return m[1], ""
		}
	case KindPolicy:
		if m := policyNameRe.FindStringSubmatch(text); m != nil {
			return m[1], m[2]
		}
	case KindType:
		if m := typeNameRe.FindStringSubmatch(text); m != nil {
			return m[1], ""
		}
	}
	return "", ""
}

// OrReplace reports whether the statement declares OR REPLACE, making it safe
// to re-run against an existing object.
func (s Statement) OrReplace() bool {
	return strings.Contains(s.Text, "OR REPLACE")
}

// Excerpt returns the statement text truncated to max characters for display
// in warnings and reports.
func (s Statement) Excerpt(max int) string {
	if len(s.Text) <= max {
		return s.Text
	}
	return s.Text[:max] + "..."
}
