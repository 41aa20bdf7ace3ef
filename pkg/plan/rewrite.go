package plan

import (
	"strings"

	"github.com/nuvex/pgapply/pkg/parser"
)

const guard = "IF NOT EXISTS"

// Rewrite applies idempotency guards to each statement, returning a new slice
// in the same order with a one-to-one correspondence to the input.
//
// At most one rewrite rule applies per statement, in priority order: index,
// table, enum type, extension. Each rule fires only when the guard text is not
// already present, which makes Rewrite idempotent. Function, trigger, and
// policy statements have no safe conditional form and pass through unchanged;
// they rely solely on the redundancy filter. Non-enum CREATE TYPE statements
// are also left alone since the engine has no conditional creation for them.
func Rewrite(stmts []parser.Statement) []parser.Statement {
	rewritten := make([]parser.Statement, 0, len(stmts))
	for _, stmt := range stmts {
		rewritten = append(rewritten, rewrite(stmt))
	}
	return rewritten
}

func rewrite(stmt parser.Statement) parser.Statement {
	text := stmt.Text

	switch {
	case strings.HasPrefix(text, "CREATE INDEX") && !strings.Contains(text, guard):
		text = strings.Replace(text, "CREATE INDEX", "CREATE INDEX "+guard, 1)

	case strings.HasPrefix(text, "CREATE TABLE") && !strings.Contains(text, guard):
		text = strings.Replace(text, "CREATE TABLE", "CREATE TABLE "+guard, 1)

	case strings.HasPrefix(text, "CREATE TYPE") && !strings.Contains(text, guard) && strings.Contains(text, "AS ENUM"):
		text = strings.Replace(text, "CREATE TYPE", "CREATE TYPE "+guard, 1)

	case strings.Contains(text, "CREATE EXTENSION") && !strings.Contains(text, guard):
		text = strings.Replace(text, "CREATE EXTENSION", "CREATE EXTENSION "+guard, 1)
	}

	stmt.Text = text

	return stmt
}
