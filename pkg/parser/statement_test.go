package parser_test

import (
	"testing"

	"github.com/nuvex/pgapply/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementClassification(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedKind parser.Kind
		expectedName string
	}{
		{
			name:         "table",
			input:        "CREATE TABLE users (id int);",
			expectedKind: parser.KindTable,
			expectedName: "users",
		},
		{
			name:         "table with guard and schema qualifier",
			input:        "CREATE TABLE IF NOT EXISTS public.users (id int);",
			expectedKind: parser.KindTable,
			expectedName: "users",
		},
		{
			name:         "index",
			input:        "CREATE INDEX users_email_idx ON users(email);",
			expectedKind: parser.KindIndex,
			expectedName: "users_email_idx",
		},
		{
			name:         "index with guard",
			input:        "CREATE INDEX IF NOT EXISTS users_email_idx ON users(email);",
			expectedKind: parser.KindIndex,
			expectedName: "users_email_idx",
		},
		{
			name:         "function",
			input:        "CREATE FUNCTION f()\nRETURNS void AS $$ BEGIN END; $$ LANGUAGE plpgsql;",
			expectedKind: parser.KindFunction,
			expectedName: "f",
		},
		{
			name:         "or replace function",
			input:        "CREATE OR REPLACE FUNCTION public.f()\nRETURNS void AS $$ BEGIN END; $$ LANGUAGE plpgsql;",
			expectedKind: parser.KindFunction,
			expectedName: "f",
		},
		{
			name:         "trigger",
			input:        "CREATE TRIGGER trg AFTER INSERT ON t FOR EACH ROW EXECUTE FUNCTION f();",
			expectedKind: parser.KindTrigger,
			expectedName: "trg",
		},
		{
			name:         "type",
			input:        "CREATE TYPE mood AS ENUM ('happy', 'sad');",
			expectedKind: parser.KindType,
			expectedName: "mood",
		},
		{
			name:         "extension",
			input:        `CREATE EXTENSION "uuid-ossp";`,
			expectedKind: parser.KindExtension,
			expectedName: "",
		},
		{
			name:         "unique index has no recognized shape",
			input:        "CREATE UNIQUE INDEX u_idx ON t(col);",
			expectedKind: parser.KindOther,
			expectedName: "",
		},
		{
			name:         "unrecognized statement",
			input:        "CREATE SEQUENCE seq;",
			expectedKind: parser.KindOther,
			expectedName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := parser.Split(tt.input)
			require.Len(t, stmts, 1)
			assert.Equal(t, tt.expectedKind, stmts[0].Kind)
			assert.Equal(t, tt.expectedName, stmts[0].Name)
		})
	}
}

func TestStatementPolicyCapturesTable(t *testing.T) {
	stmts := parser.Split("CREATE POLICY user_select ON users\nFOR SELECT USING (true);")
	require.Len(t, stmts, 1)
	assert.Equal(t, parser.KindPolicy, stmts[0].Kind)
	assert.Equal(t, "user_select", stmts[0].Name)
	assert.Equal(t, "users", stmts[0].Table)
}

func TestStatementOrReplace(t *testing.T) {
	replace := parser.Split("CREATE OR REPLACE FUNCTION f()\nRETURNS void AS $$ BEGIN END; $$ LANGUAGE plpgsql;")
	require.Len(t, replace, 1)
	assert.True(t, replace[0].OrReplace())

	plain := parser.Split("CREATE FUNCTION f()\nRETURNS void AS $$ BEGIN END; $$ LANGUAGE plpgsql;")
	require.Len(t, plain, 1)
	assert.False(t, plain[0].OrReplace())
}

func TestStatementExcerpt(t *testing.T) {
	stmt := parser.Statement{Text: "CREATE TABLE t (id int);"}
	assert.Equal(t, "CREATE TABLE t (id int);", stmt.Excerpt(100))
	assert.Equal(t, "CREATE TAB...", stmt.Excerpt(10))
}
