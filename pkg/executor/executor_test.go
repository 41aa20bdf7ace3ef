package executor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/nuvex/pgapply/pkg/executor"
	"github.com/nuvex/pgapply/pkg/parser"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	failOn   func(stmt string) error
	executed []string
}

func (m *mockRunner) RunStatement(ctx context.Context, stmt string) error {
	m.executed = append(m.executed, stmt)
	if m.failOn != nil {
		return m.failOn(stmt)
	}
	return nil
}

func statements(texts ...string) []parser.Statement {
	stmts := make([]parser.Statement, 0, len(texts))
	for _, text := range texts {
		stmts = append(stmts, parser.Statement{Text: text})
	}
	return stmts
}

func TestApply_AllSucceed(t *testing.T) {
	conn := &mockRunner{}
	result := executor.New(conn).Apply(context.Background(), statements(
		"CREATE TABLE a (id int);",
		"CREATE TABLE b (id int);",
	))

	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Failures)
	assert.Equal(t, executor.StatusApplied, result.Status())
	assert.True(t, result.Succeeded())
}

func TestApply_NeverStopsEarly(t *testing.T) {
	conn := &mockRunner{
		failOn: func(stmt string) error {
			if strings.Contains(stmt, "b") {
				return errors.New(`relation "b" does not exist`)
			}
			return nil
		},
	}

	result := executor.New(conn).Apply(context.Background(), statements(
		"CREATE TABLE a (id int);",
		"CREATE INDEX b_idx ON b(id);",
		"CREATE TABLE c (id int);",
	))

	// All three statements were attempted despite the middle failure.
	require.Len(t, conn.executed, 3)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, executor.StatusPartial, result.Status())
	assert.True(t, result.Succeeded())

	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Statement, "b_idx")
	assert.Error(t, result.Failures[0].Err)
}

func TestApply_AllFail(t *testing.T) {
	conn := &mockRunner{
		failOn: func(string) error { return errors.New("permission denied") },
	}

	result := executor.New(conn).Apply(context.Background(), statements(
		"CREATE TABLE a (id int);",
		"CREATE TABLE b (id int);",
	))

	require.Len(t, conn.executed, 2)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, executor.StatusFailed, result.Status())
	assert.False(t, result.Succeeded())
}

func TestApply_EmptyBatchIsUpToDate(t *testing.T) {
	conn := &mockRunner{}
	result := executor.New(conn).Apply(context.Background(), nil)

	assert.Empty(t, conn.executed)
	assert.Equal(t, executor.StatusUpToDate, result.Status())
	assert.True(t, result.Succeeded())
}

func TestApply_FailureExcerptIsTruncated(t *testing.T) {
	conn := &mockRunner{
		failOn: func(string) error { return errors.New("syntax error") },
	}

	long := "CREATE TABLE wide (" + strings.Repeat("col int, ", 30) + "id int);"
	result := executor.New(conn).Apply(context.Background(), statements(long))

	require.Len(t, result.Failures, 1)
	assert.Len(t, result.Failures[0].Statement, 103) // 100 chars plus ellipsis
	assert.True(t, strings.HasSuffix(result.Failures[0].Statement, "..."))
}

func TestApply_ExecutionOrder(t *testing.T) {
	conn := &mockRunner{}
	executor.New(conn).Apply(context.Background(), statements("first;", "second;", "third;"))

	assert.Equal(t, []string{"first;", "second;", "third;"}, conn.executed)
}
