package parser

import "strings"

// functionTerminator is the sole marker that closes a function body. A line
// ending with this text (after trimming) completes the statement.
const functionTerminator = "LANGUAGE plpgsql;"

// Split scans schema file text top to bottom and returns its top-level
// statements in source order.
//
// Blank lines and -- comment lines are discarded. A line starting a function
// definition opens a function body that is accumulated verbatim until a line
// ends with "LANGUAGE plpgsql;" regardless of any semicolons inside it. Any
// other CREATE line starts a fresh statement, flushing whatever was pending.
// Continuation lines append to the open statement and a trailing semicolon
// completes it. Anything still accumulated at end of input is flushed as a
// final statement even without a trailing semicolon.
//
// Example usage:
//
//	stmts := parser.Split(string(schemaFile))
//	for _, stmt := range stmts {
//		fmt.Printf("%s %s\n", stmt.Kind, stmt.Name)
//	}
func Split(text string) []Statement {
	var (
		statements     []Statement
		current        []string
		inFunctionBody bool
	)

	flush := func() {
		if len(current) > 0 {
			statements = append(statements, newStatement(current))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "CREATE OR REPLACE FUNCTION"), strings.HasPrefix(line, "CREATE FUNCTION"):
			flush()
			current = append(current, line)
			inFunctionBody = true

		case inFunctionBody:
			current = append(current, line)
			if strings.HasSuffix(line, functionTerminator) {
				flush()
				inFunctionBody = false
			}

		case strings.HasPrefix(line, "CREATE"):
			flush()
			current = append(current, line)

		case len(current) > 0:
			current = append(current, line)
			if strings.HasSuffix(line, ";") {
				flush()
			}
		}
	}

	flush()

	return statements
}
