package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nuvex/pgapply/pkg/config"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ensureCredentials prompts for any connection settings that are still
// missing after config and DATABASE_URL resolution. The password is read
// without echo. Fails when stdin is not a terminal, since a non-interactive
// run cannot supply the answers.
func ensureCredentials(cfg *config.Config) error {
	conn := &cfg.Connection
	if conn.User != "" && conn.Password != "" && conn.Database != "" {
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("database credentials are not configured; set DATABASE_URL or the connection block in pgapply.yaml")
	}

	reader := bufio.NewReader(os.Stdin)

	if conn.User == "" {
		user, err := promptLine(reader, "Enter PostgreSQL username: ")
		if err != nil {
			return err
		}
		conn.User = user
	}

	if conn.Password == "" {
		fmt.Print("Enter PostgreSQL password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return errors.Wrap(err, "failed to read password")
		}
		conn.Password = string(password)
	}

	if conn.Database == "" {
		database, err := promptLine(reader, "Enter database name: ")
		if err != nil {
			return err
		}
		conn.Database = database
	}

	return nil
}

// confirm asks the operator to approve the change set. Anything other than
// "y" declines.
func confirm(r io.Reader) bool {
	fmt.Print("\nDo you want to proceed? (y/N): ")

	answer, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "failed to read input")
	}

	return strings.TrimSpace(line), nil
}
