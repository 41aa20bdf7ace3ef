package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the project configuration file pgapply looks for
	DefaultConfigFile = "pgapply.yaml"

	// DefaultSchemaFile is the schema definition file applied when no other
	// file is configured
	DefaultSchemaFile = "schema.sql"

	// DefaultBackupDir is the directory backups are written to
	DefaultBackupDir = "backups"

	// DefaultEnvFile is the local environment file checked for DATABASE_URL
	DefaultEnvFile = ".env"

	// DefaultHost is the database host used when none is configured
	DefaultHost = "localhost"

	// DefaultPort is the PostgreSQL server port used when none is configured
	DefaultPort = 5432

	// DefaultSSLMode is the sslmode connection parameter used when none is
	// configured
	DefaultSSLMode = "disable"
)
