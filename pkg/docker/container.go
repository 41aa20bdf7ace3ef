package docker

import (
	"context"
	"fmt"

	"github.com/nuvex/pgapply/pkg/postgres"
	"github.com/pkg/errors"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	// DefaultPostgresPort is the default port for a PostgreSQL server.
	DefaultPostgresPort = 5432

	defaultUser     = "postgres"
	defaultPassword = "postgres"
	defaultDatabase = "postgres"
)

type (
	// Options represents options for running PostgreSQL in Docker.
	Options struct {
		// Version is the PostgreSQL version to run (default: latest)
		Version string

		// Database is the database created on startup (default: postgres)
		Database string
	}

	// Container manages PostgreSQL Docker containers for integration testing.
	Container struct {
		options   Options
		container *pgmodule.PostgresContainer
	}
)

// New creates a new Docker container with default options.
//
// Example:
//
//	container := docker.New()
//
//	if err := container.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer container.Stop(ctx)
func New() *Container {
	return &Container{}
}

// NewWithOptions creates a new Docker container with custom options.
func NewWithOptions(opts Options) *Container {
	return &Container{options: opts}
}

// Start starts a PostgreSQL Docker container with the configured version.
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	version := c.options.Version
	if version == "" {
		version = "latest"
	}

	database := c.options.Database
	if database == "" {
		database = defaultDatabase
	}

	container, err := pgmodule.Run(ctx,
		fmt.Sprintf("postgres:%s-alpine", version),
		pgmodule.WithUsername(defaultUser),
		pgmodule.WithPassword(defaultPassword),
		pgmodule.WithDatabase(database),
		pgmodule.BasicWaitStrategies(),
		pgmodule.WithSQLDriver("postgres"),
	)
	if err != nil {
		return errors.Wrap(err, "failed to start PostgreSQL container")
	}

	c.container = container
	return nil
}

// Stop stops and removes the PostgreSQL Docker container.
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil // Already stopped
	}

	err := c.container.Terminate(ctx)
	c.container = nil

	if err != nil {
		return errors.Wrap(err, "failed to stop PostgreSQL container")
	}

	return nil
}

// Config returns the connection settings for the running container.
func (c *Container) Config(ctx context.Context) (postgres.Config, error) {
	if c.container == nil {
		return postgres.Config{}, errors.New("container is not running")
	}

	host, err := c.container.Host(ctx)
	if err != nil {
		return postgres.Config{}, errors.Wrap(err, "failed to get container host")
	}

	port, err := c.container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return postgres.Config{}, errors.Wrap(err, "failed to get container port")
	}

	database := c.options.Database
	if database == "" {
		database = defaultDatabase
	}

	return postgres.Config{
		Host:     host,
		Port:     port.Int(),
		User:     defaultUser,
		Password: defaultPassword,
		Database: database,
		SSLMode:  "disable",
	}, nil
}

// IsRunning returns true if the container is currently running.
func (c *Container) IsRunning() bool {
	return c.container != nil
}
