//go:build integration
// +build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"SquareBridge/internal/bridge"
	"SquareBridge/pkg/postgres"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "postgres"
	pgPassword = "secret"
	pgDatabase = "bridge_test"
)

// PostgresContainer backs the webhook journal in integration tests.
type PostgresContainer struct {
	Container testcontainers.Container
	Pool      *postgres.Postgres
	DSN       string
}

func dsn(host string, port nat.Port) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, host, port.Port(), pgDatabase)
}

// NewPostgres starts Postgres and applies the bridge migrations, the same
// ones bridge.New runs when PG_URL is set.
func NewPostgres(ctx context.Context) (*PostgresContainer, error) {
	req := testcontainers.ContainerRequest{
		Image: "postgres:17-alpine",
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       pgDatabase,
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForSQL("5432/tcp", "postgres", dsn).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	c := &PostgresContainer{Container: container}

	host, err := container.Host(ctx)
	if err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("mapped port: %w", err)
	}
	c.DSN = dsn(host, port)

	if err := bridge.ApplyMigrations(c.DSN, bridge.MigrationFS); err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	c.Pool, err = postgres.New(c.DSN, postgres.MaxPoolSize(4))
	if err != nil {
		c.Cleanup(ctx)
		return nil, fmt.Errorf("pool: %w", err)
	}

	return c, nil
}

func (c *PostgresContainer) Cleanup(ctx context.Context) {
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Container != nil {
		_ = c.Container.Terminate(ctx)
	}
}

// Truncate empties the journal between tests.
func (c *PostgresContainer) Truncate(ctx context.Context) error {
	_, err := c.Pool.Pool.Exec(ctx, "TRUNCATE TABLE webhook_events")
	return err
}

// CountEvents returns how many deliveries were journaled for orderID.
func (c *PostgresContainer) CountEvents(ctx context.Context, orderID string) (int, error) {
	var n int
	err := c.Pool.Pool.QueryRow(ctx, "SELECT count(*) FROM webhook_events WHERE order_id = $1", orderID).Scan(&n)
	return n, err
}
