//go:build integration

package sqlboiler_test

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var container *Container

var _ = BeforeSuite(func() {
	var err error

	container, err = SetupPostgres(context.Background())
	Expect(err).ToNot(HaveOccurred())
	Expect(container.DB).ToNot(BeNil())

	GinkgoWriter.Printf("PostgreSQL container started: %s\n", container.ConnStr)
})

var _ = AfterSuite(func() {
	if container != nil {
		Expect(container.Terminate(context.Background())).To(Succeed())
	}
})

// Container is a running PostgreSQL testcontainer with the submissions table created.
type Container struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	ConnStr   string
}

// SetupPostgres starts a PostgreSQL container and creates the schema.
func SetupPostgres(ctx context.Context) (*Container, error) {
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Container{Container: pgContainer, DB: db, ConnStr: connStr}, nil
}

// Terminate stops and removes the PostgreSQL container.
func (c *Container) Terminate(ctx context.Context) error {
	if c.DB != nil {
		c.DB.Close()
	}
	if c.Container != nil {
		return c.Container.Terminate(ctx)
	}
	return nil
}

const schema = `
	CREATE TABLE submissions (
		id UUID PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		score INTEGER NOT NULL,
		status VARCHAR(32) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX idx_submissions_score ON submissions(score DESC, id DESC);
`

// SeedSubmissions inserts count submissions with scores 1..count. Every third one is
// closed. Returns the ids in score order.
func SeedSubmissions(ctx context.Context, db *sql.DB, count int) ([]string, error) {
	ids := make([]string, count)
	for i := 0; i < count; i++ {
		id := uuid.New().String()
		status := "open"
		if i%3 == 0 {
			status = "closed"
		}

		_, err := db.ExecContext(ctx,
			`INSERT INTO submissions (id, title, score, status, created_at) VALUES ($1, $2, $3, $4, $5)`,
			id,
			fmt.Sprintf("Submission %02d", i+1),
			i+1,
			status,
			time.Now().Add(-time.Duration(count-i)*time.Hour),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to seed submission %d: %w", i, err)
		}
		ids[i] = id
	}
	return ids, nil
}

// CleanupTables truncates all test tables.
func CleanupTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, "TRUNCATE TABLE submissions")
	return err
}
