//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/banahub/bayshore-backend-go/pkg/db/migrate"
	database "github.com/banahub/bayshore-backend-go/pkg/db/postgres"
)

// SetupTestDb creates a pg connection pool for a containerized test
// database with the current schema applied.
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("bayshore-backend-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbURL := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	if err = migrate.MigrateDB(dbURL); err != nil {
		log.Fatal(err)
	}

	return database.InitWithURL(dbURL)
}

// SetupExternalTestDb connects to the database referenced by TESTDB_URL.
// Used on CI where the database is provided as a service.
func SetupExternalTestDb() *pgxpool.Pool {
	dbURL := os.Getenv("TESTDB_URL")
	if err := migrate.MigrateDB(dbURL); err != nil {
		log.Fatal(err)
	}
	return database.InitWithURL(dbURL)
}

func ClearCrownTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from crown")
}

func ClearContestLockTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from contest_lock")
}

func ClearGhostTrailTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from ghost_trail")
}

func ClearBattleRecordTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from battle_record")
}

func ClearTimeAttackTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from time_attack_record")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearGhostTrailTable(pool)
	ClearBattleRecordTable(pool)
	ClearContestLockTable(pool)
	ClearTimeAttackTable(pool)
	ClearCrownTable(pool)
}
