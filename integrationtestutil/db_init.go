// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package integrationtestutil

import (
	"context"
	"testing"
	"time"

	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/shared"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const postgresImage = "postgres:16-alpine"

// InitDatabaseContainer starts a postgres container, runs the embedded migrations and
// terminates the container when the test finishes. Skipped in short mode.
func InitDatabaseContainer(t *testing.T) (shared.DB, *pgxpool.Pool) {
	t.Helper()
	pool := InitRawDatabaseContainer(t)

	db, err := database.NewGormDB(pool)
	require.NoError(t, err)

	require.NoError(t, database.RunMigrationsWithDB(db), "failed to run migrations")
	return db, pool
}

func InitRawDatabaseContainer(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}

	ctx := context.Background()

	dbName := "certifarm"
	dbUser := "user"
	dbPassword := "password"

	postgresC, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})
	require.NoError(t, err, "failed to start postgres container")

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)
	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pool, err := database.NewPgxConnPool(database.PoolConfig{
		MaxOpenConns:    5,
		ConnMaxIdleTime: 5 * time.Minute,
		ConnMaxLifetime: 30 * time.Minute,
		User:            dbUser,
		DBName:          dbName,
		Password:        dbPassword,
		Host:            host,
		Port:            port.Port(),
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}
