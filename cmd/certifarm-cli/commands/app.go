// Copyright (C) 2026 l3montree GmbH
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

package commands

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/database/repositories"
	"github.com/certifarm/certifarm/services"
	"github.com/certifarm/certifarm/shared"
)

type connection struct {
	pool *pgxpool.Pool
	db   shared.DB
}

func (c connection) Close() {
	c.pool.Close()
}

func connect() (connection, error) {
	shared.LoadConfig() // nolint: errcheck
	pool, err := database.NewPgxConnPool(database.GetPoolConfigFromEnv())
	if err != nil {
		return connection{}, fmt.Errorf("could not connect to database: %w", err)
	}
	db, err := database.NewGormDB(pool)
	if err != nil {
		pool.Close()
		return connection{}, fmt.Errorf("could not connect to database: %w", err)
	}
	return connection{pool: pool, db: db}, nil
}

// populate builds the service graph the server uses and fills the targets from it
func populate(conn connection, targets ...any) error {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(conn.db, conn.pool, shared.ConfigFromEnv()),
		fx.Provide(fx.Annotate(database.NewPostgreSQLBroker, fx.As(new(shared.PubSubBroker)))),
		repositories.Module,
		services.Module,
		fx.Populate(targets...),
	)
	return app.Err()
}
