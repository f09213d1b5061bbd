// Copyright (C) 2024 l3montree GmbH
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

package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/certifarm/certifarm/controllers"
	"github.com/certifarm/certifarm/daemons"
	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/database/repositories"
	"github.com/certifarm/certifarm/router"
	"github.com/certifarm/certifarm/services"
	"github.com/certifarm/certifarm/shared"
)

var release string // Will be filled at build time

//	@title			CertiFarm API
//	@version		v1
//	@description	Agricultural export batch certification with verifiable credentials

// @host		localhost:8080
// @BasePath	/api/v1
func main() {
	shared.LoadConfig() // nolint: errcheck
	shared.InitLogger()
	config := shared.ConfigFromEnv()
	controllers.Version = release

	if config.ErrorTrackingDSN != "" {
		initSentry(config)

		// Catch panics
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				// Wait for events to be send to server
				sentry.Flush(time.Second * 5)
			}
		}()
	}

	pool, err := database.NewPgxConnPool(database.GetPoolConfigFromEnv())
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("Failed to setup database connection"))
	}
	db, err := database.NewGormDB(pool)
	if err != nil {
		slog.Error(err.Error())
		panic(errors.New("Failed to setup database connection"))
	}

	if !config.DisableAutoMigrate {
		slog.Info("running database migrations...")
		if err := database.RunMigrationsWithDB(db); err != nil {
			slog.Error("failed to run database migrations", "error", err)
			panic(errors.New("Failed to run database migrations"))
		}
	} else {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
	}

	fx.New(
		fx.Supply(db, pool, config),
		fx.Provide(database.NewPostgreSQLBroker),
		fx.Provide(func(broker *database.PostgreSQLBroker) shared.PubSubBroker { return broker }),
		fx.Invoke(func(lc fx.Lifecycle, broker *database.PostgreSQLBroker) {
			lc.Append(fx.StopHook(broker.Close))
		}),
		repositories.Module,
		services.Module,
		controllers.ControllerModule,
		router.RouterModule,
		daemons.Module,

		// we need to invoke all routers to register their routes
		fx.Invoke(func(BatchRouter router.BatchRouter) {}),
		fx.Invoke(func(InspectionRouter router.InspectionRouter) {}),
		fx.Invoke(func(CredentialRouter router.CredentialRouter) {}),
		fx.Invoke(func(server *echo.Echo) {}),
	).Run()
}

func initSentry(config shared.Config) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         config.ErrorTrackingDSN,
		Environment: config.Environment,
		Release:     release,

		// In debug mode, the debug information is printed to stdout to help you
		// understand what Sentry is doing.
		Debug: config.Environment == "dev",

		// Configures whether SDK should generate and attach stack traces to pure
		// capture message calls.
		AttachStacktrace: true,

		SendDefaultPII: false,
	})
	if err != nil {
		slog.Error("Failed to init logger", "err", err)
	}
}
