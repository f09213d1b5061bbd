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

package controllers

import (
	"context"
	"database/sql"
	"os"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/shared"
)

// StartedAt is used to report the process uptime
var StartedAt = time.Now()

// Version is set at build time
var Version string

type HealthController struct {
	db     shared.DB
	pool   *pgxpool.Pool
	broker shared.PubSubBroker
}

func NewHealthController(db shared.DB, pool *pgxpool.Pool, broker shared.PubSubBroker) *HealthController {
	return &HealthController{
		db:     db,
		pool:   pool,
		broker: broker,
	}
}

type healthChecker interface {
	IsHealthy(ctx context.Context) bool
}

// @Summary Health check
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (c *HealthController) Health(ctx shared.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return ctx.JSON(503, map[string]string{
			"status": "unhealthy",
			"error":  "failed to get database instance",
		})
	}

	if err := sqlDB.PingContext(ctx.Request().Context()); err != nil {
		return ctx.JSON(503, map[string]string{
			"status": "unhealthy",
			"error":  "database ping failed",
		})
	}

	if checker, ok := c.broker.(healthChecker); ok && !checker.IsHealthy(ctx.Request().Context()) {
		return ctx.JSON(503, map[string]string{
			"status": "unhealthy",
			"error":  "event broker is not connected",
		})
	}

	return ctx.JSON(200, map[string]string{
		"status": "healthy",
	})
}

type ProcessInfo struct {
	PID           int    `json:"pid"`
	Hostname      string `json:"hostname,omitempty"`
	UptimeSeconds int    `json:"uptimeSeconds"`
}

type RuntimeInfo struct {
	GoVersion     string `json:"goVersion,omitempty"`
	NumGoroutines int    `json:"numGoroutines,omitempty"`
	HeapAlloc     uint64 `json:"heapAlloc"`
}

// PoolInfo exposes non-sensitive pool configuration and runtime statistics
type PoolInfo struct {
	DBName          string `json:"dbName,omitempty"`
	MaxOpenConns    int32  `json:"maxOpenConns,omitempty"`
	ConnMaxLifetime string `json:"connMaxLifetime,omitempty"`
	TotalConns      int    `json:"totalConns,omitempty"`
	IdleConns       int    `json:"idleConns,omitempty"`
	AcquiredConns   int    `json:"acquiredConns,omitempty"`
}

type DatabaseInfo struct {
	sql.DBStats
	Status           string    `json:"status"`
	MigrationVersion *uint     `json:"migrationVersion,omitempty"`
	MigrationDirty   *bool     `json:"migrationDirty,omitempty"`
	MigrationError   *string   `json:"migrationError,omitempty"`
	Pool             *PoolInfo `json:"pool,omitempty"`
}

type InfoResponse struct {
	Version  string       `json:"version,omitempty"`
	Runtime  RuntimeInfo  `json:"runtime"`
	Process  ProcessInfo  `json:"process"`
	Database DatabaseInfo `json:"database"`
}

// @Summary Build, runtime and database diagnostics
// @Success 200 {object} InfoResponse
// @Router /info [get]
func (c *HealthController) Info(ctx shared.Context) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	resp := InfoResponse{
		Version: Version,
		Runtime: RuntimeInfo{
			GoVersion:     runtime.Version(),
			NumGoroutines: runtime.NumGoroutine(),
			HeapAlloc:     mem.HeapAlloc,
		},
		Process: ProcessInfo{
			PID:           os.Getpid(),
			UptimeSeconds: int(time.Since(StartedAt).Seconds()),
		},
		Database: DatabaseInfo{Status: "unhealthy"},
	}
	if host, _ := os.Hostname(); host != "" {
		resp.Process.Hostname = host
	}

	poolCfg := database.GetPoolConfigFromEnv()
	poolInfo := PoolInfo{
		DBName:          poolCfg.DBName,
		MaxOpenConns:    poolCfg.MaxOpenConns,
		ConnMaxLifetime: poolCfg.ConnMaxLifetime.String(),
	}
	if c.pool != nil {
		stats := c.pool.Stat()
		poolInfo.TotalConns = int(stats.TotalConns())
		poolInfo.IdleConns = int(stats.IdleConns())
		poolInfo.AcquiredConns = int(stats.AcquiredConns())
	}
	resp.Database.Pool = &poolInfo

	sqlDB, err := c.db.DB()
	if err != nil || sqlDB.PingContext(ctx.Request().Context()) != nil {
		return ctx.JSON(200, resp)
	}
	resp.Database.Status = "healthy"
	resp.Database.DBStats = sqlDB.Stats()

	if ver, dirty, err := database.GetMigrationVersionWithDB(c.db); err == nil {
		resp.Database.MigrationVersion = &ver
		resp.Database.MigrationDirty = &dirty
	} else {
		errStr := err.Error()
		resp.Database.MigrationError = &errStr
	}

	return ctx.JSON(200, resp)
}
