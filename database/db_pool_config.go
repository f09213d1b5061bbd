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

package database

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/certifarm/certifarm/shared"
)

type PoolConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// GetPoolConfigFromEnv reads POSTGRES_* for the connection and DB_* for pool tuning.
func GetPoolConfigFromEnv() PoolConfig {
	return PoolConfig{
		User:     shared.GetEnvOrDefault("POSTGRES_USER", "certifarm"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		Host:     shared.GetEnvOrDefault("POSTGRES_HOST", "localhost"),
		Port:     shared.GetEnvOrDefault("POSTGRES_PORT", "5432"),
		DBName:   shared.GetEnvOrDefault("POSTGRES_DB", "certifarm"),

		MaxOpenConns:    int32Env("DB_MAX_OPEN_CONNS", 25, 1),
		MinConns:        int32Env("DB_MIN_CONNS", 5, 0),
		ConnMaxLifetime: durationEnv("DB_CONN_MAX_LIFETIME", 4*time.Hour),
		ConnMaxIdleTime: durationEnv("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
	}
}

func int32Env(key string, def int32, min int) int32 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < min {
		slog.Warn("ignoring invalid pool setting", "key", key, "value", raw)
		return def
	}
	return int32(val)
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("ignoring invalid pool setting", "key", key, "value", raw)
		return def
	}
	return val
}
