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
package shared

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/lmittmann/tint"
	"gorm.io/gorm"
)

type Server = *echo.Group
type MiddlewareFunc = echo.MiddlewareFunc
type Context = echo.Context
type DB = *gorm.DB

const (
	DefaultVerifyBaseURL       = "https://certifarm.example.com"
	DefaultExpirySweepInterval = time.Hour
	DefaultVerifyRateLimit     = 60
)

func SanitizeParam(s string) string {
	// remove trailing or leading slashes
	return strings.Trim(s, "/")
}

// InitLogger initializes the logger with a tint handler.
// tint is a simple logging library that allows to add colors to the log output.
func InitLogger() {
	w := os.Stderr

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		}),
	))
}

func LoadConfig() error {
	return godotenv.Load()
}

var V = validator.New()

// Config holds the process level settings read from the environment.
type Config struct {
	Port                string
	Environment         string
	ErrorTrackingDSN    string
	VerifyBaseURL       string
	DisableAutoMigrate  bool
	ExpirySweepInterval time.Duration
	VerifyRateLimit     int
	AllowOrigins        []string
}

func ConfigFromEnv() Config {
	cfg := Config{
		Port:                GetEnvOrDefault("PORT", "8080"),
		Environment:         GetEnvOrDefault("ENVIRONMENT", "dev"),
		ErrorTrackingDSN:    os.Getenv("ERROR_TRACKING_DSN"),
		VerifyBaseURL:       strings.TrimRight(GetEnvOrDefault("VERIFY_BASE_URL", DefaultVerifyBaseURL), "/"),
		ExpirySweepInterval: DefaultExpirySweepInterval,
		VerifyRateLimit:     DefaultVerifyRateLimit,
		AllowOrigins:        strings.Split(GetEnvOrDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000"), ","),
	}

	if disable, err := strconv.ParseBool(os.Getenv("DISABLE_AUTOMIGRATE")); err == nil {
		cfg.DisableAutoMigrate = disable
	}

	if interval := os.Getenv("EXPIRY_SWEEP_INTERVAL"); interval != "" {
		if val, err := time.ParseDuration(interval); err == nil && val > 0 {
			cfg.ExpirySweepInterval = val
		} else {
			slog.Warn("invalid EXPIRY_SWEEP_INTERVAL, using default", "value", interval, "default", DefaultExpirySweepInterval)
		}
	}

	if limit, err := strconv.Atoi(os.Getenv("VERIFY_RATE_LIMIT")); err == nil && limit > 0 {
		cfg.VerifyRateLimit = limit
	}

	return cfg
}

func GetEnvOrDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
