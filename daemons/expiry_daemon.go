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

package daemons

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/certifarm/certifarm/monitoring"
	"github.com/certifarm/certifarm/shared"
)

// ExpiryDaemon keeps the stored credential status in line with the expiration dates.
// Verification decides by timestamp, so a missed sweep never makes a credential valid.
type ExpiryDaemon struct {
	credentialService shared.CredentialService
	interval          time.Duration
}

var _ shared.DaemonRunner = (*ExpiryDaemon)(nil)

func NewExpiryDaemon(credentialService shared.CredentialService, config shared.Config) *ExpiryDaemon {
	interval := config.ExpirySweepInterval
	if interval <= 0 {
		interval = shared.DefaultExpirySweepInterval
	}
	return &ExpiryDaemon{
		credentialService: credentialService,
		interval:          interval,
	}
}

func (d *ExpiryDaemon) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		monitoring.ExpirySweepDuration.Observe(time.Since(start).Seconds())
	}()

	expired, err := d.credentialService.ExpireCredentials(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not expire credentials: %w", err)
	}
	slog.Info("expiry sweep finished", "expired", expired, "duration", time.Since(start))
	return expired, nil
}

func (d *ExpiryDaemon) sweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			monitoring.RecoverAndAlert("expiry sweep panicked", fmt.Errorf("%v", r))
		}
	}()
	if _, err := d.RunOnce(ctx); err != nil {
		slog.Error("expiry sweep failed", "err", err)
	}
}

// Start sweeps once immediately and then on every tick until ctx is done
func (d *ExpiryDaemon) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		d.sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				slog.Info("expiry daemon stopped")
				return
			case <-ticker.C:
				d.sweep(ctx)
			}
		}
	}()
}
