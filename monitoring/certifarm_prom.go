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

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var BatchesCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "certifarm_batches_created_total",
	Help: "Total number of submitted batches",
})

var BatchTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "certifarm_batch_transitions_total",
	Help: "Total number of committed batch status transitions by target status",
}, []string{"status"})

var CredentialsIssued = promauto.NewCounter(prometheus.CounterOpts{
	Name: "certifarm_credentials_issued_total",
	Help: "Total number of issued digital product passports",
})

var CredentialsRevoked = promauto.NewCounter(prometheus.CounterOpts{
	Name: "certifarm_credentials_revoked_total",
	Help: "Total number of revoked credentials",
})

var Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "certifarm_verifications_total",
	Help: "Total number of credential verifications by outcome",
}, []string{"valid"})

var CredentialsExpired = promauto.NewCounter(prometheus.CounterOpts{
	Name: "certifarm_credentials_expired_total",
	Help: "Total number of credentials marked expired by the expiry sweep",
})

var ExpirySweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "certifarm_daemon_expiry_sweep_duration_seconds",
	Help:    "Duration of the credential expiry sweep in seconds",
	Buckets: prometheus.DefBuckets,
})
