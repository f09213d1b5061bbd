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
package statemachine

import (
	"testing"
	"time"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		current  dtos.BatchStatus
		trigger  Trigger
		facts    Facts
		expected dtos.BatchStatus
		remarks  string
		wantErr  bool
	}{
		{
			name:     "start inspection on a submitted batch",
			current:  dtos.BatchStatusSubmitted,
			trigger:  TriggerStartInspection,
			expected: dtos.BatchStatusUnderInspection,
			remarks:  "Inspection started by QA agency",
		},
		{
			name:    "start inspection twice",
			current: dtos.BatchStatusSubmitted,
			trigger: TriggerStartInspection,
			facts:   Facts{HasInspection: true},
			wantErr: true,
		},
		{
			name:     "submit a final result",
			current:  dtos.BatchStatusUnderInspection,
			trigger:  TriggerSubmitInspection,
			facts:    Facts{HasInspection: true, InspectionResult: dtos.InspectionResultConditionalPass},
			expected: dtos.BatchStatusInspectionComplete,
			remarks:  "Inspection completed with result: conditional_pass",
		},
		{
			name:    "submit a pending result",
			current: dtos.BatchStatusUnderInspection,
			trigger: TriggerSubmitInspection,
			facts:   Facts{HasInspection: true, InspectionResult: dtos.InspectionResultPending},
			wantErr: true,
		},
		{
			name:     "issue after a passed inspection",
			current:  dtos.BatchStatusInspectionComplete,
			trigger:  TriggerIssueCredential,
			facts:    Facts{HasInspection: true, InspectionResult: dtos.InspectionResultPass},
			expected: dtos.BatchStatusCertified,
			remarks:  "Digital Product Passport issued",
		},
		{
			name:    "issue after a failed inspection",
			current: dtos.BatchStatusInspectionComplete,
			trigger: TriggerIssueCredential,
			facts:   Facts{HasInspection: true, InspectionResult: dtos.InspectionResultFail},
			wantErr: true,
		},
		{
			name:    "issue after a conditional pass",
			current: dtos.BatchStatusInspectionComplete,
			trigger: TriggerIssueCredential,
			facts:   Facts{HasInspection: true, InspectionResult: dtos.InspectionResultConditionalPass},
			wantErr: true,
		},
		{
			name:    "issue twice",
			current: dtos.BatchStatusInspectionComplete,
			trigger: TriggerIssueCredential,
			facts:   Facts{HasInspection: true, HasCredential: true, InspectionResult: dtos.InspectionResultPass},
			wantErr: true,
		},
		{
			name:    "issue on a submitted batch",
			current: dtos.BatchStatusSubmitted,
			trigger: TriggerIssueCredential,
			facts:   Facts{InspectionResult: dtos.InspectionResultPass},
			wantErr: true,
		},
		{
			name:     "reject a failed inspection",
			current:  dtos.BatchStatusInspectionComplete,
			trigger:  TriggerReject,
			facts:    Facts{HasInspection: true, InspectionResult: dtos.InspectionResultFail, Reason: "Aflatoxin above limit"},
			expected: dtos.BatchStatusRejected,
			remarks:  "Batch rejected: Aflatoxin above limit",
		},
		{
			name:    "reject a passed inspection",
			current: dtos.BatchStatusInspectionComplete,
			trigger: TriggerReject,
			facts:   Facts{HasInspection: true, InspectionResult: dtos.InspectionResultPass},
			wantErr: true,
		},
		{
			name:     "revoke a certified batch without reason",
			current:  dtos.BatchStatusCertified,
			trigger:  TriggerRevoke,
			facts:    Facts{HasInspection: true, HasCredential: true, InspectionResult: dtos.InspectionResultPass},
			expected: dtos.BatchStatusRevoked,
			remarks:  "Credential revoked: Revoked by issuer",
		},
		{
			name:    "revoke is terminal",
			current: dtos.BatchStatusRevoked,
			trigger: TriggerRevoke,
			facts:   Facts{HasCredential: true},
			wantErr: true,
		},
		{
			name:    "rejected is terminal",
			current: dtos.BatchStatusRejected,
			trigger: TriggerStartInspection,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transition, err := Decide(tt.current, tt.trigger, tt.facts)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, shared.ErrPreconditionFailed)
				var precondition *shared.PreconditionError
				require.ErrorAs(t, err, &precondition)
				assert.NotEmpty(t, precondition.Rule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.current, transition.From)
			assert.Equal(t, tt.expected, transition.To)
			assert.Equal(t, tt.remarks, transition.Remarks)
		})
	}
}

func TestNextRejectsEveryUnlistedEdge(t *testing.T) {
	triggers := []Trigger{TriggerStartInspection, TriggerSubmitInspection, TriggerIssueCredential, TriggerReject, TriggerRevoke}
	allowed := 0
	for _, status := range dtos.AllBatchStatuses {
		for _, trigger := range triggers {
			if _, err := Next(status, trigger); err == nil {
				allowed++
			} else {
				assert.ErrorIs(t, err, shared.ErrPreconditionFailed)
			}
		}
	}
	assert.Equal(t, 5, allowed)
}

func TestApply(t *testing.T) {
	batch := models.Batch{Model: models.Model{ID: uuid.New()}, Status: dtos.BatchStatusSubmitted}
	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	created := Apply(&batch, Initial(), "exporter-1", at)
	transition, err := Decide(batch.Status, TriggerStartInspection, Facts{})
	require.NoError(t, err)
	started := Apply(&batch, transition, "qa-1", at.Add(time.Minute))

	assert.Equal(t, dtos.BatchStatusUnderInspection, batch.Status)
	assert.Equal(t, dtos.BatchStatusSubmitted, created.Status)
	assert.Equal(t, dtos.BatchStatusUnderInspection, started.Status)
	assert.NotEqual(t, created.ID, started.ID)
	assert.Equal(t, batch.ID, started.BatchID)
	assert.Equal(t, "qa-1", started.ChangedBy)
	assert.Equal(t, "Batch submitted for quality inspection", created.Remarks)
	assert.True(t, started.CreatedAt.After(created.CreatedAt))
}

func TestCanEdit(t *testing.T) {
	assert.True(t, CanEdit(dtos.BatchStatusSubmitted))
	assert.True(t, CanEdit(dtos.BatchStatusUnderInspection))
	assert.False(t, CanEdit(dtos.BatchStatusInspectionComplete))
	assert.False(t, CanEdit(dtos.BatchStatusCertified))
	assert.False(t, CanEdit(dtos.BatchStatusRevoked))
}
