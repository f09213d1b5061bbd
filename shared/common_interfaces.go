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
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/utils"
)

type BatchRepository interface {
	utils.Repository[uuid.UUID, models.Batch, DB]
	// ReadWithHistory loads the batch together with its ordered status ledger
	ReadWithHistory(id uuid.UUID) (models.Batch, error)
	UpdateDetails(tx DB, batch *models.Batch) error
	AppendDocument(tx DB, id uuid.UUID, document models.Document) (bool, error)
	AssignQA(tx DB, id uuid.UUID, qaID string) error

	// the following conditional updates report whether a row matched the expected state
	AttachInspection(tx DB, id uuid.UUID, inspectionID uuid.UUID) (bool, error)
	AttachCredential(tx DB, id uuid.UUID, credentialID uuid.UUID) (bool, error)
	TransitionStatus(tx DB, id uuid.UUID, from, to dtos.BatchStatus) (bool, error)

	CountByStatus(scope BatchScope) (map[dtos.BatchStatus]int64, error)
	CountCreatedSince(scope BatchScope, since time.Time) (int64, error)
}

// BatchScope restricts aggregate queries to the batches an actor is involved in. Empty means all.
type BatchScope struct {
	OwnerID      *string
	AssignedQAID *string
}

type BatchStatusEventRepository interface {
	Create(tx DB, event *models.BatchStatusEvent) error
}

type InspectionRepository interface {
	utils.Repository[uuid.UUID, models.Inspection, DB]
	// Finalize stores the inspection result if it is still pending
	Finalize(tx DB, inspection *models.Inspection) (bool, error)
}

type CredentialRepository interface {
	utils.Repository[uuid.UUID, models.Credential, DB]
	FindByCredentialID(credentialID string) (models.Credential, error)
	FindByBatchID(batchID uuid.UUID) (models.Credential, error)
	IncrementVerificationCount(tx DB, id uuid.UUID, at time.Time) error
	Revoke(tx DB, id uuid.UUID, revokedBy, reason string, at time.Time) (bool, error)
	ExpireBefore(tx DB, now time.Time) ([]models.Credential, error)
}

type ParticipantRepository interface {
	Read(id string) (models.Participant, error)
	FindActiveByRole(role dtos.Role) ([]models.Participant, error)
	Upsert(tx DB, participants []models.Participant) error
}

type ParticipantDirectory interface {
	Lookup(id string) (models.Participant, error)
	FirstActive(role dtos.Role) (*models.Participant, error)
	Invalidate()
}

// AssignmentStrategy picks the QA agency responsible for a new batch.
// A nil id leaves the batch unassigned.
type AssignmentStrategy interface {
	Assign(batch models.Batch) (*string, error)
}

type BatchService interface {
	CreateBatch(ctx context.Context, req dtos.CreateBatchRequest, ownerID string) (models.Batch, error)
	UpdateBatch(ctx context.Context, id uuid.UUID, actor dtos.Actor, req dtos.UpdateBatchRequest) (models.Batch, error)
	AddDocument(ctx context.Context, id uuid.UUID, actor dtos.Actor, req dtos.AddDocumentRequest) (models.Batch, error)
	RejectBatch(ctx context.Context, id uuid.UUID, actor dtos.Actor, reason string) (models.Batch, error)
	ReadBatch(ctx context.Context, id uuid.UUID, actor dtos.Actor) (models.Batch, error)
	BatchStatistics(ctx context.Context, actor dtos.Actor) (dtos.BatchStatsDTO, error)
}

type InspectionService interface {
	StartInspection(ctx context.Context, batchID uuid.UUID, inspectorID string, inspectionType dtos.InspectionType) (models.Inspection, error)
	SubmitInspectionResult(ctx context.Context, inspectionID uuid.UUID, actor dtos.Actor, req dtos.SubmitInspectionRequest) (models.Inspection, error)
	ReadInspection(ctx context.Context, inspectionID uuid.UUID) (models.Inspection, error)
}

type CredentialService interface {
	IssueCredential(ctx context.Context, batchID uuid.UUID, issuer dtos.IssuerIdentity) (models.Credential, error)
	RevokeCredential(ctx context.Context, credentialID string, actor dtos.Actor, reason string) (models.Credential, error)
	VerifyCredential(ctx context.Context, credentialID string) (dtos.VerificationReport, error)
	GetCredentialByBatch(ctx context.Context, batchID uuid.UUID) (models.Credential, error)
	GetCredential(ctx context.Context, credentialID string) (models.Credential, error)
	// RenderQRCode returns the encoded payload and its PNG image
	RenderQRCode(ctx context.Context, credentialID string, compact bool) (string, []byte, error)
	ExpireCredentials(ctx context.Context) (int, error)
}

// EventPublisher announces committed batch transitions.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, batch models.Batch, event models.BatchStatusEvent)
}

type DaemonRunner interface {
	Start(ctx context.Context)
}
