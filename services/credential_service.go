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

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/monitoring"
	"github.com/certifarm/certifarm/qr"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/statemachine"
	"github.com/certifarm/certifarm/transformer"
	"github.com/certifarm/certifarm/vc"
)

type CredentialService struct {
	batchRepository      shared.BatchRepository
	eventRepository      shared.BatchStatusEventRepository
	inspectionRepository shared.InspectionRepository
	credentialRepository shared.CredentialRepository
	participants         shared.ParticipantDirectory
	publisher            shared.EventPublisher
	builder              *vc.Builder
	verifyBaseURL        string
	now                  func() time.Time
}

var _ shared.CredentialService = (*CredentialService)(nil)

func NewCredentialService(
	batchRepository shared.BatchRepository,
	eventRepository shared.BatchStatusEventRepository,
	inspectionRepository shared.InspectionRepository,
	credentialRepository shared.CredentialRepository,
	participants shared.ParticipantDirectory,
	publisher shared.EventPublisher,
	config shared.Config,
) *CredentialService {
	return &CredentialService{
		batchRepository:      batchRepository,
		eventRepository:      eventRepository,
		inspectionRepository: inspectionRepository,
		credentialRepository: credentialRepository,
		participants:         participants,
		publisher:            publisher,
		builder:              vc.NewBuilder(config.VerifyBaseURL),
		verifyBaseURL:        config.VerifyBaseURL,
		now:                  time.Now,
	}
}

// exporterDID resolves the subject identity, an unknown exporter falls back to did:certifarm:<id>
func (s *CredentialService) exporterDID(ownerID string) string {
	participant, err := s.participants.Lookup(ownerID)
	if err != nil {
		if !errors.Is(database.ClassifyError(err), shared.ErrNotFound) {
			slog.Warn("could not resolve exporter identity", "exporter", ownerID, "err", err)
		}
		return ""
	}
	return participant.DID
}

func (s *CredentialService) IssueCredential(ctx context.Context, batchID uuid.UUID, issuer dtos.IssuerIdentity) (models.Credential, error) {
	if err := shared.V.Struct(issuer); err != nil {
		return models.Credential{}, shared.NewInvalidInputError(err)
	}

	batch, err := s.batchRepository.Read(batchID)
	if err != nil {
		return models.Credential{}, database.ClassifyError(err)
	}
	if batch.InspectionID == nil {
		return models.Credential{}, shared.NewPreconditionError("batch has not been inspected")
	}
	inspection, err := s.inspectionRepository.Read(*batch.InspectionID)
	if err != nil {
		return models.Credential{}, database.ClassifyError(err)
	}

	transition, err := statemachine.Decide(batch.Status, statemachine.TriggerIssueCredential, statemachine.Facts{
		HasInspection:    true,
		HasCredential:    batch.CredentialID != nil,
		InspectionResult: inspection.OverallResult,
	})
	if err != nil {
		return models.Credential{}, err
	}

	doc, err := s.builder.Build(vc.Input{
		Batch:       batch,
		Inspection:  inspection,
		Issuer:      issuer,
		ExporterDID: s.exporterDID(batch.OwnerID),
	})
	if err != nil {
		return models.Credential{}, err
	}

	// the row id and the urn share the same uuid so either resolves the credential
	id, err := uuid.Parse(vc.StripURN(doc.ID))
	if err != nil {
		return models.Credential{}, fmt.Errorf("credential id %s is not a uuid: %w", doc.ID, err)
	}

	credential := models.Credential{
		Model:                models.Model{ID: id},
		CredentialID:         doc.ID,
		BatchID:              batch.ID,
		InspectionID:         inspection.ID,
		VerifiableCredential: datatypes.NewJSONType(doc),
		ExpiresAt:            doc.ExpirationDate,
		Status:               dtos.CredentialStatusActive,
		IssuedBy:             issuer.ID,
	}

	// the stored code carries the verify url so a phone camera can follow it
	payload, err := qr.Encode(qr.BuildVerbose(credential, batch, s.verifyBaseURL))
	if err != nil {
		return models.Credential{}, err
	}
	image, err := qr.RenderDataURL(payload)
	if err != nil {
		return models.Credential{}, err
	}
	credential.QRCodePayload = payload
	credential.QRCodeData = image

	event := statemachine.Apply(&batch, transition, issuer.ID, doc.IssuanceDate)
	err = s.batchRepository.Transaction(func(tx shared.DB) error {
		if err := s.credentialRepository.Create(tx, &credential); err != nil {
			return err
		}
		ok, err := s.batchRepository.AttachCredential(tx, batch.ID, credential.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: credential already issued for batch %s", shared.ErrConflict, batch.BatchID)
		}
		return s.eventRepository.Create(tx, &event)
	})
	if err != nil {
		return models.Credential{}, database.ClassifyError(err)
	}

	monitoring.CredentialsIssued.Inc()
	monitoring.BatchTransitions.WithLabelValues(string(transition.To)).Inc()
	slog.Info("credential issued", "credential", vc.Describe(doc))
	batch.CredentialID = &credential.ID
	s.publisher.PublishStatusChange(ctx, batch, event)

	return credential, nil
}

// findCredential accepts the urn form, the bare uuid and the row id
func (s *CredentialService) findCredential(credentialID string) (models.Credential, error) {
	credential, err := s.credentialRepository.FindByCredentialID(vc.NormalizeCredentialID(credentialID))
	if err != nil {
		return models.Credential{}, database.ClassifyError(err)
	}
	return credential, nil
}

func canRevoke(credential models.Credential, actor dtos.Actor) bool {
	return actor.IsAdmin() || (actor.Role == dtos.RoleQAAgency && actor.ID == credential.IssuedBy)
}

func (s *CredentialService) RevokeCredential(ctx context.Context, credentialID string, actor dtos.Actor, reason string) (models.Credential, error) {
	credential, err := s.findCredential(credentialID)
	if err != nil {
		return models.Credential{}, err
	}
	if !canRevoke(credential, actor) {
		return models.Credential{}, fmt.Errorf("%w: only the issuer or an admin can revoke a credential", shared.ErrUnauthorized)
	}
	if credential.Status == dtos.CredentialStatusRevoked {
		return models.Credential{}, shared.NewPreconditionError("credential has already been revoked")
	}

	batch, err := s.batchRepository.Read(credential.BatchID)
	if err != nil {
		return models.Credential{}, database.ClassifyError(err)
	}
	transition, err := statemachine.Decide(batch.Status, statemachine.TriggerRevoke, statemachine.Facts{
		HasInspection: batch.InspectionID != nil,
		HasCredential: batch.CredentialID != nil,
		Reason:        reason,
	})
	if err != nil {
		return models.Credential{}, err
	}

	if reason == "" {
		reason = statemachine.DefaultRevokeReason
	}
	now := s.now()
	event := statemachine.Apply(&batch, transition, actor.ID, now)
	err = s.batchRepository.Transaction(func(tx shared.DB) error {
		ok, err := s.credentialRepository.Revoke(tx, credential.ID, actor.ID, reason, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: credential has already been revoked", shared.ErrConflict)
		}
		ok, err = s.batchRepository.TransitionStatus(tx, batch.ID, transition.From, transition.To)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: batch left status %s", shared.ErrConflict, transition.From)
		}
		return s.eventRepository.Create(tx, &event)
	})
	if err != nil {
		return models.Credential{}, database.ClassifyError(err)
	}

	monitoring.CredentialsRevoked.Inc()
	monitoring.BatchTransitions.WithLabelValues(string(transition.To)).Inc()
	slog.Info("credential revoked", "credentialId", credential.CredentialID, "by", actor.ID, "reason", reason)
	s.publisher.PublishStatusChange(ctx, batch, event)

	return s.credentialRepository.Read(credential.ID)
}

// VerifyCredential never fails for an invalid credential, the result carries the failed checks.
// It fails only when the credential cannot be found or storage is unavailable.
func (s *CredentialService) VerifyCredential(ctx context.Context, credentialID string) (dtos.VerificationReport, error) {
	credential, err := s.findCredential(credentialID)
	if err != nil {
		return dtos.VerificationReport{}, err
	}

	now := s.now()
	result := vc.Verify(credential.VerifiableCredential.Data(), credential.Status, now)

	if err := s.credentialRepository.IncrementVerificationCount(nil, credential.ID, now); err != nil {
		slog.Error("could not record verification", "credentialId", credential.CredentialID, "err", err)
	} else {
		credential.VerificationCount++
		credential.LastVerifiedAt = &now
	}

	monitoring.Verifications.WithLabelValues(strconv.FormatBool(result.IsValid)).Inc()
	return transformer.VerificationReportFor(credential, result), nil
}

func (s *CredentialService) GetCredentialByBatch(ctx context.Context, batchID uuid.UUID) (models.Credential, error) {
	credential, err := s.credentialRepository.FindByBatchID(batchID)
	if err != nil {
		return models.Credential{}, database.ClassifyError(err)
	}
	return credential, nil
}

func (s *CredentialService) GetCredential(ctx context.Context, credentialID string) (models.Credential, error) {
	return s.findCredential(credentialID)
}

// RenderQRCode encodes the verbose or compact payload and renders it as PNG
func (s *CredentialService) RenderQRCode(ctx context.Context, credentialID string, compact bool) (string, []byte, error) {
	credential, err := s.findCredential(credentialID)
	if err != nil {
		return "", nil, err
	}
	batch, err := s.batchRepository.Read(credential.BatchID)
	if err != nil {
		return "", nil, database.ClassifyError(err)
	}

	payloads := qr.Build(credential, batch, s.verifyBaseURL)
	var selected any = payloads.Verbose
	if compact {
		selected = payloads.Compact
	}
	content, err := qr.Encode(selected)
	if err != nil {
		return "", nil, err
	}
	png, err := qr.RenderPNG(content)
	if err != nil {
		return "", nil, err
	}
	return content, png, nil
}

// ExpireCredentials marks every active credential past its expiration as expired
func (s *CredentialService) ExpireCredentials(ctx context.Context) (int, error) {
	expired, err := s.credentialRepository.ExpireBefore(nil, s.now())
	if err != nil {
		return 0, database.ClassifyError(err)
	}
	for _, c := range expired {
		slog.Info("credential expired", "credentialId", c.CredentialID, "batch", c.BatchID)
	}
	monitoring.CredentialsExpired.Add(float64(len(expired)))
	return len(expired), nil
}
