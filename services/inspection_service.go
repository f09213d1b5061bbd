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
	"time"

	"github.com/google/uuid"

	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/monitoring"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/statemachine"
	"github.com/certifarm/certifarm/transformer"
	"github.com/certifarm/certifarm/utils"
	"github.com/certifarm/certifarm/vc"
)

type InspectionService struct {
	batchRepository      shared.BatchRepository
	eventRepository      shared.BatchStatusEventRepository
	inspectionRepository shared.InspectionRepository
	participants         shared.ParticipantDirectory
	publisher            shared.EventPublisher
	now                  func() time.Time
}

var _ shared.InspectionService = (*InspectionService)(nil)

func NewInspectionService(
	batchRepository shared.BatchRepository,
	eventRepository shared.BatchStatusEventRepository,
	inspectionRepository shared.InspectionRepository,
	participants shared.ParticipantDirectory,
	publisher shared.EventPublisher,
) *InspectionService {
	return &InspectionService{
		batchRepository:      batchRepository,
		eventRepository:      eventRepository,
		inspectionRepository: inspectionRepository,
		participants:         participants,
		publisher:            publisher,
		now:                  time.Now,
	}
}

func (s *InspectionService) StartInspection(ctx context.Context, batchID uuid.UUID, inspectorID string, inspectionType dtos.InspectionType) (models.Inspection, error) {
	batch, err := s.batchRepository.Read(batchID)
	if err != nil {
		return models.Inspection{}, database.ClassifyError(err)
	}

	transition, err := statemachine.Decide(batch.Status, statemachine.TriggerStartInspection, statemachine.Facts{
		HasInspection: batch.InspectionID != nil,
	})
	if err != nil {
		return models.Inspection{}, err
	}

	now := s.now()
	inspection := models.Inspection{
		Model:          models.Model{ID: uuid.New()},
		BatchID:        batch.ID,
		InspectorID:    inspectorID,
		InspectionDate: now,
		InspectionType: utils.OrElse(inspectionType, dtos.InspectionTypePhysical),
		OverallResult:  dtos.InspectionResultPending,
	}
	event := statemachine.Apply(&batch, transition, inspectorID, now)

	err = s.batchRepository.Transaction(func(tx shared.DB) error {
		if err := s.inspectionRepository.Create(tx, &inspection); err != nil {
			return err
		}
		ok, err := s.batchRepository.AttachInspection(tx, batch.ID, inspection.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: inspection already started for batch %s", shared.ErrConflict, batch.BatchID)
		}
		// an unassigned batch belongs to whoever starts inspecting it
		if batch.AssignedQAID == nil {
			if err := s.batchRepository.AssignQA(tx, batch.ID, inspectorID); err != nil {
				return err
			}
		}
		return s.eventRepository.Create(tx, &event)
	})
	if err != nil {
		return models.Inspection{}, database.ClassifyError(err)
	}

	monitoring.BatchTransitions.WithLabelValues(string(transition.To)).Inc()
	slog.Info("inspection started", "batchId", batch.BatchID, "inspection", inspection.ID, "inspector", inspectorID)
	batch.InspectionID = &inspection.ID
	s.publisher.PublishStatusChange(ctx, batch, event)

	return inspection, nil
}

// signerDID is the identity recorded on the inspection signature
func (s *InspectionService) signerDID(actorID string) string {
	participant, err := s.participants.Lookup(actorID)
	if err != nil {
		if !errors.Is(database.ClassifyError(err), shared.ErrNotFound) {
			slog.Warn("could not resolve inspector identity", "inspector", actorID, "err", err)
		}
		return vc.DIDOrDefault("", actorID)
	}
	return vc.DIDOrDefault(participant.DID, participant.ID)
}

func (s *InspectionService) SubmitInspectionResult(ctx context.Context, inspectionID uuid.UUID, actor dtos.Actor, req dtos.SubmitInspectionRequest) (models.Inspection, error) {
	if err := shared.V.Struct(req); err != nil {
		return models.Inspection{}, shared.NewInvalidInputError(err)
	}

	inspection, err := s.inspectionRepository.Read(inspectionID)
	if err != nil {
		return models.Inspection{}, database.ClassifyError(err)
	}
	if inspection.InspectorID != actor.ID && !actor.IsAdmin() {
		return models.Inspection{}, fmt.Errorf("%w: only the assigned inspector can submit results", shared.ErrUnauthorized)
	}
	if inspection.IsFinalized() {
		return models.Inspection{}, shared.NewPreconditionError("inspection result has already been submitted")
	}

	batch, err := s.batchRepository.Read(inspection.BatchID)
	if err != nil {
		return models.Inspection{}, database.ClassifyError(err)
	}

	transition, err := statemachine.Decide(batch.Status, statemachine.TriggerSubmitInspection, statemachine.Facts{
		HasInspection:    true,
		InspectionResult: req.OverallResult,
	})
	if err != nil {
		return models.Inspection{}, err
	}

	now := s.now()
	transformer.ApplyInspectionResult(&inspection, req)
	hash, err := vc.InspectionSignature(inspection.ID, inspection.BatchID, inspection.OverallResult, now)
	if err != nil {
		return models.Inspection{}, err
	}
	signedAt := now.UTC()
	inspection.SignedAt = &signedAt
	inspection.SignedBy = utils.Ptr(s.signerDID(actor.ID))
	inspection.SignatureHash = &hash

	event := statemachine.Apply(&batch, transition, actor.ID, now)
	err = s.batchRepository.Transaction(func(tx shared.DB) error {
		ok, err := s.inspectionRepository.Finalize(tx, &inspection)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: inspection result has already been submitted", shared.ErrConflict)
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
		return models.Inspection{}, database.ClassifyError(err)
	}

	monitoring.BatchTransitions.WithLabelValues(string(transition.To)).Inc()
	slog.Info("inspection submitted", "batchId", batch.BatchID, "inspection", inspection.ID, "result", inspection.OverallResult)
	s.publisher.PublishStatusChange(ctx, batch, event)

	return inspection, nil
}

func (s *InspectionService) ReadInspection(ctx context.Context, inspectionID uuid.UUID) (models.Inspection, error) {
	inspection, err := s.inspectionRepository.Read(inspectionID)
	if err != nil {
		return models.Inspection{}, database.ClassifyError(err)
	}
	return inspection, nil
}
