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
)

const (
	batchIDPrefix       = "CF-"
	batchIDSuffixLength = 6
	recentBatchWindow   = 7 * 24 * time.Hour
)

type BatchService struct {
	batchRepository      shared.BatchRepository
	eventRepository      shared.BatchStatusEventRepository
	inspectionRepository shared.InspectionRepository
	assignmentStrategy   shared.AssignmentStrategy
	publisher            shared.EventPublisher
	now                  func() time.Time
	newBatchID           func(now time.Time) (string, error)
}

var _ shared.BatchService = (*BatchService)(nil)

func NewBatchService(
	batchRepository shared.BatchRepository,
	eventRepository shared.BatchStatusEventRepository,
	inspectionRepository shared.InspectionRepository,
	assignmentStrategy shared.AssignmentStrategy,
	publisher shared.EventPublisher,
) *BatchService {
	return &BatchService{
		batchRepository:      batchRepository,
		eventRepository:      eventRepository,
		inspectionRepository: inspectionRepository,
		assignmentStrategy:   assignmentStrategy,
		publisher:            publisher,
		now:                  time.Now,
		newBatchID:           GenerateBatchID,
	}
}

// GenerateBatchID returns CF-YYMM-XXXXXX with six random characters from [A-Z0-9]
func GenerateBatchID(now time.Time) (string, error) {
	suffix, err := utils.RandomUpperAlphanumeric(batchIDSuffixLength)
	if err != nil {
		return "", fmt.Errorf("could not generate batch id: %w", err)
	}
	return batchIDPrefix + now.Format("0601") + "-" + suffix, nil
}

func validateBatchRequest(req dtos.CreateBatchRequest) error {
	if err := shared.V.Struct(req); err != nil {
		return shared.NewInvalidInputError(err)
	}
	if !req.Product.Quantity.Value.IsPositive() {
		return shared.NewInvalidInputError(errors.New("product quantity must be greater than zero"))
	}
	return nil
}

func (s *BatchService) CreateBatch(ctx context.Context, req dtos.CreateBatchRequest, ownerID string) (models.Batch, error) {
	if err := validateBatchRequest(req); err != nil {
		return models.Batch{}, err
	}

	batch := transformer.BatchFromCreateRequest(req)
	batch.ID = uuid.New()
	batch.OwnerID = ownerID

	assigned, err := s.assignmentStrategy.Assign(batch)
	if err != nil {
		return models.Batch{}, fmt.Errorf("could not assign qa agency: %w", database.ClassifyError(err))
	}
	batch.AssignedQAID = assigned

	now := s.now()
	event := statemachine.Apply(&batch, statemachine.Initial(), ownerID, now)

	// a batch id collision is retried exactly once with a fresh id
	for attempt := 0; ; attempt++ {
		batch.BatchID, err = s.newBatchID(now)
		if err != nil {
			return models.Batch{}, err
		}

		err = s.batchRepository.Transaction(func(tx shared.DB) error {
			if err := s.batchRepository.Create(tx, &batch); err != nil {
				return err
			}
			return s.eventRepository.Create(tx, &event)
		})
		if err == nil {
			break
		}
		if attempt == 0 && database.IsDuplicateKeyError(err) {
			slog.Warn("batch id collision, retrying with a new id", "batchId", batch.BatchID)
			continue
		}
		return models.Batch{}, fmt.Errorf("could not create batch: %w", database.ClassifyError(err))
	}

	batch.StatusHistory = []models.BatchStatusEvent{event}
	monitoring.BatchesCreated.Inc()
	slog.Info("batch submitted", "batchId", batch.BatchID, "owner", ownerID, "assignedQA", utils.SafeDereference(assigned))
	s.publisher.PublishStatusChange(ctx, batch, event)

	return batch, nil
}

// canModify reports whether the actor may change the batch details
func canModify(batch models.Batch, actor dtos.Actor) bool {
	return actor.IsAdmin() || batch.IsOwnedBy(actor.ID)
}

func (s *BatchService) UpdateBatch(ctx context.Context, id uuid.UUID, actor dtos.Actor, req dtos.UpdateBatchRequest) (models.Batch, error) {
	if err := validateBatchRequest(req); err != nil {
		return models.Batch{}, err
	}

	batch, err := s.batchRepository.Read(id)
	if err != nil {
		return models.Batch{}, database.ClassifyError(err)
	}
	if !canModify(batch, actor) {
		return models.Batch{}, fmt.Errorf("%w: only the owner can update the batch", shared.ErrUnauthorized)
	}
	if !statemachine.CanEdit(batch.Status) {
		return models.Batch{}, shared.NewPreconditionError(fmt.Sprintf("batch in status %s can no longer be edited", batch.Status))
	}

	transformer.ApplyBatchDetails(&batch, req)
	batch.UpdatedAt = s.now()
	// the status guard is repeated in the update so a concurrent transition wins
	if err := s.batchRepository.UpdateDetails(nil, &batch); err != nil {
		return models.Batch{}, database.ClassifyError(err)
	}

	return s.batchRepository.ReadWithHistory(id)
}

func (s *BatchService) AddDocument(ctx context.Context, id uuid.UUID, actor dtos.Actor, req dtos.AddDocumentRequest) (models.Batch, error) {
	if err := shared.V.Struct(req); err != nil {
		return models.Batch{}, shared.NewInvalidInputError(err)
	}

	batch, err := s.batchRepository.Read(id)
	if err != nil {
		return models.Batch{}, database.ClassifyError(err)
	}
	if !canModify(batch, actor) {
		return models.Batch{}, fmt.Errorf("%w: only the owner can attach documents", shared.ErrUnauthorized)
	}
	if statemachine.IsTerminal(batch.Status) {
		return models.Batch{}, shared.NewPreconditionError(fmt.Sprintf("cannot attach documents to a %s batch", batch.Status))
	}

	document := models.Document{
		Name:       req.Name,
		Type:       req.Type,
		URL:        req.URL,
		UploadedAt: s.now().UTC(),
	}
	ok, err := s.batchRepository.AppendDocument(nil, id, document)
	if err != nil {
		return models.Batch{}, database.ClassifyError(err)
	}
	if !ok {
		return models.Batch{}, shared.ErrNotFound
	}

	return s.batchRepository.ReadWithHistory(id)
}

func (s *BatchService) RejectBatch(ctx context.Context, id uuid.UUID, actor dtos.Actor, reason string) (models.Batch, error) {
	batch, err := s.batchRepository.Read(id)
	if err != nil {
		return models.Batch{}, database.ClassifyError(err)
	}

	facts := statemachine.Facts{HasInspection: batch.InspectionID != nil, Reason: reason}
	if batch.InspectionID != nil {
		inspection, err := s.inspectionRepository.Read(*batch.InspectionID)
		if err != nil {
			return models.Batch{}, database.ClassifyError(err)
		}
		if !actor.IsAdmin() && inspection.InspectorID != actor.ID {
			return models.Batch{}, fmt.Errorf("%w: only the inspector can reject the batch", shared.ErrUnauthorized)
		}
		facts.InspectionResult = inspection.OverallResult
	} else if !actor.IsAdmin() {
		return models.Batch{}, fmt.Errorf("%w: only the inspector can reject the batch", shared.ErrUnauthorized)
	}

	transition, err := statemachine.Decide(batch.Status, statemachine.TriggerReject, facts)
	if err != nil {
		return models.Batch{}, err
	}

	event := statemachine.Apply(&batch, transition, actor.ID, s.now())
	err = s.batchRepository.Transaction(func(tx shared.DB) error {
		ok, err := s.batchRepository.TransitionStatus(tx, batch.ID, transition.From, transition.To)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: batch left status %s", shared.ErrConflict, transition.From)
		}
		return s.eventRepository.Create(tx, &event)
	})
	if err != nil {
		return models.Batch{}, database.ClassifyError(err)
	}

	monitoring.BatchTransitions.WithLabelValues(string(transition.To)).Inc()
	slog.Info("batch rejected", "batchId", batch.BatchID, "by", actor.ID, "reason", reason)
	s.publisher.PublishStatusChange(ctx, batch, event)

	return s.batchRepository.ReadWithHistory(id)
}

// ReadBatch returns the batch with its ordered status history. Exporters only see their own batches.
func (s *BatchService) ReadBatch(ctx context.Context, id uuid.UUID, actor dtos.Actor) (models.Batch, error) {
	batch, err := s.batchRepository.ReadWithHistory(id)
	if err != nil {
		return models.Batch{}, database.ClassifyError(err)
	}
	if actor.Role == dtos.RoleExporter && !batch.IsOwnedBy(actor.ID) {
		return models.Batch{}, fmt.Errorf("%w: batch belongs to another exporter", shared.ErrUnauthorized)
	}
	return batch, nil
}

func scopeFor(actor dtos.Actor) shared.BatchScope {
	switch actor.Role {
	case dtos.RoleExporter:
		return shared.BatchScope{OwnerID: utils.Ptr(actor.ID)}
	case dtos.RoleQAAgency:
		return shared.BatchScope{AssignedQAID: utils.Ptr(actor.ID)}
	}
	return shared.BatchScope{}
}

func (s *BatchService) BatchStatistics(ctx context.Context, actor dtos.Actor) (dtos.BatchStatsDTO, error) {
	scope := scopeFor(actor)

	counts, err := s.batchRepository.CountByStatus(scope)
	if err != nil {
		return dtos.BatchStatsDTO{}, database.ClassifyError(err)
	}
	recent, err := s.batchRepository.CountCreatedSince(scope, s.now().Add(-recentBatchWindow))
	if err != nil {
		return dtos.BatchStatsDTO{}, database.ClassifyError(err)
	}

	stats := dtos.BatchStatsDTO{
		StatusBreakdown: make(map[dtos.BatchStatus]int64, len(dtos.AllBatchStatuses)),
		RecentBatches:   recent,
	}
	for _, status := range dtos.AllBatchStatuses {
		stats.StatusBreakdown[status] = counts[status]
		stats.TotalBatches += counts[status]
	}
	return stats, nil
}
