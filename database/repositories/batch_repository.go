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

package repositories

import (
	"encoding/json"
	"time"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type batchRepository struct {
	db *gorm.DB
	utils.Repository[uuid.UUID, models.Batch, *gorm.DB]
}

var _ shared.BatchRepository = (*batchRepository)(nil)

func NewBatchRepository(db *gorm.DB) *batchRepository {
	return &batchRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Batch](db),
	}
}

func (r *batchRepository) ReadWithHistory(id uuid.UUID) (models.Batch, error) {
	var batch models.Batch
	err := r.db.Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("batch_status_events.created_at ASC")
	}).First(&batch, "id = ?", id).Error
	return batch, err
}

// editableColumns are the owner-editable columns, lifecycle columns are never written here
var editableColumns = []string{
	"product_name", "product_category", "product_variety", "product_quantity_value", "product_quantity_unit",
	"product_harvest_date", "product_packaging_date",
	"origin_farm_location", "origin_district", "origin_state", "origin_country", "origin_latitude", "origin_longitude",
	"destination_country", "destination_port", "destination_importer_name", "destination_importer_contact",
	"notes", "priority", "updated_at",
}

// UpdateDetails writes the editable fields as long as the batch is still in an editable status
func (r *batchRepository) UpdateDetails(tx *gorm.DB, batch *models.Batch) error {
	res := r.GetDB(tx).Model(batch).
		Clauses(clause.Returning{}).
		Where("status IN ?", []dtos.BatchStatus{dtos.BatchStatusSubmitted, dtos.BatchStatusUnderInspection}).
		Select(editableColumns).
		Updates(batch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrConflict
	}
	return nil
}

func (r *batchRepository) AppendDocument(tx *gorm.DB, id uuid.UUID, document models.Document) (bool, error) {
	raw, err := json.Marshal([]models.Document{document})
	if err != nil {
		return false, err
	}
	res := r.GetDB(tx).Model(&models.Batch{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"documents":  gorm.Expr("documents || ?::jsonb", string(raw)),
			"updated_at": time.Now(),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *batchRepository) AssignQA(tx *gorm.DB, id uuid.UUID, qaID string) error {
	return r.GetDB(tx).Model(&models.Batch{}).
		Where("id = ?", id).
		Update("assigned_qa_id", qaID).Error
}

func (r *batchRepository) AttachInspection(tx *gorm.DB, id uuid.UUID, inspectionID uuid.UUID) (bool, error) {
	res := r.GetDB(tx).Model(&models.Batch{}).
		Where("id = ? AND status = ? AND inspection_id IS NULL", id, dtos.BatchStatusSubmitted).
		Updates(map[string]any{
			"status":        dtos.BatchStatusUnderInspection,
			"inspection_id": inspectionID,
			"updated_at":    time.Now(),
		})
	return res.RowsAffected == 1, res.Error
}

func (r *batchRepository) AttachCredential(tx *gorm.DB, id uuid.UUID, credentialID uuid.UUID) (bool, error) {
	res := r.GetDB(tx).Model(&models.Batch{}).
		Where("id = ? AND status = ? AND credential_id IS NULL", id, dtos.BatchStatusInspectionComplete).
		Updates(map[string]any{
			"status":        dtos.BatchStatusCertified,
			"credential_id": credentialID,
			"updated_at":    time.Now(),
		})
	return res.RowsAffected == 1, res.Error
}

func (r *batchRepository) TransitionStatus(tx *gorm.DB, id uuid.UUID, from, to dtos.BatchStatus) (bool, error) {
	res := r.GetDB(tx).Model(&models.Batch{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	return res.RowsAffected == 1, res.Error
}

func batchScope(scope shared.BatchScope) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.OwnerID != nil {
			db = db.Where("owner_id = ?", *scope.OwnerID)
		}
		if scope.AssignedQAID != nil {
			db = db.Where("assigned_qa_id = ?", *scope.AssignedQAID)
		}
		return db
	}
}

func (r *batchRepository) CountByStatus(scope shared.BatchScope) (map[dtos.BatchStatus]int64, error) {
	var rows []struct {
		Status dtos.BatchStatus
		Count  int64
	}
	err := r.db.Model(&models.Batch{}).
		Scopes(batchScope(scope)).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	res := make(map[dtos.BatchStatus]int64, len(rows))
	for _, row := range rows {
		res[row.Status] = row.Count
	}
	return res, nil
}

func (r *batchRepository) CountCreatedSince(scope shared.BatchScope, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Batch{}).
		Scopes(batchScope(scope)).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
