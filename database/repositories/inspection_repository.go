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
	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type inspectionRepository struct {
	db *gorm.DB
	utils.Repository[uuid.UUID, models.Inspection, *gorm.DB]
}

var _ shared.InspectionRepository = (*inspectionRepository)(nil)

func NewInspectionRepository(db *gorm.DB) *inspectionRepository {
	return &inspectionRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Inspection](db),
	}
}

var resultColumns = []string{
	"quality_parameters", "visual_inspection", "compliance", "overall_result",
	"remarks", "recommendations", "signed_at", "signed_by", "signature_hash", "updated_at",
}

func (r *inspectionRepository) Finalize(tx *gorm.DB, inspection *models.Inspection) (bool, error) {
	res := r.GetDB(tx).Model(inspection).
		Where("overall_result = ?", dtos.InspectionResultPending).
		Select(resultColumns).
		Updates(inspection)
	return res.RowsAffected == 1, res.Error
}
