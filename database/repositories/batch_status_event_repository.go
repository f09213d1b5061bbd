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
	"github.com/certifarm/certifarm/shared"
	"gorm.io/gorm"
)

// batchStatusEventRepository has no update or delete, the ledger is append-only
type batchStatusEventRepository struct {
	db *gorm.DB
}

var _ shared.BatchStatusEventRepository = (*batchStatusEventRepository)(nil)

func NewBatchStatusEventRepository(db *gorm.DB) *batchStatusEventRepository {
	return &batchStatusEventRepository{db: db}
}

func (r *batchStatusEventRepository) Create(tx *gorm.DB, event *models.BatchStatusEvent) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(event).Error
}
