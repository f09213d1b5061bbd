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
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type participantRepository struct {
	db *gorm.DB
}

var _ shared.ParticipantRepository = (*participantRepository)(nil)

func NewParticipantRepository(db *gorm.DB) *participantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Read(id string) (models.Participant, error) {
	var participant models.Participant
	err := r.db.First(&participant, "id = ?", id).Error
	return participant, err
}

// FindActiveByRole returns active participants of the role, oldest registration first
func (r *participantRepository) FindActiveByRole(role dtos.Role) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.Where("role = ? AND active = ?", role, true).
		Order("created_at ASC").
		Order("id ASC").
		Find(&participants).Error
	return participants, err
}

func (r *participantRepository) Upsert(tx *gorm.DB, participants []models.Participant) error {
	if len(participants) == 0 {
		return nil
	}
	if tx == nil {
		tx = r.db
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "organization", "role", "did", "certification_number", "active", "updated_at"}),
	}).Create(&participants).Error
}
