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
	"time"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type credentialRepository struct {
	db *gorm.DB
	utils.Repository[uuid.UUID, models.Credential, *gorm.DB]
}

var _ shared.CredentialRepository = (*credentialRepository)(nil)

func NewCredentialRepository(db *gorm.DB) *credentialRepository {
	return &credentialRepository{
		db:         db,
		Repository: newGormRepository[uuid.UUID, models.Credential](db),
	}
}

func (r *credentialRepository) FindByCredentialID(credentialID string) (models.Credential, error) {
	var credential models.Credential
	err := r.db.First(&credential, "credential_id = ?", credentialID).Error
	return credential, err
}

func (r *credentialRepository) FindByBatchID(batchID uuid.UUID) (models.Credential, error) {
	var credential models.Credential
	err := r.db.First(&credential, "batch_id = ?", batchID).Error
	return credential, err
}

// IncrementVerificationCount bumps the counter in the database so concurrent verifications are never lost
func (r *credentialRepository) IncrementVerificationCount(tx *gorm.DB, id uuid.UUID, at time.Time) error {
	return r.GetDB(tx).Model(&models.Credential{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"verification_count": gorm.Expr("verification_count + 1"),
			"last_verified_at":   at,
		}).Error
}

func (r *credentialRepository) Revoke(tx *gorm.DB, id uuid.UUID, revokedBy, reason string, at time.Time) (bool, error) {
	res := r.GetDB(tx).Model(&models.Credential{}).
		Where("id = ? AND status <> ?", id, dtos.CredentialStatusRevoked).
		Updates(map[string]any{
			"status":            dtos.CredentialStatusRevoked,
			"revoked_at":        at,
			"revoked_by":        revokedBy,
			"revocation_reason": reason,
			"updated_at":        at,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *credentialRepository) ExpireBefore(tx *gorm.DB, now time.Time) ([]models.Credential, error) {
	var expired []models.Credential
	err := r.GetDB(tx).Model(&expired).
		Clauses(clause.Returning{}).
		Where("status = ? AND expires_at < ?", dtos.CredentialStatusActive, now).
		Updates(map[string]any{
			"status":     dtos.CredentialStatusExpired,
			"updated_at": now,
		}).Error
	return expired, err
}
