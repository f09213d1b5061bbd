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
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

const (
	participantCacheSize = 1024
	participantCacheTTL  = 5 * time.Minute
)

// ParticipantDirectory caches participant lookups in front of the repository.
// Misses are not cached so a freshly seeded participant is visible immediately.
type ParticipantDirectory struct {
	repository  shared.ParticipantRepository
	byID        *expirable.LRU[string, models.Participant]
	firstByRole *expirable.LRU[dtos.Role, models.Participant]
}

var _ shared.ParticipantDirectory = (*ParticipantDirectory)(nil)

func NewParticipantDirectory(repository shared.ParticipantRepository) *ParticipantDirectory {
	return &ParticipantDirectory{
		repository:  repository,
		byID:        expirable.NewLRU[string, models.Participant](participantCacheSize, nil, participantCacheTTL),
		firstByRole: expirable.NewLRU[dtos.Role, models.Participant](len(dtos.AllRoles), nil, participantCacheTTL),
	}
}

func (d *ParticipantDirectory) Lookup(id string) (models.Participant, error) {
	if p, ok := d.byID.Get(id); ok {
		return p, nil
	}
	p, err := d.repository.Read(id)
	if err != nil {
		return models.Participant{}, err
	}
	d.byID.Add(id, p)
	return p, nil
}

// FirstActive returns nil if no active participant has the role
func (d *ParticipantDirectory) FirstActive(role dtos.Role) (*models.Participant, error) {
	if p, ok := d.firstByRole.Get(role); ok {
		return &p, nil
	}
	participants, err := d.repository.FindActiveByRole(role)
	if err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		return nil, nil
	}
	p := participants[0]
	d.firstByRole.Add(role, p)
	return &p, nil
}

func (d *ParticipantDirectory) Invalidate() {
	d.byID.Purge()
	d.firstByRole.Purge()
}
