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
	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

// FirstActiveQAStrategy assigns every batch to the earliest registered active QA agency
type FirstActiveQAStrategy struct {
	participants shared.ParticipantDirectory
}

var _ shared.AssignmentStrategy = (*FirstActiveQAStrategy)(nil)

func NewFirstActiveQAStrategy(participants shared.ParticipantDirectory) *FirstActiveQAStrategy {
	return &FirstActiveQAStrategy{participants: participants}
}

func (s *FirstActiveQAStrategy) Assign(batch models.Batch) (*string, error) {
	agency, err := s.participants.FirstActive(dtos.RoleQAAgency)
	if err != nil {
		return nil, err
	}
	if agency == nil {
		return nil, nil
	}
	id := agency.ID
	return &id, nil
}
