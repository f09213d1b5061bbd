package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

type ParticipantDirectory struct {
	mock.Mock
}

var _ shared.ParticipantDirectory = (*ParticipantDirectory)(nil)

func NewParticipantDirectory(t testingT) *ParticipantDirectory {
	m := &ParticipantDirectory{}
	register(&m.Mock, t)
	return m
}

func (m *ParticipantDirectory) Lookup(id string) (models.Participant, error) {
	args := m.Called(id)
	return get[models.Participant](args, 0), args.Error(1)
}

func (m *ParticipantDirectory) FirstActive(role dtos.Role) (*models.Participant, error) {
	args := m.Called(role)
	return get[*models.Participant](args, 0), args.Error(1)
}

func (m *ParticipantDirectory) Invalidate() {
	m.Called()
}
