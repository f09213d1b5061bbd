package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/mocks"
)

func TestParticipantDirectory(t *testing.T) {
	t.Run("should serve repeated lookups from the cache until invalidated", func(t *testing.T) {
		store := newMemStore()
		store.participants["qa-1"] = models.Participant{ID: "qa-1", Role: dtos.RoleQAAgency, DID: "did:example:old", Active: true}
		directory := NewParticipantDirectory(memParticipantRepository{store})

		p, err := directory.Lookup("qa-1")
		require.NoError(t, err)
		assert.Equal(t, "did:example:old", p.DID)

		store.participants["qa-1"] = models.Participant{ID: "qa-1", Role: dtos.RoleQAAgency, DID: "did:example:new", Active: true}
		p, err = directory.Lookup("qa-1")
		require.NoError(t, err)
		assert.Equal(t, "did:example:old", p.DID)

		directory.Invalidate()
		p, err = directory.Lookup("qa-1")
		require.NoError(t, err)
		assert.Equal(t, "did:example:new", p.DID)
	})

	t.Run("should not cache misses", func(t *testing.T) {
		store := newMemStore()
		directory := NewParticipantDirectory(memParticipantRepository{store})

		_, err := directory.Lookup("exp-1")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		store.participants["exp-1"] = models.Participant{ID: "exp-1", Role: dtos.RoleExporter, Active: true}
		_, err = directory.Lookup("exp-1")
		assert.NoError(t, err)
	})

	t.Run("should pick the first active participant of the role", func(t *testing.T) {
		store := newMemStore()
		store.participants["qa-a"] = models.Participant{ID: "qa-a", Role: dtos.RoleQAAgency, Active: false}
		store.participants["qa-b"] = models.Participant{ID: "qa-b", Role: dtos.RoleQAAgency, Active: true}
		store.participants["qa-c"] = models.Participant{ID: "qa-c", Role: dtos.RoleQAAgency, Active: true}
		directory := NewParticipantDirectory(memParticipantRepository{store})

		p, err := directory.FirstActive(dtos.RoleQAAgency)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "qa-b", p.ID)

		p, err = directory.FirstActive(dtos.RoleAdmin)
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestFirstActiveQAStrategy(t *testing.T) {
	t.Run("should assign the first active agency", func(t *testing.T) {
		directory := mocks.NewParticipantDirectory(t)
		directory.On("FirstActive", dtos.RoleQAAgency).Return(&models.Participant{ID: "qa-1"}, nil)

		id, err := NewFirstActiveQAStrategy(directory).Assign(models.Batch{})
		require.NoError(t, err)
		require.NotNil(t, id)
		assert.Equal(t, "qa-1", *id)
	})

	t.Run("should leave the batch unassigned without an agency", func(t *testing.T) {
		directory := mocks.NewParticipantDirectory(t)
		directory.On("FirstActive", dtos.RoleQAAgency).Return(nil, nil)

		id, err := NewFirstActiveQAStrategy(directory).Assign(models.Batch{})
		require.NoError(t, err)
		assert.Nil(t, id)
	})
}
