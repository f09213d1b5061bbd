package repositories_test

import (
	"sync"
	"testing"
	"time"

	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/database/repositories"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/integrationtestutil"
	"github.com/certifarm/certifarm/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newBatch(batchID string) models.Batch {
	return models.Batch{
		Model:   models.Model{ID: uuid.New()},
		BatchID: batchID,
		OwnerID: "exporter-1",
		Product: models.Product{
			Name:     "Basmati Rice",
			Category: dtos.CategoryRice,
			Quantity: models.Quantity{Value: decimal.NewFromInt(1000), Unit: dtos.UnitKg},
		},
		Origin:      models.Origin{Country: "India", State: "Punjab"},
		Destination: models.Destination{Country: "Germany", Port: "Hamburg"},
		Documents:   datatypes.NewJSONSlice([]models.Document{}),
		Status:      dtos.BatchStatusSubmitted,
		Priority:    dtos.PriorityNormal,
	}
}

func TestBatchLifecycleRepositories(t *testing.T) {
	db, _ := integrationtestutil.InitDatabaseContainer(t)

	batchRepository := repositories.NewBatchRepository(db)
	eventRepository := repositories.NewBatchStatusEventRepository(db)
	inspectionRepository := repositories.NewInspectionRepository(db)
	credentialRepository := repositories.NewCredentialRepository(db)

	t.Run("batch ids are unique", func(t *testing.T) {
		first := newBatch("CF-2601-UNIQ01")
		require.NoError(t, batchRepository.Create(nil, &first))

		second := newBatch("CF-2601-UNIQ01")
		err := batchRepository.Create(nil, &second)
		require.Error(t, err)
		assert.ErrorIs(t, database.ClassifyError(err), shared.ErrConflict)
	})

	t.Run("only one concurrent caller can attach an inspection", func(t *testing.T) {
		batch := newBatch("CF-2601-RACE01")
		require.NoError(t, batchRepository.Create(nil, &batch))

		var wg sync.WaitGroup
		results := make([]bool, 2)
		errs := make([]error, 2)
		for i := range 2 {
			wg.Go(func() {
				errs[i] = batchRepository.Transaction(func(tx *gorm.DB) error {
					inspection := models.Inspection{
						Model:          models.Model{ID: uuid.New()},
						BatchID:        batch.ID,
						InspectorID:    "qa-1",
						InspectionDate: time.Now(),
						InspectionType: dtos.InspectionTypePhysical,
						OverallResult:  dtos.InspectionResultPending,
					}
					if err := inspectionRepository.Create(tx, &inspection); err != nil {
						return err
					}
					ok, err := batchRepository.AttachInspection(tx, batch.ID, inspection.ID)
					results[i] = ok
					if err == nil && !ok {
						return shared.ErrConflict
					}
					return err
				})
			})
		}
		wg.Wait()

		failures := 0
		for _, err := range errs {
			if err != nil {
				failures++
				assert.ErrorIs(t, database.ClassifyError(err), shared.ErrConflict)
			}
		}
		assert.Equal(t, 1, failures)

		stored, err := batchRepository.Read(batch.ID)
		require.NoError(t, err)
		assert.Equal(t, dtos.BatchStatusUnderInspection, stored.Status)
		require.NotNil(t, stored.InspectionID)

		inspection, err := inspectionRepository.Read(*stored.InspectionID)
		require.NoError(t, err)
		assert.Equal(t, batch.ID, inspection.BatchID)
	})

	t.Run("finalize only applies to pending inspections", func(t *testing.T) {
		batch := newBatch("CF-2601-FINL01")
		require.NoError(t, batchRepository.Create(nil, &batch))
		inspection := models.Inspection{
			Model:          models.Model{ID: uuid.New()},
			BatchID:        batch.ID,
			InspectorID:    "qa-1",
			InspectionDate: time.Now(),
			OverallResult:  dtos.InspectionResultPending,
		}
		require.NoError(t, inspectionRepository.Create(nil, &inspection))

		inspection.OverallResult = dtos.InspectionResultPass
		inspection.QualityParameters = datatypes.NewJSONType(dtos.QualityParameters{Grade: dtos.GradeA})
		ok, err := inspectionRepository.Finalize(nil, &inspection)
		require.NoError(t, err)
		assert.True(t, ok)

		inspection.OverallResult = dtos.InspectionResultFail
		ok, err = inspectionRepository.Finalize(nil, &inspection)
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := inspectionRepository.Read(inspection.ID)
		require.NoError(t, err)
		assert.Equal(t, dtos.InspectionResultPass, stored.OverallResult)
		assert.Equal(t, dtos.GradeA, stored.QualityParameters.Data().Grade)
	})

	t.Run("ledger is returned in order", func(t *testing.T) {
		batch := newBatch("CF-2601-LEDG01")
		require.NoError(t, batchRepository.Create(nil, &batch))

		base := time.Now().Add(-time.Hour)
		for i, status := range []dtos.BatchStatus{dtos.BatchStatusSubmitted, dtos.BatchStatusUnderInspection} {
			event := models.NewBatchStatusEvent(batch.ID, status, "qa-1", "", base.Add(time.Duration(i)*time.Minute))
			require.NoError(t, eventRepository.Create(nil, &event))
		}

		withHistory, err := batchRepository.ReadWithHistory(batch.ID)
		require.NoError(t, err)
		require.Len(t, withHistory.StatusHistory, 2)
		assert.Equal(t, dtos.BatchStatusSubmitted, withHistory.StatusHistory[0].Status)
		assert.Equal(t, dtos.BatchStatusUnderInspection, withHistory.StatusHistory[1].Status)
	})

	t.Run("verification counter increments atomically", func(t *testing.T) {
		batch := newBatch("CF-2601-CRED01")
		require.NoError(t, batchRepository.Create(nil, &batch))
		inspection := models.Inspection{
			Model:          models.Model{ID: uuid.New()},
			BatchID:        batch.ID,
			InspectorID:    "qa-1",
			InspectionDate: time.Now(),
			OverallResult:  dtos.InspectionResultPass,
		}
		require.NoError(t, inspectionRepository.Create(nil, &inspection))

		credential := models.Credential{
			Model:                models.Model{ID: uuid.New()},
			CredentialID:         "urn:uuid:" + uuid.NewString(),
			BatchID:              batch.ID,
			InspectionID:         inspection.ID,
			VerifiableCredential: datatypes.NewJSONType(dtos.VerifiableCredential{}),
			ExpiresAt:            time.Now().Add(-time.Minute),
			Status:               dtos.CredentialStatusActive,
			IssuedBy:             "qa-1",
		}
		require.NoError(t, credentialRepository.Create(nil, &credential))

		var wg sync.WaitGroup
		for range 10 {
			wg.Go(func() {
				assert.NoError(t, credentialRepository.IncrementVerificationCount(nil, credential.ID, time.Now()))
			})
		}
		wg.Wait()

		stored, err := credentialRepository.FindByCredentialID(credential.CredentialID)
		require.NoError(t, err)
		assert.EqualValues(t, 10, stored.VerificationCount)
		assert.NotNil(t, stored.LastVerifiedAt)

		expired, err := credentialRepository.ExpireBefore(nil, time.Now())
		require.NoError(t, err)
		require.Len(t, expired, 1)
		assert.Equal(t, credential.ID, expired[0].ID)

		ok, err := credentialRepository.Revoke(nil, credential.ID, "admin", "fraud", time.Now())
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = credentialRepository.Revoke(nil, credential.ID, "admin", "again", time.Now())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestParticipantRepository(t *testing.T) {
	db, _ := integrationtestutil.InitDatabaseContainer(t)
	repository := repositories.NewParticipantRepository(db)

	require.NoError(t, repository.Upsert(nil, []models.Participant{
		{ID: "qa-2", Name: "Second Lab", Role: dtos.RoleQAAgency, Active: true, CreatedAt: time.Now()},
		{ID: "qa-1", Name: "First Lab", Role: dtos.RoleQAAgency, Active: true, CreatedAt: time.Now().Add(-time.Hour)},
		{ID: "exp-1", Name: "Exporter", Role: dtos.RoleExporter, Active: true},
	}))

	agencies, err := repository.FindActiveByRole(dtos.RoleQAAgency)
	require.NoError(t, err)
	require.Len(t, agencies, 2)
	assert.Equal(t, "qa-1", agencies[0].ID)

	require.NoError(t, repository.Upsert(nil, []models.Participant{
		{ID: "qa-1", Name: "First Lab", Role: dtos.RoleQAAgency, Active: false},
	}))
	agencies, err = repository.FindActiveByRole(dtos.RoleQAAgency)
	require.NoError(t, err)
	require.Len(t, agencies, 1)
	assert.Equal(t, "qa-2", agencies[0].ID)
}
