package qr

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func fixture(status dtos.CredentialStatus) (models.Credential, models.Batch) {
	issued := time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)
	doc := dtos.VerifiableCredential{
		ID:             "urn:uuid:11111111-2222-4333-8444-555555555555",
		Issuer:         dtos.CredentialIssuer{Name: "Spice Lab"},
		IssuanceDate:   issued,
		ExpirationDate: issued.AddDate(1, 0, 0),
		CredentialSubject: dtos.CredentialSubject{
			QualityCertification: dtos.QualityCertification{Grade: "A", OverallResult: "pass"},
		},
	}
	credential := models.Credential{
		Model:                models.Model{ID: uuid.New()},
		CredentialID:         doc.ID,
		VerifiableCredential: datatypes.NewJSONType(doc),
		Status:               status,
	}
	batch := models.Batch{
		BatchID: "CF-2603-AB12CD",
		Product: models.Product{
			Name:     "Turmeric",
			Category: dtos.CategorySpices,
			Quantity: models.Quantity{Value: decimal.RequireFromString("2.5"), Unit: dtos.UnitTonnes},
		},
		Destination: models.Destination{Country: "Netherlands"},
	}
	return credential, batch
}

func TestBuildVerbose(t *testing.T) {
	credential, batch := fixture(dtos.CredentialStatusActive)
	payload := BuildVerbose(credential, batch, "https://certifarm.example.com/")

	assert.Equal(t, VerbosePayload{
		Version:  "1.0",
		ID:       "urn:uuid:11111111-2222-4333-8444-555555555555",
		BatchID:  "CF-2603-AB12CD",
		Product:  "Turmeric",
		Category: "spices",
		Quantity: "2.5tonnes",
		Origin:   "India",
		Dest:     "Netherlands",
		Grade:    "A",
		Result:   "pass",
		Issuer:   "Spice Lab",
		Issued:   "2026-03-14T09:26:53.589Z",
		Expires:  "2027-03-14T09:26:53.589Z",
		Verify:   "https://certifarm.example.com/verify/urn:uuid:11111111-2222-4333-8444-555555555555",
	}, payload)

	encoded, err := Encode(payload)
	require.NoError(t, err)
	var keys map[string]any
	require.NoError(t, json.Unmarshal([]byte(encoded), &keys))
	for _, key := range []string{"v", "id", "bid", "prod", "cat", "qty", "origin", "dest", "grade", "result", "issuer", "issued", "expires", "verify"} {
		assert.Contains(t, keys, key)
	}
}

func TestBuildCompact(t *testing.T) {
	tests := []struct {
		status   dtos.CredentialStatus
		expected int
	}{
		{dtos.CredentialStatusActive, 1},
		{dtos.CredentialStatusRevoked, 0},
		{dtos.CredentialStatusExpired, 0},
		{dtos.CredentialStatusSuspended, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			credential, batch := fixture(tt.status)
			payload := BuildCompact(credential, batch)
			assert.Equal(t, "11111111-2222-4333-8444-555555555555", payload.ID)
			assert.False(t, strings.HasPrefix(payload.ID, "urn:"))
			assert.Equal(t, "2026-03-14", payload.Date)
			assert.Equal(t, tt.expected, payload.Status)
		})
	}
}

func TestDecodeCredentialID(t *testing.T) {
	credential, batch := fixture(dtos.CredentialStatusActive)
	payloads := Build(credential, batch, shared.DefaultVerifyBaseURL)

	verbose, err := Encode(payloads.Verbose)
	require.NoError(t, err)
	compact, err := Encode(payloads.Compact)
	require.NoError(t, err)

	for name, content := range map[string]string{"verbose": verbose, "compact": compact} {
		t.Run(name, func(t *testing.T) {
			id, err := DecodeCredentialID(content)
			require.NoError(t, err)
			assert.Equal(t, credential.CredentialID, id)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := DecodeCredentialID("not json")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		_, err = DecodeCredentialID(`{"b":"CF-2603-AB12CD"}`)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestRenderDataURL(t *testing.T) {
	url, err := RenderDataURL(`{"i":"11111111-2222-4333-8444-555555555555"}`)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	png, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
