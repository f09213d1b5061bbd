package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certifarm/certifarm/dtos"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "participants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadSeed(t *testing.T) {
	t.Run("should map participants and default active to true", func(t *testing.T) {
		path := writeSeed(t, `
participants:
  - id: qa-1
    name: Agri QA
    organization: Agri QA Labs
    role: qa_agency
    did: did:example:qa1
    certificationNumber: QA-77
  - id: exp-1
    name: Spice Exports
    role: exporter
    active: false
`)
		participants, err := readSeed(path)
		require.NoError(t, err)
		require.Len(t, participants, 2)

		assert.Equal(t, "qa-1", participants[0].ID)
		assert.Equal(t, dtos.RoleQAAgency, participants[0].Role)
		assert.Equal(t, "QA-77", participants[0].CertificationNumber)
		assert.True(t, participants[0].Active)
		assert.False(t, participants[1].Active)
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		path := writeSeed(t, `
participants:
  - id: x
    name: X
    role: farmer
`)
		_, err := readSeed(path)
		assert.Error(t, err)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		_, err := readSeed(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestCredentialIDFromArg(t *testing.T) {
	assert.Equal(t, "urn:uuid:123", credentialIDFromArg("urn:uuid:123"))
	assert.Equal(t, "urn:uuid:3f1c2a52-6a0b-4a55-9d1e-8b6f0c1d2e3f", credentialIDFromArg(`{"i":"3f1c2a52-6a0b-4a55-9d1e-8b6f0c1d2e3f","b":"CF-2601-ABC123"}`))
	// unparsable payloads are passed through so the lookup reports not found
	assert.Equal(t, "{broken", credentialIDFromArg("{broken"))
}

func TestRenderReport(t *testing.T) {
	report := dtos.VerificationReport{
		Verified: false,
		VerificationResult: dtos.VerificationResult{
			Checks: dtos.VerificationChecks{NotExpired: true, NotRevoked: false, SignaturePresent: true, IssuerTrusted: true},
			Errors: []string{"Credential has been revoked"},
		},
		Credential: dtos.VerifiedCredentialSummary{
			ID:                "urn:uuid:3f1c2a52-6a0b-4a55-9d1e-8b6f0c1d2e3f",
			Status:            dtos.CredentialStatusRevoked,
			ExpiresAt:         time.Date(2027, 3, 14, 0, 0, 0, 0, time.UTC),
			VerificationCount: 4,
		},
		Product: dtos.SubjectProduct{Name: "Basmati Rice", BatchID: "CF-2603-AB12CD"},
		Issuer:  dtos.CredentialIssuer{Name: "Agri QA Labs"},
	}

	out := renderReport(report)
	assert.Contains(t, out, "urn:uuid:3f1c2a52-6a0b-4a55-9d1e-8b6f0c1d2e3f")
	assert.Contains(t, out, "CF-2603-AB12CD")
	assert.Contains(t, out, "2027-03-14")
	assert.Contains(t, out, "INVALID")
	assert.Contains(t, out, "Credential has been revoked")
}
