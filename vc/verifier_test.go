package vc

import (
	"testing"
	"time"

	"github.com/certifarm/certifarm/dtos"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	credential, err := BuildCredential(passedInput(), "https://certifarm.example.com", uuid.New(), issuedAt)
	require.NoError(t, err)

	tests := []struct {
		name     string
		status   dtos.CredentialStatus
		now      time.Time
		mutate   func(c *dtos.VerifiableCredential)
		valid    bool
		checks   dtos.VerificationChecks
		expected []string
	}{
		{
			name:     "active and within validity",
			status:   dtos.CredentialStatusActive,
			now:      issuedAt.Add(time.Hour),
			valid:    true,
			checks:   dtos.VerificationChecks{NotExpired: true, NotRevoked: true, SignaturePresent: true, IssuerTrusted: true},
			expected: []string{},
		},
		{
			name:     "valid on the exact expiration instant",
			status:   dtos.CredentialStatusActive,
			now:      issuedAt.AddDate(1, 0, 0),
			valid:    true,
			checks:   dtos.VerificationChecks{NotExpired: true, NotRevoked: true, SignaturePresent: true, IssuerTrusted: true},
			expected: []string{},
		},
		{
			name:     "expired",
			status:   dtos.CredentialStatusActive,
			now:      issuedAt.AddDate(1, 0, 1),
			checks:   dtos.VerificationChecks{NotExpired: false, NotRevoked: true, SignaturePresent: true, IssuerTrusted: true},
			expected: []string{"Credential has expired"},
		},
		{
			name:     "revoked",
			status:   dtos.CredentialStatusRevoked,
			now:      issuedAt.Add(time.Hour),
			checks:   dtos.VerificationChecks{NotExpired: true, NotRevoked: false, SignaturePresent: true, IssuerTrusted: true},
			expected: []string{"Credential has been revoked"},
		},
		{
			name:     "expired and revoked reports both",
			status:   dtos.CredentialStatusRevoked,
			now:      issuedAt.AddDate(2, 0, 0),
			checks:   dtos.VerificationChecks{NotExpired: false, NotRevoked: false, SignaturePresent: true, IssuerTrusted: true},
			expected: []string{"Credential has expired", "Credential has been revoked"},
		},
		{
			name:   "missing proof value does not invalidate",
			status: dtos.CredentialStatusActive,
			now:    issuedAt.Add(time.Hour),
			mutate: func(c *dtos.VerifiableCredential) {
				c.Proof = dtos.ProofBlock{Proof: dtos.NewEd25519Proof(issuedAt, "did:certifarm:qa-1#key-1", "")}
			},
			valid:    true,
			checks:   dtos.VerificationChecks{NotExpired: true, NotRevoked: true, SignaturePresent: false, IssuerTrusted: true},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := credential
			if tt.mutate != nil {
				tt.mutate(&c)
			}
			result := Verify(c, tt.status, tt.now)
			assert.Equal(t, tt.valid, result.IsValid)
			assert.Equal(t, tt.checks, result.Checks)
			assert.Equal(t, tt.expected, result.Errors)
		})
	}
}
