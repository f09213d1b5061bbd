package models

import (
	"time"

	"github.com/certifarm/certifarm/dtos"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Credential struct {
	Model
	// CredentialID is the "urn:uuid:" identifier embedded in the verifiable credential
	CredentialID string    `json:"credentialId" gorm:"column:credential_id;type:text;uniqueIndex;not null"`
	BatchID      uuid.UUID `json:"batch" gorm:"column:batch_id;type:uuid;not null;uniqueIndex"`
	InspectionID uuid.UUID `json:"inspection" gorm:"column:inspection_id;type:uuid;not null"`

	VerifiableCredential datatypes.JSONType[dtos.VerifiableCredential] `json:"verifiableCredential" gorm:"column:verifiable_credential;type:jsonb;not null"`
	ExpiresAt            time.Time                                     `json:"expiresAt" gorm:"column:expires_at;not null;index"`

	QRCodeData    string `json:"qrCodeData" gorm:"column:qr_code_data;type:text"`
	QRCodePayload string `json:"qrCodePayload" gorm:"column:qr_code_payload;type:text"`

	Status dtos.CredentialStatus `json:"status" gorm:"type:text;not null;default:'active';index"`

	RevokedAt        *time.Time `json:"revokedAt" gorm:"column:revoked_at"`
	RevokedBy        *string    `json:"revokedBy" gorm:"column:revoked_by;type:text"`
	RevocationReason *string    `json:"revocationReason" gorm:"column:revocation_reason;type:text"`

	VerificationCount int64      `json:"verificationCount" gorm:"column:verification_count;not null;default:0"`
	LastVerifiedAt    *time.Time `json:"lastVerifiedAt" gorm:"column:last_verified_at"`

	IssuedBy string `json:"issuedBy" gorm:"column:issued_by;type:text;not null;index"`
}

func (c Credential) TableName() string {
	return "credentials"
}

func (c Credential) IsActive() bool {
	return c.Status == dtos.CredentialStatusActive
}

func (c Credential) Revocation() *dtos.RevocationDTO {
	if c.RevokedAt == nil {
		return nil
	}
	r := dtos.RevocationDTO{RevokedAt: *c.RevokedAt}
	if c.RevokedBy != nil {
		r.RevokedBy = *c.RevokedBy
	}
	if c.RevocationReason != nil {
		r.Reason = *c.RevocationReason
	}
	return &r
}
