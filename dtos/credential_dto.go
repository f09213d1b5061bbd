package dtos

import (
	"time"

	"github.com/google/uuid"
)

type CredentialStatus string

const (
	CredentialStatusActive    CredentialStatus = "active"
	CredentialStatusRevoked   CredentialStatus = "revoked"
	CredentialStatusExpired   CredentialStatus = "expired"
	CredentialStatusSuspended CredentialStatus = "suspended"
)

type Role string

const (
	RoleExporter Role = "exporter"
	RoleQAAgency Role = "qa_agency"
	RoleAdmin    Role = "admin"
)

var AllRoles = []Role{RoleExporter, RoleQAAgency, RoleAdmin}

// Actor is the authenticated party performing an operation.
type Actor struct {
	ID   string `json:"id" validate:"required"`
	Role Role   `json:"role" validate:"required,oneof=exporter qa_agency admin"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IssuerIdentity describes the QA agency issuing a credential.
type IssuerIdentity struct {
	ID                  string `json:"id" validate:"required"`
	Name                string `json:"name"`
	Organization        string `json:"organization"`
	DID                 string `json:"did"`
	CertificationNumber string `json:"certificationNumber"`
}

type RevokeCredentialRequest struct {
	Reason string `json:"reason"`
}

type RevocationDTO struct {
	RevokedAt time.Time `json:"revokedAt"`
	RevokedBy string    `json:"revokedBy"`
	Reason    string    `json:"reason"`
}

type QRCodeDTO struct {
	Data    string `json:"data,omitempty"`
	Payload string `json:"payload,omitempty"`
}

type CredentialDTO struct {
	ID                   uuid.UUID            `json:"id"`
	CredentialID         string               `json:"credentialId"`
	Batch                uuid.UUID            `json:"batch"`
	Inspection           uuid.UUID            `json:"inspection"`
	VerifiableCredential VerifiableCredential `json:"verifiableCredential"`
	QRCode               *QRCodeDTO           `json:"qrCode,omitempty"`
	Status               CredentialStatus     `json:"status"`
	Revocation           *RevocationDTO       `json:"revocation,omitempty"`
	VerificationCount    int64                `json:"verificationCount"`
	LastVerifiedAt       *time.Time           `json:"lastVerifiedAt,omitempty"`
	IssuedBy             string               `json:"issuedBy"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

type VerificationChecks struct {
	NotExpired       bool `json:"notExpired"`
	NotRevoked       bool `json:"notRevoked"`
	SignaturePresent bool `json:"signatureValid"`
	IssuerTrusted    bool `json:"issuerTrusted"`
}

type VerificationResult struct {
	IsValid bool               `json:"isValid"`
	Checks  VerificationChecks `json:"checks"`
	Errors  []string           `json:"errors"`
}

type VerifiedCredentialSummary struct {
	ID                string           `json:"id"`
	Status            CredentialStatus `json:"status"`
	IssuedAt          time.Time        `json:"issuedAt"`
	ExpiresAt         time.Time        `json:"expiresAt"`
	VerificationCount int64            `json:"verificationCount"`
}

// VerificationReport is the public answer to a verification request.
type VerificationReport struct {
	Verified             bool                      `json:"verified"`
	VerificationResult   VerificationResult        `json:"verificationResult"`
	Credential           VerifiedCredentialSummary `json:"credential"`
	Product              SubjectProduct            `json:"product"`
	Origin               SubjectOrigin             `json:"origin"`
	Destination          SubjectDestination        `json:"destination"`
	QualityCertification QualityCertification      `json:"qualityCertification"`
	Issuer               CredentialIssuer          `json:"issuer"`
}
