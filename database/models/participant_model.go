package models

import (
	"time"

	"github.com/certifarm/certifarm/dtos"
)

// Participant is an exporter, QA agency or admin known to the registry.
type Participant struct {
	ID                  string    `json:"id" gorm:"primarykey;type:text"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	Name                string    `json:"name" gorm:"type:text;not null"`
	Organization        string    `json:"organization" gorm:"type:text"`
	Role                dtos.Role `json:"role" gorm:"type:text;not null;index"`
	DID                 string    `json:"did" gorm:"column:did;type:text"`
	CertificationNumber string    `json:"certificationNumber" gorm:"column:certification_number;type:text"`
	Active              bool      `json:"active" gorm:"not null"`
}

func (p Participant) TableName() string {
	return "participants"
}

func (p Participant) IssuerIdentity() dtos.IssuerIdentity {
	return dtos.IssuerIdentity{
		ID:                  p.ID,
		Name:                p.Name,
		Organization:        p.Organization,
		DID:                 p.DID,
		CertificationNumber: p.CertificationNumber,
	}
}
