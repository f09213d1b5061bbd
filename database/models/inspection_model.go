package models

import (
	"time"

	"github.com/certifarm/certifarm/dtos"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Inspection struct {
	Model
	BatchID        uuid.UUID           `json:"batch" gorm:"column:batch_id;type:uuid;not null;uniqueIndex"`
	InspectorID    string              `json:"inspector" gorm:"column:inspector_id;type:text;not null;index"`
	InspectionDate time.Time           `json:"inspectionDate" gorm:"not null"`
	InspectionType dtos.InspectionType `json:"inspectionType" gorm:"type:text;not null;default:'physical'"`

	QualityParameters datatypes.JSONType[dtos.QualityParameters] `json:"qualityParameters" gorm:"type:jsonb"`
	VisualInspection  datatypes.JSONType[dtos.VisualInspection]  `json:"visualInspection" gorm:"type:jsonb"`
	Compliance        datatypes.JSONType[dtos.Compliance]        `json:"compliance" gorm:"type:jsonb"`

	OverallResult   dtos.InspectionResult `json:"overallResult" gorm:"type:text;not null;default:'pending';index"`
	Remarks         string                `json:"remarks" gorm:"type:text"`
	Recommendations string                `json:"recommendations" gorm:"type:text"`

	SignedAt      *time.Time `json:"signedAt" gorm:"column:signed_at"`
	SignedBy      *string    `json:"signedBy" gorm:"column:signed_by;type:text"`
	SignatureHash *string    `json:"signatureHash" gorm:"column:signature_hash;type:text"`
}

func (i Inspection) TableName() string {
	return "inspections"
}

func (i Inspection) IsFinalized() bool {
	return i.OverallResult != dtos.InspectionResultPending
}

func (i Inspection) Passed() bool {
	return i.OverallResult == dtos.InspectionResultPass
}

// DigitalSignature returns nil until the inspection has been submitted
func (i Inspection) DigitalSignature() *dtos.DigitalSignature {
	if i.SignedAt == nil || i.SignatureHash == nil {
		return nil
	}
	signedBy := ""
	if i.SignedBy != nil {
		signedBy = *i.SignedBy
	}
	return &dtos.DigitalSignature{
		SignedAt:      *i.SignedAt,
		SignedBy:      signedBy,
		SignatureHash: *i.SignatureHash,
	}
}
