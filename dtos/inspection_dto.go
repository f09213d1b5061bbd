package dtos

import (
	"time"

	"github.com/google/uuid"
)

type InspectionResult string

const (
	InspectionResultPending         InspectionResult = "pending"
	InspectionResultPass            InspectionResult = "pass"
	InspectionResultFail            InspectionResult = "fail"
	InspectionResultConditionalPass InspectionResult = "conditional_pass"
)

func (r InspectionResult) IsFinal() bool {
	switch r {
	case InspectionResultPass, InspectionResultFail, InspectionResultConditionalPass:
		return true
	}
	return false
}

type InspectionType string

const (
	InspectionTypePhysical InspectionType = "physical"
	InspectionTypeVirtual  InspectionType = "virtual"
	InspectionTypeLabBased InspectionType = "lab_based"
)

type Grade string

const (
	GradeA        Grade = "A"
	GradeB        Grade = "B"
	GradeC        Grade = "C"
	GradeD        Grade = "D"
	GradeRejected Grade = "Rejected"
)

type MeasuredParameter struct {
	Value      *float64 `json:"value,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Acceptable *bool    `json:"acceptable,omitempty"`
	MaxAllowed *float64 `json:"maxAllowed,omitempty"`
}

type PesticideResidue struct {
	MeasuredParameter
	Detected        bool     `json:"detected"`
	PesticidesFound []string `json:"pesticidesFound,omitempty"`
}

type MetalReading struct {
	Value      *float64 `json:"value,omitempty"`
	Acceptable *bool    `json:"acceptable,omitempty"`
}

type HeavyMetals struct {
	Lead    MetalReading `json:"lead"`
	Cadmium MetalReading `json:"cadmium"`
	Arsenic MetalReading `json:"arsenic"`
}

type QualityParameters struct {
	Moisture         MeasuredParameter `json:"moisture"`
	ForeignMatter    MeasuredParameter `json:"foreignMatter"`
	PesticideResidue PesticideResidue  `json:"pesticideResidue"`
	Aflatoxin        MeasuredParameter `json:"aflatoxin"`
	HeavyMetals      HeavyMetals       `json:"heavyMetals"`
	Grade            Grade             `json:"grade,omitempty" validate:"omitempty,oneof=A B C D Rejected"`
	OrganicCertified bool              `json:"organicCertified"`
}

// AllAcceptable reports whether no parameter was explicitly marked unacceptable.
// Parameters without a verdict count as acceptable.
func (q QualityParameters) AllAcceptable() bool {
	verdicts := []*bool{
		q.Moisture.Acceptable,
		q.ForeignMatter.Acceptable,
		q.PesticideResidue.Acceptable,
		q.Aflatoxin.Acceptable,
		q.HeavyMetals.Lead.Acceptable,
		q.HeavyMetals.Cadmium.Acceptable,
		q.HeavyMetals.Arsenic.Acceptable,
	}
	for _, v := range verdicts {
		if v != nil && !*v {
			return false
		}
	}
	return true
}

type VisualFinding struct {
	Acceptable *bool  `json:"acceptable,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
}

type VisualInspection struct {
	Color     VisualFinding `json:"color"`
	Texture   VisualFinding `json:"texture"`
	Odor      VisualFinding `json:"odor"`
	Packaging VisualFinding `json:"packaging"`
}

type Compliance struct {
	FSSAICompliant              bool     `json:"fssaiCompliant"`
	ExportStandards             bool     `json:"exportStandards"`
	DestinationCountryStandards bool     `json:"destinationCountryStandards"`
	ISOCompliant                bool     `json:"isoCompliant"`
	ISOCodes                    []string `json:"isoCodes"`
}

type DigitalSignature struct {
	SignedAt      time.Time `json:"signedAt"`
	SignedBy      string    `json:"signedBy"`
	SignatureHash string    `json:"signatureHash"`
}

type StartInspectionRequest struct {
	InspectionType InspectionType `json:"inspectionType" validate:"omitempty,oneof=physical virtual lab_based"`
}

type SubmitInspectionRequest struct {
	QualityParameters QualityParameters `json:"qualityParameters"`
	VisualInspection  VisualInspection  `json:"visualInspection"`
	Compliance        Compliance        `json:"compliance"`
	OverallResult     InspectionResult  `json:"overallResult" validate:"required,oneof=pass fail conditional_pass pending"`
	Remarks           string            `json:"remarks" validate:"max=2000"`
	Recommendations   string            `json:"recommendations"`
}

type InspectionDTO struct {
	ID                uuid.UUID         `json:"id"`
	Batch             uuid.UUID         `json:"batch"`
	Inspector         string            `json:"inspector"`
	InspectionDate    time.Time         `json:"inspectionDate"`
	InspectionType    InspectionType    `json:"inspectionType"`
	QualityParameters QualityParameters `json:"qualityParameters"`
	VisualInspection  VisualInspection  `json:"visualInspection"`
	Compliance        Compliance        `json:"compliance"`
	OverallResult     InspectionResult  `json:"overallResult"`
	Remarks           string            `json:"remarks,omitempty"`
	Recommendations   string            `json:"recommendations,omitempty"`
	DigitalSignature  *DigitalSignature `json:"digitalSignature,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}
