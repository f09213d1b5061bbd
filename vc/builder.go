// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package vc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/utils"
	"github.com/google/uuid"
)

const (
	DefaultVariety = "Standard"
	DefaultGrade   = dtos.GradeA
	withinLimits   = "Within limits"
)

// Input is everything the builder reads. The builder copies values out of it.
type Input struct {
	Batch      models.Batch
	Inspection models.Inspection
	Issuer     dtos.IssuerIdentity
	// ExporterDID is the resolved identity of the batch owner, empty falls back to did:certifarm:<ownerId>
	ExporterDID string
}

type Builder struct {
	contextBaseURL string
	now            func() time.Time
	newID          func() uuid.UUID
}

func NewBuilder(contextBaseURL string) *Builder {
	return &Builder{
		contextBaseURL: strings.TrimRight(contextBaseURL, "/"),
		now:            time.Now,
		newID:          uuid.New,
	}
}

func (b *Builder) Build(in Input) (dtos.VerifiableCredential, error) {
	return BuildCredential(in, b.contextBaseURL, b.newID(), b.now())
}

// IssuerDID returns the issuer DID, falling back to did:certifarm:<id>
func IssuerDID(issuer dtos.IssuerIdentity) string {
	return DIDOrDefault(issuer.DID, issuer.ID)
}

func DIDOrDefault(did, id string) string {
	if did != "" {
		return did
	}
	return "did:certifarm:" + id
}

// BuildCredential assembles the credential document for a batch whose inspection passed.
// It has no side effects, the same input, id and time always produce the same document.
func BuildCredential(in Input, contextBaseURL string, id uuid.UUID, now time.Time) (dtos.VerifiableCredential, error) {
	if in.Inspection.OverallResult != dtos.InspectionResultPass {
		return dtos.VerifiableCredential{}, shared.NewPreconditionError("inspection must pass before a credential can be issued")
	}
	if in.Batch.CredentialID != nil {
		return dtos.VerifiableCredential{}, shared.NewPreconditionError("credential already exists for this batch")
	}

	issuedAt := now.UTC().Truncate(time.Millisecond)
	credentialID := URNPrefix + id.String()
	issuerDID := IssuerDID(in.Issuer)

	return dtos.VerifiableCredential{
		Context: []string{
			dtos.W3CCredentialsContext,
			dtos.Ed25519SuiteContext,
			contextBaseURL + dtos.DPPContextPath,
		},
		ID:   credentialID,
		Type: []string{dtos.CredentialTypeVerifiable, dtos.CredentialTypeDPP, dtos.CredentialTypeAgriculturalQuality},
		Issuer: dtos.CredentialIssuer{
			ID:                  issuerDID,
			Name:                utils.OrElse(in.Issuer.Organization, in.Issuer.Name),
			Type:                dtos.IssuerTypeQAAgency,
			CertificationNumber: utils.OrElse(in.Issuer.CertificationNumber, dtos.DefaultCertificationNumber),
		},
		IssuanceDate:      issuedAt,
		ExpirationDate:    ExpirationFor(issuedAt),
		CredentialSubject: buildSubject(in),
		Proof: dtos.ProofBlock{
			Proof: NewPlaceholderProof(credentialID, in.Batch.BatchID, issuerDID, issuedAt),
		},
	}, nil
}

// ExpirationFor is one calendar year after issuance
func ExpirationFor(issuedAt time.Time) time.Time {
	return issuedAt.AddDate(1, 0, 0)
}

func buildSubject(in Input) dtos.CredentialSubject {
	batch := in.Batch
	inspection := in.Inspection
	quality := inspection.QualityParameters.Data()

	var geo *dtos.GeoCoordinatesDTO
	if batch.Origin.Latitude != nil && batch.Origin.Longitude != nil {
		geo = &dtos.GeoCoordinatesDTO{Latitude: *batch.Origin.Latitude, Longitude: *batch.Origin.Longitude}
	}

	return dtos.CredentialSubject{
		ID:   DIDOrDefault(in.ExporterDID, batch.OwnerID),
		Type: dtos.SubjectTypeAgricultural,
		Product: dtos.SubjectProduct{
			Name:          batch.Product.Name,
			Category:      string(batch.Product.Category),
			Variety:       utils.OrElse(batch.Product.Variety, DefaultVariety),
			Quantity:      batch.Product.Quantity.String(),
			BatchID:       batch.BatchID,
			HarvestDate:   copyTime(batch.Product.HarvestDate),
			PackagingDate: copyTime(batch.Product.PackagingDate),
		},
		Origin: dtos.SubjectOrigin{
			Country:        batch.Origin.CountryOrDefault(),
			State:          batch.Origin.State,
			District:       batch.Origin.District,
			FarmLocation:   batch.Origin.FarmLocation,
			GeoCoordinates: geo,
		},
		Destination: dtos.SubjectDestination{
			Country:      batch.Destination.Country,
			Port:         batch.Destination.Port,
			ImporterName: batch.Destination.ImporterName,
		},
		QualityCertification: dtos.QualityCertification{
			InspectionID:   inspection.ID.String(),
			InspectionDate: inspection.InspectionDate.UTC(),
			InspectionType: string(inspection.InspectionType),
			Grade:          string(utils.OrElse(quality.Grade, DefaultGrade)),
			OverallResult:  string(inspection.OverallResult),
			QualityParameters: dtos.CertifiedQualityFindings{
				MoistureContent:  measured(quality.Moisture.Value, "%"),
				ForeignMatter:    measured(quality.ForeignMatter.Value, "%"),
				PesticideStatus:  pesticideStatus(quality.PesticideResidue),
				AflatoxinLevel:   measured(quality.Aflatoxin.Value, " ppb"),
				OrganicCertified: quality.OrganicCertified,
			},
			Compliance: copyCompliance(inspection.Compliance.Data()),
		},
	}
}

// measured renders a reading with its unit suffix. Missing and zero readings render as "Within limits".
func measured(value *float64, suffix string) string {
	if value == nil || *value == 0 {
		return withinLimits
	}
	return strconv.FormatFloat(*value, 'f', -1, 64) + suffix
}

func pesticideStatus(p dtos.PesticideResidue) string {
	if p.Detected {
		return "Detected - Within safe limits"
	}
	return "Not Detected"
}

func copyCompliance(c dtos.Compliance) dtos.Compliance {
	isoCodes := make([]string, len(c.ISOCodes))
	copy(isoCodes, c.ISOCodes)
	c.ISOCodes = isoCodes
	return c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// Describe is a short human readable label used in logs
func Describe(credential dtos.VerifiableCredential) string {
	return fmt.Sprintf("%s (%s)", credential.ID, credential.CredentialSubject.Product.BatchID)
}
