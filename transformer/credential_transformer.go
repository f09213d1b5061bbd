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

package transformer

import (
	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/utils"
)

func CredentialToDTO(credential models.Credential) dtos.CredentialDTO {
	var qrCode *dtos.QRCodeDTO
	if credential.QRCodeData != "" || credential.QRCodePayload != "" {
		qrCode = &dtos.QRCodeDTO{Data: credential.QRCodeData, Payload: credential.QRCodePayload}
	}

	return dtos.CredentialDTO{
		ID:                   credential.ID,
		CredentialID:         credential.CredentialID,
		Batch:                credential.BatchID,
		Inspection:           credential.InspectionID,
		VerifiableCredential: credential.VerifiableCredential.Data(),
		QRCode:               qrCode,
		Status:               credential.Status,
		Revocation:           credential.Revocation(),
		VerificationCount:    credential.VerificationCount,
		LastVerifiedAt:       credential.LastVerifiedAt,
		IssuedBy:             credential.IssuedBy,
		CreatedAt:            credential.CreatedAt,
		UpdatedAt:            credential.UpdatedAt,
	}
}

// VerificationReportFor assembles the public verification answer from the stored document
func VerificationReportFor(credential models.Credential, result dtos.VerificationResult) dtos.VerificationReport {
	doc := credential.VerifiableCredential.Data()
	return dtos.VerificationReport{
		Verified:           result.IsValid,
		VerificationResult: result,
		Credential: dtos.VerifiedCredentialSummary{
			ID:                credential.CredentialID,
			Status:            credential.Status,
			IssuedAt:          doc.IssuanceDate,
			ExpiresAt:         doc.ExpirationDate,
			VerificationCount: credential.VerificationCount,
		},
		Product:              doc.CredentialSubject.Product,
		Origin:               doc.CredentialSubject.Origin,
		Destination:          doc.CredentialSubject.Destination,
		QualityCertification: doc.CredentialSubject.QualityCertification,
		Issuer:               doc.Issuer,
	}
}

// ParticipantFromDTO maps a seed entry, participants are active unless stated otherwise
func ParticipantFromDTO(p dtos.ParticipantDTO) models.Participant {
	return models.Participant{
		ID:                  p.ID,
		Name:                p.Name,
		Organization:        p.Organization,
		Role:                p.Role,
		DID:                 p.DID,
		CertificationNumber: p.CertificationNumber,
		Active:              utils.OrDefault(p.Active, true),
	}
}
