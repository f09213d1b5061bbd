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

package qr

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/certifarm/certifarm/database/models"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/vc"
)

const PayloadVersion = "1.0"

// VerbosePayload is the human readable QR content.
type VerbosePayload struct {
	Version  string `json:"v"`
	ID       string `json:"id"`
	BatchID  string `json:"bid"`
	Product  string `json:"prod"`
	Category string `json:"cat"`
	Quantity string `json:"qty"`
	Origin   string `json:"origin"`
	Dest     string `json:"dest"`
	Grade    string `json:"grade"`
	Result   string `json:"result"`
	Issuer   string `json:"issuer"`
	Issued   string `json:"issued"`
	Expires  string `json:"expires"`
	Verify   string `json:"verify"`
}

// CompactPayload keeps the QR code small enough for low resolution scanners.
type CompactPayload struct {
	ID      string `json:"i"`
	BatchID string `json:"b"`
	Product string `json:"p"`
	Grade   string `json:"g"`
	Result  string `json:"r"`
	Date    string `json:"d"`
	Status  int    `json:"s"`
}

type Payloads struct {
	Verbose VerbosePayload
	Compact CompactPayload
}

func VerifyURL(verifyBaseURL, credentialID string) string {
	return fmt.Sprintf("%s/verify/%s", strings.TrimRight(verifyBaseURL, "/"), credentialID)
}

// BuildVerbose renders a credential and its batch into the verbose payload
func BuildVerbose(credential models.Credential, batch models.Batch, verifyBaseURL string) VerbosePayload {
	doc := credential.VerifiableCredential.Data()
	quality := doc.CredentialSubject.QualityCertification
	return VerbosePayload{
		Version:  PayloadVersion,
		ID:       credential.CredentialID,
		BatchID:  batch.BatchID,
		Product:  batch.Product.Name,
		Category: string(batch.Product.Category),
		Quantity: batch.Product.Quantity.Compact(),
		Origin:   batch.Origin.CountryOrDefault(),
		Dest:     batch.Destination.Country,
		Grade:    quality.Grade,
		Result:   quality.OverallResult,
		Issuer:   doc.Issuer.Name,
		Issued:   vc.ISOTimestamp(doc.IssuanceDate),
		Expires:  vc.ISOTimestamp(doc.ExpirationDate),
		Verify:   VerifyURL(verifyBaseURL, credential.CredentialID),
	}
}

func BuildCompact(credential models.Credential, batch models.Batch) CompactPayload {
	doc := credential.VerifiableCredential.Data()
	quality := doc.CredentialSubject.QualityCertification
	status := 0
	if credential.Status == dtos.CredentialStatusActive {
		status = 1
	}
	return CompactPayload{
		ID:      vc.StripURN(credential.CredentialID),
		BatchID: batch.BatchID,
		Product: batch.Product.Name,
		Grade:   quality.Grade,
		Result:  quality.OverallResult,
		Date:    doc.IssuanceDate.UTC().Format("2006-01-02"),
		Status:  status,
	}
}

// Build derives both payloads. It never touches storage.
func Build(credential models.Credential, batch models.Batch, verifyBaseURL string) Payloads {
	return Payloads{
		Verbose: BuildVerbose(credential, batch, verifyBaseURL),
		Compact: BuildCompact(credential, batch),
	}
}

func Encode(payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("could not encode qr payload: %w", err)
	}
	return string(raw), nil
}

// DecodeCredentialID extracts the credential identifier from either payload form.
// The result is normalized to the urn:uuid: form the verifier resolves.
func DecodeCredentialID(content string) (string, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &probe); err != nil {
		return "", fmt.Errorf("%w: qr content is not a json payload", shared.ErrInvalidInput)
	}

	if _, ok := probe["v"]; ok {
		var verbose VerbosePayload
		if err := json.Unmarshal([]byte(content), &verbose); err != nil {
			return "", fmt.Errorf("%w: malformed verbose payload", shared.ErrInvalidInput)
		}
		if verbose.ID == "" {
			return "", fmt.Errorf("%w: verbose payload without id", shared.ErrInvalidInput)
		}
		return vc.NormalizeCredentialID(verbose.ID), nil
	}

	var compact CompactPayload
	if err := json.Unmarshal([]byte(content), &compact); err != nil {
		return "", fmt.Errorf("%w: malformed compact payload", shared.ErrInvalidInput)
	}
	if compact.ID == "" {
		return "", fmt.Errorf("%w: payload without credential id", shared.ErrInvalidInput)
	}
	return vc.NormalizeCredentialID(compact.ID), nil
}
