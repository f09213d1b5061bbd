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
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/certifarm/certifarm/dtos"
	"github.com/google/uuid"
)

const (
	URNPrefix = "urn:uuid:"
	// ISOMillis is the ISO-8601 layout with millisecond precision used inside hashed material
	ISOMillis = "2006-01-02T15:04:05.000Z"
)

func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}

// PlaceholderProofValue is base64(hex(sha256("<credentialId>:<batchId>:<issuedAt>"))).
func PlaceholderProofValue(credentialID, batchID string, issuedAt time.Time) string {
	sum := sha256.Sum256([]byte(credentialID + ":" + batchID + ":" + ISOTimestamp(issuedAt)))
	return base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(sum[:])))
}

func NewPlaceholderProof(credentialID, batchID, issuerDID string, issuedAt time.Time) dtos.PlaceholderProof {
	return dtos.NewPlaceholderProof(issuedAt, issuerDID+"#key-1", PlaceholderProofValue(credentialID, batchID, issuedAt))
}

// InspectionSignature hashes the identifying fields of a submitted inspection result.
func InspectionSignature(inspectionID, batchID uuid.UUID, result dtos.InspectionResult, signedAt time.Time) (string, error) {
	material, err := json.Marshal(struct {
		InspectionID string `json:"inspectionId"`
		BatchID      string `json:"batchId"`
		Result       string `json:"result"`
		Timestamp    string `json:"timestamp"`
	}{
		InspectionID: inspectionID.String(),
		BatchID:      batchID.String(),
		Result:       string(result),
		Timestamp:    ISOTimestamp(signedAt),
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(material)
	return hex.EncodeToString(sum[:]), nil
}

// NormalizeCredentialID accepts a bare UUID or a urn:uuid: identifier
func NormalizeCredentialID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, URNPrefix) {
		return id
	}
	return URNPrefix + id
}

func StripURN(id string) string {
	return strings.TrimPrefix(id, URNPrefix)
}
