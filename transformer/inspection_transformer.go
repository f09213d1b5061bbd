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
	"gorm.io/datatypes"
)

func InspectionToDTO(inspection models.Inspection) dtos.InspectionDTO {
	return dtos.InspectionDTO{
		ID:                inspection.ID,
		Batch:             inspection.BatchID,
		Inspector:         inspection.InspectorID,
		InspectionDate:    inspection.InspectionDate,
		InspectionType:    inspection.InspectionType,
		QualityParameters: inspection.QualityParameters.Data(),
		VisualInspection:  inspection.VisualInspection.Data(),
		Compliance:        inspection.Compliance.Data(),
		OverallResult:     inspection.OverallResult,
		Remarks:           inspection.Remarks,
		Recommendations:   inspection.Recommendations,
		DigitalSignature:  inspection.DigitalSignature(),
		CreatedAt:         inspection.CreatedAt,
		UpdatedAt:         inspection.UpdatedAt,
	}
}

// ApplyInspectionResult copies the submitted findings onto the inspection
func ApplyInspectionResult(inspection *models.Inspection, req dtos.SubmitInspectionRequest) {
	inspection.QualityParameters = datatypes.NewJSONType(req.QualityParameters)
	inspection.VisualInspection = datatypes.NewJSONType(req.VisualInspection)
	inspection.Compliance = datatypes.NewJSONType(req.Compliance)
	inspection.OverallResult = req.OverallResult
	inspection.Remarks = req.Remarks
	inspection.Recommendations = req.Recommendations
}
