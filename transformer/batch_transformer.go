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

// BatchFromCreateRequest maps the request onto a new batch. Lifecycle fields are left to the caller.
func BatchFromCreateRequest(req dtos.CreateBatchRequest) models.Batch {
	batch := models.Batch{}
	ApplyBatchDetails(&batch, req)
	return batch
}

// ApplyBatchDetails overwrites the owner editable fields of the batch
func ApplyBatchDetails(batch *models.Batch, req dtos.CreateBatchRequest) {
	batch.Product = models.Product{
		Name:     req.Product.Name,
		Category: req.Product.Category,
		Variety:  req.Product.Variety,
		Quantity: models.Quantity{
			Value: req.Product.Quantity.Value,
			Unit:  utils.OrElse(req.Product.Quantity.Unit, dtos.UnitKg),
		},
		HarvestDate:   req.Product.HarvestDate,
		PackagingDate: req.Product.PackagingDate,
	}

	batch.Origin = models.Origin{
		FarmLocation: req.Origin.FarmLocation,
		District:     req.Origin.District,
		State:        req.Origin.State,
		Country:      utils.OrElse(req.Origin.Country, models.DefaultOriginCountry),
	}
	if req.Origin.GeoCoordinates != nil {
		batch.Origin.Latitude = utils.Ptr(req.Origin.GeoCoordinates.Latitude)
		batch.Origin.Longitude = utils.Ptr(req.Origin.GeoCoordinates.Longitude)
	}

	batch.Destination = models.Destination{
		Country:         req.Destination.Country,
		Port:            req.Destination.Port,
		ImporterName:    req.Destination.ImporterName,
		ImporterContact: req.Destination.ImporterContact,
	}
	batch.Notes = req.Notes
	batch.Priority = utils.OrElse(req.Priority, dtos.PriorityNormal)
}

func BatchToDTO(batch models.Batch) dtos.BatchDTO {
	var geo *dtos.GeoCoordinatesDTO
	if batch.Origin.Latitude != nil && batch.Origin.Longitude != nil {
		geo = &dtos.GeoCoordinatesDTO{Latitude: *batch.Origin.Latitude, Longitude: *batch.Origin.Longitude}
	}

	documents := make([]dtos.DocumentDTO, 0, len(batch.Documents))
	for _, d := range batch.Documents {
		documents = append(documents, dtos.DocumentDTO{Name: d.Name, Type: d.Type, URL: d.URL, UploadedAt: d.UploadedAt})
	}

	return dtos.BatchDTO{
		ID:       batch.ID,
		BatchID:  batch.BatchID,
		Exporter: batch.OwnerID,
		Product: dtos.ProductDTO{
			Name:     batch.Product.Name,
			Category: batch.Product.Category,
			Variety:  batch.Product.Variety,
			Quantity: dtos.QuantityDTO{
				Value: batch.Product.Quantity.Value,
				Unit:  batch.Product.Quantity.Unit,
			},
			HarvestDate:   batch.Product.HarvestDate,
			PackagingDate: batch.Product.PackagingDate,
		},
		Origin: dtos.OriginDTO{
			FarmLocation:   batch.Origin.FarmLocation,
			District:       batch.Origin.District,
			State:          batch.Origin.State,
			Country:        batch.Origin.CountryOrDefault(),
			GeoCoordinates: geo,
		},
		Destination: dtos.DestinationDTO{
			Country:         batch.Destination.Country,
			Port:            batch.Destination.Port,
			ImporterName:    batch.Destination.ImporterName,
			ImporterContact: batch.Destination.ImporterContact,
		},
		Documents:     documents,
		Status:        batch.Status,
		AssignedQA:    batch.AssignedQAID,
		Inspection:    batch.InspectionID,
		Credential:    batch.CredentialID,
		StatusHistory: utils.Map(batch.StatusHistory, StatusEventToDTO),
		Notes:         batch.Notes,
		Priority:      batch.Priority,
		CreatedAt:     batch.CreatedAt,
		UpdatedAt:     batch.UpdatedAt,
	}
}

func StatusEventToDTO(event models.BatchStatusEvent) dtos.StatusHistoryEntryDTO {
	return dtos.StatusHistoryEntryDTO{
		Status:    event.Status,
		ChangedBy: event.ChangedBy,
		ChangedAt: event.CreatedAt,
		Remarks:   event.Remarks,
	}
}
