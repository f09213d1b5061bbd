// Copyright (C) 2026 l3montree GmbH
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

package controllers

import (
	"github.com/labstack/echo/v4"

	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/transformer"
)

type InspectionController struct {
	inspectionService shared.InspectionService
}

func NewInspectionController(inspectionService shared.InspectionService) *InspectionController {
	return &InspectionController{
		inspectionService: inspectionService,
	}
}

// @Summary Start inspecting a submitted batch
// @Param batchId path string true "Batch id"
// @Param body body dtos.StartInspectionRequest false "Request body"
// @Success 201 {object} dtos.InspectionDTO
// @Router /inspections/start/{batchId} [post]
func (c *InspectionController) Start(ctx shared.Context) error {
	batchID, err := uuidParam(ctx, "batchId")
	if err != nil {
		return err
	}
	var req dtos.StartInspectionRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, "invalid inspection type").WithInternal(err)
	}

	inspection, err := c.inspectionService.StartInspection(ctx.Request().Context(), batchID, shared.GetActor(ctx).ID, req.InspectionType)
	if err != nil {
		return toHTTPError(err, "batch")
	}
	return ctx.JSON(201, transformer.InspectionToDTO(inspection))
}

// @Summary Submit the inspection result
// @Param id path string true "Inspection id"
// @Param body body dtos.SubmitInspectionRequest true "Request body"
// @Success 200 {object} dtos.InspectionDTO
// @Router /inspections/{id} [put]
func (c *InspectionController) Submit(ctx shared.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dtos.SubmitInspectionRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	inspection, err := c.inspectionService.SubmitInspectionResult(ctx.Request().Context(), id, shared.GetActor(ctx), req)
	if err != nil {
		return toHTTPError(err, "inspection")
	}
	return ctx.JSON(200, transformer.InspectionToDTO(inspection))
}

// @Summary Read an inspection
// @Param id path string true "Inspection id"
// @Success 200 {object} dtos.InspectionDTO
// @Router /inspections/{id} [get]
func (c *InspectionController) Read(ctx shared.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	inspection, err := c.inspectionService.ReadInspection(ctx.Request().Context(), id)
	if err != nil {
		return toHTTPError(err, "inspection")
	}
	return ctx.JSON(200, transformer.InspectionToDTO(inspection))
}
