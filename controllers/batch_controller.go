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

type BatchController struct {
	batchService shared.BatchService
}

func NewBatchController(batchService shared.BatchService) *BatchController {
	return &BatchController{
		batchService: batchService,
	}
}

// @Summary Submit a new batch
// @Param X-Actor-ID header string true "Exporter id"
// @Param body body dtos.CreateBatchRequest true "Request body"
// @Success 201 {object} dtos.BatchDTO
// @Router /batches [post]
func (c *BatchController) Create(ctx shared.Context) error {
	var req dtos.CreateBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	actor := shared.GetActor(ctx)
	batch, err := c.batchService.CreateBatch(ctx.Request().Context(), req, actor.ID)
	if err != nil {
		return toHTTPError(err, "batch")
	}
	return ctx.JSON(201, transformer.BatchToDTO(batch))
}

// @Summary Read a batch including its status history
// @Param id path string true "Batch id"
// @Success 200 {object} dtos.BatchDTO
// @Router /batches/{id} [get]
func (c *BatchController) Read(ctx shared.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	batch, err := c.batchService.ReadBatch(ctx.Request().Context(), id, shared.GetActor(ctx))
	if err != nil {
		return toHTTPError(err, "batch")
	}
	return ctx.JSON(200, transformer.BatchToDTO(batch))
}

// @Summary Update the batch details
// @Param id path string true "Batch id"
// @Param body body dtos.UpdateBatchRequest true "Request body"
// @Success 200 {object} dtos.BatchDTO
// @Router /batches/{id} [put]
func (c *BatchController) Update(ctx shared.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dtos.UpdateBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	batch, err := c.batchService.UpdateBatch(ctx.Request().Context(), id, shared.GetActor(ctx), req)
	if err != nil {
		return toHTTPError(err, "batch")
	}
	return ctx.JSON(200, transformer.BatchToDTO(batch))
}

// @Summary Attach a document reference to a batch
// @Param id path string true "Batch id"
// @Param body body dtos.AddDocumentRequest true "Request body"
// @Success 200 {object} dtos.BatchDTO
// @Router /batches/{id}/documents [post]
func (c *BatchController) AddDocument(ctx shared.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dtos.AddDocumentRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	batch, err := c.batchService.AddDocument(ctx.Request().Context(), id, shared.GetActor(ctx), req)
	if err != nil {
		return toHTTPError(err, "batch")
	}
	return ctx.JSON(200, transformer.BatchToDTO(batch))
}

// @Summary Reject an inspected batch
// @Param id path string true "Batch id"
// @Param body body dtos.RejectBatchRequest true "Request body"
// @Success 200 {object} dtos.BatchDTO
// @Router /batches/{id}/reject [post]
func (c *BatchController) Reject(ctx shared.Context) error {
	id, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}
	var req dtos.RejectBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	batch, err := c.batchService.RejectBatch(ctx.Request().Context(), id, shared.GetActor(ctx), req.Reason)
	if err != nil {
		return toHTTPError(err, "batch")
	}
	return ctx.JSON(200, transformer.BatchToDTO(batch))
}

// @Summary Batch counts per status for the calling actor
// @Success 200 {object} dtos.BatchStatsDTO
// @Router /batches/stats [get]
func (c *BatchController) Stats(ctx shared.Context) error {
	stats, err := c.batchService.BatchStatistics(ctx.Request().Context(), shared.GetActor(ctx))
	if err != nil {
		return toHTTPError(err, "statistics")
	}
	return ctx.JSON(200, stats)
}
