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
	"errors"
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/certifarm/certifarm/database"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/qr"
	"github.com/certifarm/certifarm/shared"
	"github.com/certifarm/certifarm/transformer"
)

type CredentialController struct {
	credentialService shared.CredentialService
	participants      shared.ParticipantDirectory
}

func NewCredentialController(credentialService shared.CredentialService, participants shared.ParticipantDirectory) *CredentialController {
	return &CredentialController{
		credentialService: credentialService,
		participants:      participants,
	}
}

// issuerFor resolves the issuing agency from the participant directory.
// An unknown agency issues with its bare id.
func (c *CredentialController) issuerFor(actor dtos.Actor) dtos.IssuerIdentity {
	participant, err := c.participants.Lookup(actor.ID)
	if err != nil {
		if !errors.Is(database.ClassifyError(err), shared.ErrNotFound) {
			slog.Warn("could not resolve issuer identity", "issuer", actor.ID, "err", err)
		}
		return dtos.IssuerIdentity{ID: actor.ID}
	}
	return participant.IssuerIdentity()
}

// @Summary Issue the verifiable credential for an inspected batch
// @Param batchId path string true "Batch id"
// @Success 201 {object} dtos.CredentialDTO
// @Router /credentials/issue/{batchId} [post]
func (c *CredentialController) Issue(ctx shared.Context) error {
	batchID, err := uuidParam(ctx, "batchId")
	if err != nil {
		return err
	}

	credential, err := c.credentialService.IssueCredential(ctx.Request().Context(), batchID, c.issuerFor(shared.GetActor(ctx)))
	if err != nil {
		return toHTTPError(err, "batch")
	}
	return ctx.JSON(201, transformer.CredentialToDTO(credential))
}

// @Summary Revoke a credential
// @Param id path string true "Credential id or urn"
// @Param body body dtos.RevokeCredentialRequest false "Request body"
// @Success 200 {object} dtos.CredentialDTO
// @Router /credentials/{id}/revoke [put]
func (c *CredentialController) Revoke(ctx shared.Context) error {
	var req dtos.RevokeCredentialRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	credential, err := c.credentialService.RevokeCredential(ctx.Request().Context(), shared.SanitizeParam(ctx.Param("id")), shared.GetActor(ctx), req.Reason)
	if err != nil {
		return toHTTPError(err, "credential")
	}
	return ctx.JSON(200, transformer.CredentialToDTO(credential))
}

// @Summary Read the credential of a batch
// @Param batchId path string true "Batch id"
// @Success 200 {object} dtos.CredentialDTO
// @Router /credentials/batch/{batchId} [get]
func (c *CredentialController) ReadByBatch(ctx shared.Context) error {
	batchID, err := uuidParam(ctx, "batchId")
	if err != nil {
		return err
	}

	credential, err := c.credentialService.GetCredentialByBatch(ctx.Request().Context(), batchID)
	if err != nil {
		return toHTTPError(err, "credential")
	}
	return ctx.JSON(200, transformer.CredentialToDTO(credential))
}

// @Summary Render the qr code of a credential
// @Param id path string true "Credential id or urn"
// @Param compact query bool false "Encode the compact payload"
// @Param format query string false "png returns the raw image"
// @Success 200 {object} dtos.QRCodeDTO
// @Router /credentials/{id}/qr [get]
func (c *CredentialController) QRCode(ctx shared.Context) error {
	compact := false
	if raw := ctx.QueryParam("compact"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(400, "compact must be a boolean").WithInternal(err)
		}
		compact = parsed
	}

	payload, png, err := c.credentialService.RenderQRCode(ctx.Request().Context(), shared.SanitizeParam(ctx.Param("id")), compact)
	if err != nil {
		return toHTTPError(err, "credential")
	}

	if ctx.QueryParam("format") == "png" {
		return ctx.Blob(200, "image/png", png)
	}
	return ctx.JSON(200, dtos.QRCodeDTO{
		Data:    qr.DataURL(png),
		Payload: payload,
	})
}

// @Summary Verify a credential
// @Description Public endpoint. An invalid credential is reported with isValid false, not as an error.
// @Param credentialId path string true "Credential id or urn"
// @Success 200 {object} dtos.VerificationReport
// @Router /credentials/verify/{credentialId} [get]
func (c *CredentialController) Verify(ctx shared.Context) error {
	report, err := c.credentialService.VerifyCredential(ctx.Request().Context(), shared.SanitizeParam(ctx.Param("credentialId")))
	if err != nil {
		return toHTTPError(err, "credential")
	}
	return ctx.JSON(200, report)
}
