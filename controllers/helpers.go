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
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/certifarm/certifarm/shared"
)

// toHTTPError maps the service error taxonomy onto http status codes
func toHTTPError(err error, fallback string) error {
	var precondition *shared.PreconditionError
	switch {
	case errors.As(err, &precondition):
		return echo.NewHTTPError(http.StatusBadRequest, precondition.Rule).WithInternal(err)
	case errors.Is(err, shared.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).WithInternal(err)
	case errors.Is(err, shared.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "could not find "+fallback).WithInternal(err)
	case errors.Is(err, shared.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, "concurrent modification, please retry").WithInternal(err)
	case errors.Is(err, shared.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, "not allowed to modify "+fallback).WithInternal(err)
	case errors.Is(err, shared.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "storage unavailable").WithInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "could not process "+fallback).WithInternal(err)
}

func uuidParam(ctx shared.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(shared.SanitizeParam(ctx.Param(name)))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name).WithInternal(err)
	}
	return id, nil
}
