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

package middlewares

import (
	"github.com/labstack/echo/v4"

	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/shared"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// ActorMiddleware reads the calling party from the actor headers.
// Authentication happens in front of this service, the headers are trusted.
func ActorMiddleware() shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			actor := dtos.Actor{
				ID:   ctx.Request().Header.Get(HeaderActorID),
				Role: dtos.Role(ctx.Request().Header.Get(HeaderActorRole)),
			}
			if actor.ID == "" || actor.Role == "" {
				return echo.NewHTTPError(401, "missing "+HeaderActorID+" or "+HeaderActorRole+" header")
			}
			if err := shared.V.Struct(actor); err != nil {
				return echo.NewHTTPError(400, "invalid actor role").WithInternal(err)
			}
			shared.SetActor(ctx, actor)
			return next(ctx)
		}
	}
}

// RequireRole rejects actors whose role is not in the list. Admins always pass.
func RequireRole(roles ...dtos.Role) shared.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx shared.Context) error {
			actor, ok := shared.MaybeGetActor(ctx)
			if !ok {
				return echo.NewHTTPError(401, "no actor in request context")
			}
			if actor.IsAdmin() {
				return next(ctx)
			}
			for _, role := range roles {
				if actor.Role == role {
					return next(ctx)
				}
			}
			return echo.NewHTTPError(403, "role "+string(actor.Role)+" is not allowed to perform this action")
		}
	}
}
