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

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/certifarm/certifarm/controllers"
	"github.com/certifarm/certifarm/dtos"
	"github.com/certifarm/certifarm/middlewares"
	"github.com/certifarm/certifarm/shared"
)

type CredentialRouter struct {
	*echo.Group
}

func NewCredentialRouter(apiV1Router APIV1Router, config shared.Config, credentialController *controllers.CredentialController) CredentialRouter {
	credentialRouter := apiV1Router.Group.Group("/credentials")

	// verification is public, everything else needs an actor
	credentialRouter.GET("/verify/:credentialId/", credentialController.Verify, middlewares.VerifyRateLimiter(config.VerifyRateLimit))

	authenticated := credentialRouter.Group("", middlewares.ActorMiddleware())
	authenticated.GET("/batch/:batchId/", credentialController.ReadByBatch)
	authenticated.GET("/:id/qr/", credentialController.QRCode)
	authenticated.POST("/issue/:batchId/", credentialController.Issue, middlewares.RequireRole(dtos.RoleQAAgency))
	authenticated.PUT("/:id/revoke/", credentialController.Revoke, middlewares.RequireRole(dtos.RoleQAAgency))

	return CredentialRouter{Group: credentialRouter}
}
