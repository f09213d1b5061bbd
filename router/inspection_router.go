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
)

type InspectionRouter struct {
	*echo.Group
}

func NewInspectionRouter(apiV1Router APIV1Router, inspectionController *controllers.InspectionController) InspectionRouter {
	inspectionRouter := apiV1Router.Group.Group("/inspections", middlewares.ActorMiddleware())

	inspectionRouter.GET("/:id/", inspectionController.Read)

	qaOnly := inspectionRouter.Group("", middlewares.RequireRole(dtos.RoleQAAgency))
	qaOnly.POST("/start/:batchId/", inspectionController.Start)
	qaOnly.PUT("/:id/", inspectionController.Submit)

	return InspectionRouter{Group: inspectionRouter}
}
