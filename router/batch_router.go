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

type BatchRouter struct {
	*echo.Group
}

func NewBatchRouter(apiV1Router APIV1Router, batchController *controllers.BatchController) BatchRouter {
	batchRouter := apiV1Router.Group.Group("/batches", middlewares.ActorMiddleware())

	batchRouter.POST("/", batchController.Create, middlewares.RequireRole(dtos.RoleExporter))
	batchRouter.GET("/stats/", batchController.Stats)
	batchRouter.GET("/:id/", batchController.Read)
	batchRouter.PUT("/:id/", batchController.Update, middlewares.RequireRole(dtos.RoleExporter))
	batchRouter.POST("/:id/documents/", batchController.AddDocument, middlewares.RequireRole(dtos.RoleExporter))
	batchRouter.POST("/:id/reject/", batchController.Reject, middlewares.RequireRole(dtos.RoleQAAgency))

	return BatchRouter{Group: batchRouter}
}
