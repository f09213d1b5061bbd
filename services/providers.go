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

package services

import (
	"github.com/certifarm/certifarm/shared"
	"go.uber.org/fx"
)

// Module provides all service-layer constructors
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewParticipantDirectory, fx.As(new(shared.ParticipantDirectory)))),
	fx.Provide(fx.Annotate(NewFirstActiveQAStrategy, fx.As(new(shared.AssignmentStrategy)))),
	fx.Provide(fx.Annotate(NewBrokerEventPublisher, fx.As(new(shared.EventPublisher)))),
	fx.Provide(fx.Annotate(NewBatchService, fx.As(new(shared.BatchService)))),
	fx.Provide(fx.Annotate(NewInspectionService, fx.As(new(shared.InspectionService)))),
	fx.Provide(fx.Annotate(NewCredentialService, fx.As(new(shared.CredentialService)))),
)
