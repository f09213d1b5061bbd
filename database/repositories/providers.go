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

package repositories

import (
	"github.com/certifarm/certifarm/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewBatchRepository, fx.As(new(shared.BatchRepository)))),
	fx.Provide(fx.Annotate(NewBatchStatusEventRepository, fx.As(new(shared.BatchStatusEventRepository)))),
	fx.Provide(fx.Annotate(NewInspectionRepository, fx.As(new(shared.InspectionRepository)))),
	fx.Provide(fx.Annotate(NewCredentialRepository, fx.As(new(shared.CredentialRepository)))),
	fx.Provide(fx.Annotate(NewParticipantRepository, fx.As(new(shared.ParticipantRepository)))),
)
