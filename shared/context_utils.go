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

package shared

import "github.com/certifarm/certifarm/dtos"

const actorContextKey = "actor"

func SetActor(ctx Context, actor dtos.Actor) {
	ctx.Set(actorContextKey, actor)
}

// GetActor panics if no actor middleware ran for the route
func GetActor(ctx Context) dtos.Actor {
	return ctx.Get(actorContextKey).(dtos.Actor)
}

func MaybeGetActor(ctx Context) (dtos.Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(dtos.Actor)
	return actor, ok
}
