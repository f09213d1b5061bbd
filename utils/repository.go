// Copyright (C) 2024 Tim Bastin, l3montree GmbH
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

package utils

type Tabler interface {
	TableName() string
}

type ModelWriter[T Tabler, Tx any] interface {
	Create(tx Tx, t *T) error
}

type ModelReader[ID any, T Tabler] interface {
	Read(id ID) (T, error)
}

type Transactioner[Tx any] interface {
	// Transaction runs f in a transaction which is rolled back if f returns an error
	Transaction(func(tx Tx) error) error
	// GetDB returns tx, or the plain connection if tx is nil
	GetDB(tx Tx) Tx
}

// Repository is the part every aggregate repository shares, the rest are named queries
type Repository[ID any, T Tabler, Tx any] interface {
	ModelWriter[T, Tx]
	ModelReader[ID, T]
	Transactioner[Tx]
}
