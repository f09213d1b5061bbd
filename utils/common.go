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

import (
	"crypto/rand"
	"math/big"
)

func Ptr[T any](t T) *T {
	return &t
}

func SafeDereference(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func OrDefault[T any](val *T, def T) T {
	if val == nil {
		return def
	}
	return *val
}

// OrElse returns val unless it is the zero value
func OrElse[T comparable](val T, fallback T) T {
	var zero T
	if val == zero {
		return fallback
	}
	return val
}

const upperAlphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomUpperAlphanumeric returns n characters drawn uniformly from [0-9A-Z]
func RandomUpperAlphanumeric(n int) (string, error) {
	max := big.NewInt(int64(len(upperAlphanumeric)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = upperAlphanumeric[idx.Int64()]
	}
	return string(b), nil
}
