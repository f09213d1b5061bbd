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

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnavailable        = errors.New("storage unavailable")
	ErrInvalidInput       = errors.New("invalid input")
)

// PreconditionError names the rule a requested operation violated.
type PreconditionError struct {
	Rule string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s", e.Rule)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPreconditionFailed
}

func NewPreconditionError(rule string) error {
	return &PreconditionError{Rule: rule}
}

func NewInvalidInputError(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
}
