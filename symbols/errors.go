// This file is part of symtab.
//
// symtab is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// symtab is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with symtab.  If not, see <https://www.gnu.org/licenses/>.

package symbols

import "github.com/pkg/errors"

// Sentinel errors. Errors returned by the package wrap one of these and
// should be tested with errors.Is().
var (
	ErrInvalidMode   = errors.New("invalid table mode")
	ErrAlignment     = errors.New("address is not a multiple of 4")
	ErrDuplicateName = errors.New("name already exists in table")
	ErrNoTable       = errors.New("no table")
	ErrEmptyName     = errors.New("empty name")
	ErrDestroyed     = errors.New("table has been destroyed")
)

// NotFound is the value returned by AddressOf() when a name is not in the
// table.
const NotFound int64 = -1
