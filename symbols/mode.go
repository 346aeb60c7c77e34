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

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects whether a Table permits more than one entry with the same name.
type Mode int

// List of valid modes.
const (
	NonUnique Mode = iota
	UniqueName
)

func (m Mode) String() string {
	switch m {
	case NonUnique:
		return "non-unique"
	case UniqueName:
		return "unique"
	}
	return "invalid"
}

func (m Mode) valid() bool {
	return m == NonUnique || m == UniqueName
}

// ParseMode converts the result of Mode.String() back into a Mode. Matching
// is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "non-unique", "nonunique":
		return NonUnique, nil
	case "unique", "uniquename":
		return UniqueName, nil
	}
	return NonUnique, errors.Wrapf(ErrInvalidMode, "symbols: %q", s)
}
