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
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Write outputs every symbol in the table, in insertion order, one per line.
// Each line is the decimal address, a tab character and the name. Names are
// not escaped.
//
// Nothing is written if the table or the output is nil.
func (tbl *Table) Write(output io.Writer) error {
	if tbl == nil || output == nil {
		return nil
	}

	var b []byte
	for _, s := range tbl.entries {
		b = b[:0]
		b = strconv.AppendUint(b, uint64(s.Address), 10)
		b = append(b, '\t')
		b = append(b, s.Name...)
		b = append(b, '\n')
		if _, err := output.Write(b); err != nil {
			return errors.Wrap(err, "symbols: write")
		}
	}

	return nil
}

// List outputs every symbol in a form more suitable for reading. Addresses
// are in hex and names are aligned.
func (tbl *Table) List(output io.Writer) error {
	if tbl == nil || output == nil {
		return nil
	}

	_, err := io.WriteString(output, fmt.Sprintf("Labels (%s)\n------\n", tbl.mode))
	if err != nil {
		return errors.Wrap(err, "symbols: list")
	}

	_, err = io.WriteString(output, tbl.String())
	if err != nil {
		return errors.Wrap(err, "symbols: list")
	}

	return nil
}

func (tbl *Table) String() string {
	if tbl == nil {
		return ""
	}
	s := strings.Builder{}
	for _, e := range tbl.entries {
		s.WriteString(fmt.Sprintf("%-*s -> %#08x\n", tbl.maxWidth, e.Name, e.Address))
	}
	return s.String()
}
