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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/jetsetilly/symtab/logger"
)

// ReadResult summarises a call to ReadSymbols().
type ReadResult struct {
	// number of lines that were added to the table
	Accepted int

	// number of lines that were malformed or that the table refused
	Rejected int
}

// ReadSymbols reads lines in the format produced by Write() and adds them to
// the table. Empty lines and lines beginning with '#' are ignored.
//
// Lines that cannot be parsed or that the table refuses (because of alignment
// or because the name is a duplicate) are counted in the Rejected field of
// the result. They are not an error. An error is only returned if the reader
// fails.
func ReadSymbols(input io.Reader, tbl *Table) (ReadResult, error) {
	var res ReadResult

	if tbl == nil {
		return res, ErrNoTable
	}

	scanner := bufio.NewScanner(input)
	ln := 0
	for scanner.Scan() {
		ln++

		// ignore uninteresting lines
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if len(line) == 0 || line[0] == '#' {
			continue // for loop
		}

		addr, name, ok := strings.Cut(line, "\t")
		if !ok || len(name) == 0 {
			logger.Logf(logger.Allow, "symbols", "malformed record on line %d", ln)
			res.Rejected++
			continue // for loop
		}

		a, err := strconv.ParseUint(strings.TrimSpace(addr), 10, 32)
		if err != nil {
			logger.Logf(logger.Allow, "symbols", "malformed address on line %d (%s)", ln, addr)
			res.Rejected++
			continue // for loop
		}

		if err := tbl.Add(name, uint32(a)); err != nil {
			res.Rejected++
			continue // for loop
		}

		res.Accepted++
	}

	if err := scanner.Err(); err != nil {
		return res, errors.Wrap(err, "symbols: read")
	}

	return res, nil
}

// ReadSymbolsFile opens the named file and passes it to ReadSymbols().
func ReadSymbolsFile(filename string, tbl *Table) (ReadResult, error) {
	f, err := os.Open(filename)
	if err != nil {
		return ReadResult{}, errors.Wrapf(err, "symbols: %s", filename)
	}
	defer func() {
		_ = f.Close()
	}()

	res, err := ReadSymbols(f, tbl)
	if err != nil {
		return res, errors.Wrapf(err, "symbols: %s", filename)
	}

	return res, nil
}
