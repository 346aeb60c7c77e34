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

// Package symbols keeps track of label symbols discovered during assembly.
// The primary structure for this is the Table type, which maps label names to
// word aligned byte addresses in the order the labels were added.
//
// A Table is created with NewTable() and a uniqueness Mode. In UniqueName
// mode, adding a name that is already in the table is an error. In NonUnique
// mode the name is added again but Get() will always find the first entry.
//
//	tbl, err := symbols.NewTable(symbols.UniqueName)
//	if err != nil {
//		return err
//	}
//	defer tbl.Destroy()
//
//	_ = tbl.Add("loop", 0)
//	_ = tbl.Add("end", 8)
//
//	if addr, ok := tbl.Get("end"); ok {
//		fmt.Println(addr)
//	}
//
// Addresses that are not a multiple of four are rejected with ErrAlignment
// and duplicate names (in UniqueName mode) with ErrDuplicateName. In both
// cases the table is unchanged and the reason is also noted in the central
// log.
//
// The Write() function outputs the table one symbol per line, in the form
//
//	<address>\t<name>
//
// and the ReadSymbols() function reads the same format back into a table.
//
// The backing store of a Table grows by a fixed increment when it is full.
// The Growth type can be used with NewTableWithGrowth() to choose a different
// increment or to double the capacity instead. Growth that cannot be
// satisfied is fatal and the program will exit after logging the failure.
//
// A Table is not safe for concurrent use.
package symbols
