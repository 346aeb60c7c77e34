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

// Package prefs facilitates the storing of preference values on disk. The
// preference types (Bool, Int) can be used as ordinary values and then
// registered with a Disk instance, which loads and saves them as a TOML file.
//
//	var unique prefs.Bool
//
//	dsk, err := prefs.NewDisk("symtab.toml")
//	if err != nil {
//		return err
//	}
//	err = dsk.Add("symbols.unique", &unique)
//
// Keys are divided into TOML tables on the "." character, so the example
// above is stored as:
//
//	[symbols]
//	unique = false
//
// Values can also be specified on the command line with the
// PushCommandLineStack() function. Values on the stack are applied after the
// file has been loaded and so override the values on disk. They are not
// otherwise written back to the file unless Save() is called.
package prefs
