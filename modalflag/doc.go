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

// Package modalflag wraps the flag package from the standard library and
// adds program modes. Each mode has its own set of flags and its own
// sub-modes. The symtab command has the modes LIST, LOOKUP, CHECK and DUMP
// and each of those accepts different flags.
//
// Arguments are given once with NewArgs() and then parsed a mode at a time
// with Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("LIST", "LOOKUP")
//	logging := md.AddBool("log", false, "echo log entries to stderr")
//
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
// The first sub-mode is the default and is selected if the first argument
// after the flags does not name a sub-mode. Comparison is case insensitive
// and Mode() always returns the upper-case form.
//
// After the mode has been decided NewMode() starts the next layer. The flags
// of the previous layer are forgotten but the arguments carry on from where
// the previous Parse() stopped:
//
//	switch md.Mode() {
//	case "LIST":
//		md.NewMode()
//		unique := md.AddBool("unique", false, "reject duplicate names")
//		if r, err := md.Parse(); r != modalflag.ParseContinue {
//			return err
//		}
//		list(md.RemainingArgs(), *unique)
//	}
//
// Path() returns every mode selected so far, separated by a forward slash.
package modalflag
