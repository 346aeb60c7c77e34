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

package symbols_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/symtab/prefs"
	"github.com/jetsetilly/symtab/symbols"
	"github.com/jetsetilly/symtab/test"
)

func TestPreferencesDefaults(t *testing.T) {
	p, err := symbols.NewPreferencesFile(filepath.Join(t.TempDir(), "symtab.toml"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.Mode(), symbols.NonUnique)
	test.ExpectEquality(t, p.Growth(), symbols.DefaultGrowth)

	tbl, err := p.NewTable()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tbl.Mode(), symbols.NonUnique)
	tbl.Destroy()
}

func TestPreferencesFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "symtab.toml")
	err := os.WriteFile(fn, []byte("[symbols]\nunique = true\ninitial = 8\nincrement = 8\ndouble = true\n"), 0o600)
	test.DemandSuccess(t, err)

	p, err := symbols.NewPreferencesFile(fn)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.Mode(), symbols.UniqueName)
	test.ExpectEquality(t, p.Growth(), symbols.Growth{Initial: 8, Increment: 8, Double: true})

	// values can be changed and saved
	test.ExpectSuccess(t, p.Unique.Set(false))
	test.DemandSuccess(t, p.Save())

	p, err = symbols.NewPreferencesFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Mode(), symbols.NonUnique)
	test.ExpectEquality(t, p.Growth().Initial, 8)
}

func TestPreferencesCommandLine(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "symtab.toml")

	prefs.PushCommandLineStack("symbols.unique::true; symbols.increment::64")
	p, err := symbols.NewPreferencesFile(fn)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.Mode(), symbols.UniqueName)
	test.ExpectEquality(t, p.Growth().Increment, 64)

	// growth values must be positive
	prefs.PushCommandLineStack("symbols.initial::0")
	_, err = symbols.NewPreferencesFile(fn)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.DemandFailure(t, err)

	// and not so large that creating a table would fail
	prefs.PushCommandLineStack("symbols.initial::8589934592")
	_, err = symbols.NewPreferencesFile(fn)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.DemandFailure(t, err)

	test.ExpectFailure(t, p.Increment.Set(-8))
	test.ExpectFailure(t, p.Increment.Set(1<<16+1))
	test.ExpectEquality(t, p.Growth().Increment, 64)
	test.ExpectSuccess(t, p.Increment.Set(1<<16))
	test.ExpectEquality(t, p.Growth().Increment, 1<<16)
}

func TestPreferencesWrite(t *testing.T) {
	p, err := symbols.NewPreferencesFile(filepath.Join(t.TempDir(), "symtab.toml"))
	test.DemandSuccess(t, err)

	w := &test.Writer{}
	test.DemandSuccess(t, p.Write(w))
	test.ExpectSuccess(t, w.Compare("symbols.double = false\nsymbols.increment = 32\nsymbols.initial = 32\nsymbols.unique = false\n"), w.String())

	fw := &test.FailingWriter{Limit: 4}
	test.ExpectFailure(t, p.Write(fw))
}
