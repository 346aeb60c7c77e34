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
	"fmt"
	"runtime"
	"strings"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/jetsetilly/symtab/logger"
	"github.com/jetsetilly/symtab/symbols"
	"github.com/jetsetilly/symtab/test"
)

func TestNewTable(t *testing.T) {
	for _, m := range []symbols.Mode{symbols.NonUnique, symbols.UniqueName} {
		tbl, err := symbols.NewTable(m)
		test.DemandSuccess(t, err, m)
		test.ExpectEquality(t, tbl.Len(), 0, m)
		test.ExpectEquality(t, tbl.Mode(), m, m)
		tbl.Destroy()
	}

	for _, m := range []symbols.Mode{-1, 2, 100} {
		tbl, err := symbols.NewTable(m)
		test.ExpectSuccess(t, errors.Is(err, symbols.ErrInvalidMode), m)
		test.ExpectSuccess(t, tbl == nil, m)
	}
}

func TestUniqueScenario(t *testing.T) {
	tbl, err := symbols.NewTable(symbols.UniqueName)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	test.ExpectSuccess(t, tbl.Add("loop", 0))

	err = tbl.Add("loop", 4)
	test.ExpectSuccess(t, errors.Is(err, symbols.ErrDuplicateName))
	test.ExpectEquality(t, tbl.Len(), 1)

	test.ExpectSuccess(t, tbl.Add("end", 8))

	addr, ok := tbl.Get("loop")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(0))

	addr, ok = tbl.Get("end")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(8))

	_, ok = tbl.Get("missing")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, tbl.AddressOf("missing"), symbols.NotFound)
	test.ExpectEquality(t, tbl.AddressOf("end"), int64(8))

	w := &test.Writer{}
	test.ExpectSuccess(t, tbl.Write(w))
	test.ExpectEquality(t, w.String(), "0\tloop\n8\tend\n")
}

func TestAlignment(t *testing.T) {
	tbl, err := symbols.NewTable(symbols.NonUnique)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	err = tbl.Add("x", 3)
	test.ExpectSuccess(t, errors.Is(err, symbols.ErrAlignment))
	test.ExpectEquality(t, tbl.Len(), 0)

	for _, addr := range []uint32{1, 2, 3, 5, 6, 7, 0x7fffffff, 0xfffffffe, 0xffffffff} {
		err = tbl.Add("label", addr)
		test.ExpectSuccess(t, errors.Is(err, symbols.ErrAlignment), addr)
		test.ExpectEquality(t, tbl.Len(), 0, addr)
	}

	// the largest aligned address is fine
	test.ExpectSuccess(t, tbl.Add("top", 0xfffffffc))
	test.ExpectEquality(t, tbl.Len(), 1)
}

func TestAlignmentIsLogged(t *testing.T) {
	tbl, err := symbols.NewTable(symbols.UniqueName)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	w := &strings.Builder{}
	logger.Clear()

	test.ExpectFailure(t, tbl.Add("x", 3))
	logger.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "symbols: address is not a multiple of 4 (3)\n")

	w.Reset()
	test.ExpectSuccess(t, tbl.Add("x", 4))
	test.ExpectFailure(t, tbl.Add("x", 4))
	logger.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "symbols: name 'x' already exists in table\n")
}

func TestNonUnique(t *testing.T) {
	tbl, err := symbols.NewTable(symbols.NonUnique)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	test.ExpectSuccess(t, tbl.Add("loop", 16))
	test.ExpectSuccess(t, tbl.Add("loop", 32))
	test.ExpectEquality(t, tbl.Len(), 2)

	// first entry wins
	addr, ok := tbl.Get("loop")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(16))

	// but both are in the output
	w := &test.Writer{}
	test.ExpectSuccess(t, tbl.Write(w))
	test.ExpectEquality(t, w.String(), "16\tloop\n32\tloop\n")
}

func TestUsageErrors(t *testing.T) {
	var tbl *symbols.Table
	test.ExpectSuccess(t, errors.Is(tbl.Add("loop", 0), symbols.ErrNoTable))
	test.ExpectEquality(t, tbl.Len(), 0)
	_, ok := tbl.Get("loop")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, tbl.Mode(), symbols.NonUnique)
	test.ExpectEquality(t, tbl.LabelWidth(), 0)

	tbl, err := symbols.NewTable(symbols.UniqueName)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	test.ExpectSuccess(t, errors.Is(tbl.Add("", 0), symbols.ErrEmptyName))
	test.ExpectEquality(t, tbl.Len(), 0)
}

func TestRoundTrip(t *testing.T) {
	const N = 100

	tbl, err := symbols.NewTable(symbols.UniqueName)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	for i := range N {
		test.DemandSuccess(t, tbl.Add(fmt.Sprintf("label_%d", i), uint32(i*8)))
	}

	w := &strings.Builder{}
	test.DemandSuccess(t, tbl.Write(w))

	lines := strings.Split(strings.TrimSuffix(w.String(), "\n"), "\n")
	test.DemandEquality(t, len(lines), N)
	for i, l := range lines {
		test.ExpectEquality(t, l, fmt.Sprintf("%d\tlabel_%d", i*8, i))
	}

	// read output into a new table and compare
	tbl2, err := symbols.NewTable(symbols.UniqueName)
	test.DemandSuccess(t, err)
	defer tbl2.Destroy()

	res, err := symbols.ReadSymbols(strings.NewReader(w.String()), tbl2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Accepted, N)
	test.ExpectEquality(t, res.Rejected, 0)

	if diff := cmp.Diff(tbl.Symbols(), tbl2.Symbols()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestGrowth(t *testing.T) {
	const N = 1000

	for _, g := range []symbols.Growth{
		{Initial: 1, Increment: 1},
		{Initial: 2, Increment: 7},
		{Initial: 1, Double: true},
		{},
	} {
		tbl, err := symbols.NewTableWithGrowth(symbols.UniqueName, g)
		test.DemandSuccess(t, err, g)

		for i := range N {
			test.DemandSuccess(t, tbl.Add(fmt.Sprintf("l%d", i), uint32(i*4)), g)
		}
		test.ExpectEquality(t, tbl.Len(), N, g)

		for i := range N {
			addr, ok := tbl.Get(fmt.Sprintf("l%d", i))
			test.ExpectSuccess(t, ok, g, i)
			test.ExpectEquality(t, addr, uint32(i*4), g, i)
		}

		// insertion order is preserved
		for i, s := range tbl.Symbols() {
			test.ExpectEquality(t, s, symbols.Symbol{Name: fmt.Sprintf("l%d", i), Address: uint32(i * 4)}, g)
		}

		tbl.Destroy()
	}
}

func TestNameOwnership(t *testing.T) {
	tbl, err := symbols.NewTable(symbols.UniqueName)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	// a string that shares memory with a buffer the caller will reuse
	b := []byte("loop")
	name := unsafe.String(&b[0], len(b))
	test.DemandSuccess(t, tbl.Add(name, 12))

	copy(b, "exit")

	addr, ok := tbl.Get("loop")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, addr, uint32(12))

	_, ok = tbl.Get("exit")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, tbl.Symbols()[0].Name, "loop")
}

func TestSymbolsIsACopy(t *testing.T) {
	tbl, err := symbols.NewTable(symbols.UniqueName)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	test.DemandSuccess(t, tbl.Add("start", 0))
	s := tbl.Symbols()
	s[0].Address = 400

	addr, _ := tbl.Get("start")
	test.ExpectEquality(t, addr, uint32(0))
}

func TestDestroy(t *testing.T) {
	var nilTable *symbols.Table
	nilTable.Destroy()

	tbl, err := symbols.NewTable(symbols.UniqueName)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, tbl.Add("start", 0))
	tbl.Destroy()

	test.ExpectEquality(t, tbl.Len(), 0)
	test.ExpectSuccess(t, errors.Is(tbl.Add("start", 4), symbols.ErrDestroyed))

	// destroying twice is harmless
	tbl.Destroy()
}

func TestNoLeaks(t *testing.T) {
	const N = 10000

	var before, after runtime.MemStats

	runtime.GC()
	runtime.ReadMemStats(&before)

	for i := range N {
		tbl, err := symbols.NewTable(symbols.Mode(i % 2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = tbl.Add("start", 0)
		_ = tbl.Add("loop", 4)
		_ = tbl.Add("end", 8)
		tbl.Destroy()
	}

	runtime.GC()
	runtime.ReadMemStats(&after)

	// every table has been allocated and released
	test.ExpectSuccess(t, after.Mallocs-before.Mallocs >= N)

	const tolerance = 1 << 20
	growth := int64(after.HeapAlloc) - int64(before.HeapAlloc)
	if growth > tolerance {
		t.Errorf("heap has grown by %d bytes after creating and destroying %d tables", growth, N)
	}
}

func TestWrite(t *testing.T) {
	tbl, err := symbols.NewTable(symbols.NonUnique)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	// an empty table writes nothing
	w := &test.Writer{}
	test.ExpectSuccess(t, tbl.Write(w))
	test.ExpectSuccess(t, w.Compare(""))

	test.DemandSuccess(t, tbl.Add("start", 0))
	test.DemandSuccess(t, tbl.Add("vector", 4294967292))

	// nil output is a no-op
	test.ExpectSuccess(t, tbl.Write(nil))

	var nilTable *symbols.Table
	test.ExpectSuccess(t, nilTable.Write(w))

	test.ExpectSuccess(t, tbl.Write(w))
	test.ExpectEquality(t, w.String(), "0\tstart\n4294967292\tvector\n")

	// errors from the output are returned
	fw := &test.FailingWriter{Limit: 10}
	err = tbl.Write(fw)
	test.ExpectSuccess(t, errors.Is(err, test.ErrWriterFull))
}

func TestList(t *testing.T) {
	tbl, err := symbols.NewTable(symbols.UniqueName)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	test.DemandSuccess(t, tbl.Add("a", 4))
	test.DemandSuccess(t, tbl.Add("longer", 16))
	test.ExpectEquality(t, tbl.LabelWidth(), 6)

	w := &strings.Builder{}
	test.DemandSuccess(t, tbl.List(w))
	test.ExpectEquality(t, w.String(), "Labels (unique)\n------\na      -> 0x000004\nlonger -> 0x000010\n")
}

func TestListWideLabels(t *testing.T) {
	tbl, err := symbols.NewTable(symbols.NonUnique)
	test.DemandSuccess(t, err)
	defer tbl.Destroy()

	// label width is counted in characters, not bytes
	test.DemandSuccess(t, tbl.Add("naïve", 4))
	test.DemandSuccess(t, tbl.Add("x", 8))
	test.ExpectEquality(t, tbl.LabelWidth(), 5)
	test.ExpectEquality(t, tbl.String(), "naïve -> 0x000004\nx     -> 0x000008\n")
}

func TestParseMode(t *testing.T) {
	for _, m := range []symbols.Mode{symbols.NonUnique, symbols.UniqueName} {
		p, err := symbols.ParseMode(m.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, m)
	}

	p, err := symbols.ParseMode(" UNIQUE ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, symbols.UniqueName)

	_, err = symbols.ParseMode("sometimes")
	test.ExpectSuccess(t, errors.Is(err, symbols.ErrInvalidMode))

	test.ExpectEquality(t, symbols.Mode(5).String(), "invalid")
}
