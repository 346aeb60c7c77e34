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
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dolthub/swiss"
	"github.com/pkg/errors"

	"github.com/jetsetilly/symtab/logger"
)

// Symbol is a single entry in the Table.
type Symbol struct {
	Name    string
	Address uint32
}

func (s Symbol) String() string {
	return fmt.Sprintf("%d\t%s", s.Address, s.Name)
}

// Growth describes how the backing store of a Table is enlarged when it is
// full.
type Growth struct {
	// capacity of a newly created table
	Initial int

	// number of entries added to the capacity each time the table is full.
	// ignored if Double is true
	Increment int

	// double the capacity rather than add Increment
	Double bool
}

// DefaultGrowth is used by NewTable().
var DefaultGrowth = Growth{
	Initial:   32,
	Increment: 32,
}

// normalise replaces unusable values with the values in DefaultGrowth.
func (g Growth) normalise() Growth {
	if g.Initial <= 0 {
		g.Initial = DefaultGrowth.Initial
	}
	if g.Increment <= 0 {
		g.Increment = DefaultGrowth.Increment
	}
	return g
}

// the number of entries a table can hold. the entry count is a 32bit
// quantity.
var maxEntries uint64 = math.MaxUint32

// the size hint given to the index is capped. the index grows on its own
const maxIndexHint = 4096

// exit is called after an allocation failure has been logged.
var exit = os.Exit

// Table maps label names to addresses. Entries are kept in the order in which
// they were added.
type Table struct {
	mode   Mode
	growth Growth

	// the entries in insertion order. the capacity of the slice is managed by
	// grow() and not by append()
	entries []Symbol

	// index of the first entry for each name
	index *swiss.Map[string, int]

	// the longest name in the table
	maxWidth int

	destroyed bool
}

// NewTable is the preferred method of initialisation for the Table type. The
// DefaultGrowth policy is used.
//
// Returns ErrInvalidMode and a nil table if mode is not recognised.
func NewTable(mode Mode) (*Table, error) {
	return NewTableWithGrowth(mode, DefaultGrowth)
}

// NewTableWithGrowth is the same as NewTable() but with a specific growth
// policy. Zero or negative values in the Growth argument are replaced with
// values from DefaultGrowth.
func NewTableWithGrowth(mode Mode, g Growth) (*Table, error) {
	if !mode.valid() {
		logger.Logf(logger.Allow, "symbols", "invalid table mode (%d)", mode)
		return nil, errors.Wrapf(ErrInvalidMode, "symbols: %d", mode)
	}

	g = g.normalise()

	tbl := &Table{
		mode:   mode,
		growth: g,
	}
	tbl.allocate(g.Initial)
	tbl.index = swiss.NewMap[string, int](uint32(min(g.Initial, maxIndexHint)))

	return tbl, nil
}

// allocationFailed logs the failure and exits the program. there is no
// recovery from an allocation failure.
func allocationFailed(detail any) {
	logger.Logf(logger.Allow, "symbols", "allocation failed: %v", detail)
	logger.Tail(os.Stderr, 1)
	exit(1)
}

// allocate new backing store with the specified capacity and copy the
// existing entries into it.
func (tbl *Table) allocate(capacity int) {
	if capacity < 0 || uint64(capacity) > maxEntries {
		allocationFailed(fmt.Sprintf("capacity of %d entries is too large", capacity))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			allocationFailed(r)
		}
	}()

	entries := make([]Symbol, len(tbl.entries), capacity)
	copy(entries, tbl.entries)
	tbl.entries = entries
}

// grow the backing store according to the growth policy.
func (tbl *Table) grow() {
	c := cap(tbl.entries)
	if tbl.growth.Double {
		if c > math.MaxInt/2 {
			allocationFailed("capacity overflow")
			return
		}
		tbl.allocate(c * 2)
		return
	}

	if c > math.MaxInt-tbl.growth.Increment {
		allocationFailed("capacity overflow")
		return
	}
	tbl.allocate(c + tbl.growth.Increment)
}

// Add a symbol to the table. The name is copied and the table never refers to
// the caller's string.
//
// Returns ErrAlignment if the address is not a multiple of four and
// ErrDuplicateName if the table mode is UniqueName and the name is already in
// the table. In both cases the table is unchanged.
func (tbl *Table) Add(name string, addr uint32) error {
	if tbl == nil {
		return ErrNoTable
	}
	if tbl.destroyed {
		return ErrDestroyed
	}
	if name == "" {
		return ErrEmptyName
	}

	if addr%4 != 0 {
		logger.Logf(logger.Allow, "symbols", "address is not a multiple of 4 (%d)", addr)
		return errors.Wrapf(ErrAlignment, "symbols: %s: %d", name, addr)
	}

	idx, found := tbl.index.Get(name)
	if found && tbl.mode == UniqueName {
		logger.Logf(logger.Allow, "symbols", "name '%s' already exists in table", name)
		return errors.Wrapf(ErrDuplicateName, "symbols: %s", name)
	}

	if len(tbl.entries) == cap(tbl.entries) {
		tbl.grow()
	}

	tbl.entries = append(tbl.entries, Symbol{
		Name:    strings.Clone(name),
		Address: addr,
	})

	// the index only ever refers to the first entry of a name
	if !found {
		idx = len(tbl.entries) - 1
		tbl.index.Put(tbl.entries[idx].Name, idx)
	}

	// fmt pads by rune so the width is measured the same way
	if w := utf8.RuneCountInString(name); w > tbl.maxWidth {
		tbl.maxWidth = w
	}

	return nil
}

// Lookup returns the first Symbol with the specified name.
func (tbl *Table) Lookup(name string) (Symbol, bool) {
	if tbl == nil || tbl.index == nil {
		return Symbol{}, false
	}
	if idx, ok := tbl.index.Get(name); ok {
		return tbl.entries[idx], true
	}
	return Symbol{}, false
}

// Get returns the address of the first symbol with the specified name. The
// boolean result is false if the name is not in the table.
func (tbl *Table) Get(name string) (uint32, bool) {
	s, ok := tbl.Lookup(name)
	return s.Address, ok
}

// AddressOf is the same as Get() except that the address is returned as an
// int64, which will be NotFound if the name is not in the table.
func (tbl *Table) AddressOf(name string) int64 {
	if addr, ok := tbl.Get(name); ok {
		return int64(addr)
	}
	return NotFound
}

// Len returns the number of entries in the table.
func (tbl *Table) Len() int {
	if tbl == nil {
		return 0
	}
	return len(tbl.entries)
}

// Mode returns the mode the table was created with.
func (tbl *Table) Mode() Mode {
	if tbl == nil {
		return NonUnique
	}
	return tbl.mode
}

// LabelWidth returns the maximum number of characters required by a name in
// the table.
func (tbl *Table) LabelWidth() int {
	if tbl == nil {
		return 0
	}
	return tbl.maxWidth
}

// Symbols returns a copy of every entry in the table, in insertion order.
func (tbl *Table) Symbols() []Symbol {
	if tbl == nil {
		return nil
	}
	s := make([]Symbol, len(tbl.entries))
	copy(s, tbl.entries)
	return s
}

// Destroy releases every entry and the index. It is safe to call Destroy() on
// a nil table. The table should not be used once it has been destroyed.
func (tbl *Table) Destroy() {
	if tbl == nil {
		return
	}

	clear(tbl.entries)
	tbl.entries = nil

	if tbl.index != nil {
		tbl.index.Clear()
		tbl.index = nil
	}

	tbl.maxWidth = 0
	tbl.destroyed = true
}
