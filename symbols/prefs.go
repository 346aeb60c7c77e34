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

	"github.com/jetsetilly/symtab/paths"
	"github.com/jetsetilly/symtab/prefs"
)

// the name of the preferences file in the resource directory
const prefsFile = "symtab.toml"

// the largest value allowed for the initial and increment preferences
const maxGrowthPref = 1 << 16

// Preferences for new tables.
type Preferences struct {
	dsk *prefs.Disk

	// create tables in UniqueName mode
	Unique prefs.Bool

	// the Growth values for new tables
	Initial   prefs.Int
	Increment prefs.Int
	Double    prefs.Bool
}

func (p *Preferences) String() string {
	return fmt.Sprintf("mode=%s initial=%s increment=%s double=%s", p.Mode(), p.Initial.String(), p.Increment.String(), p.Double.String())
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file in the
// resource directory.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFile(pth)
}

// NewPreferencesFile is the same as NewPreferences() but with a named
// preferences file.
func NewPreferencesFile(filename string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	growthRange := func(v prefs.Value) error {
		if v.(int) <= 0 || v.(int) > maxGrowthPref {
			return fmt.Errorf("symbols: value must be between 1 and %d (%d)", maxGrowthPref, v.(int))
		}
		return nil
	}
	p.Initial.SetHookPre(growthRange)
	p.Increment.SetHookPre(growthRange)

	var err error
	p.dsk, err = prefs.NewDisk(filename)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Add("symbols.unique", &p.Unique); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("symbols.initial", &p.Initial); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("symbols.increment", &p.Increment); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("symbols.double", &p.Double); err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.Unique.Set(false)
	_ = p.Initial.Set(DefaultGrowth.Initial)
	_ = p.Increment.Set(DefaultGrowth.Increment)
	_ = p.Double.Set(DefaultGrowth.Double)
}

// Load preferences from disk. Command line preferences are applied after the
// file has been read.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Write every preference to output, one per line, in key order.
func (p *Preferences) Write(output io.Writer) error {
	for _, k := range p.dsk.Keys() {
		v, ok := p.dsk.Lookup(k)
		if !ok {
			continue // for loop
		}
		if _, err := fmt.Fprintf(output, "%s = %s\n", k, v); err != nil {
			return fmt.Errorf("symbols: %w", err)
		}
	}
	return nil
}

// Mode returns the table Mode indicated by the Unique preference.
func (p *Preferences) Mode() Mode {
	if p.Unique.Get().(bool) {
		return UniqueName
	}
	return NonUnique
}

// Growth returns the growth policy described by the preferences.
func (p *Preferences) Growth() Growth {
	return Growth{
		Initial:   p.Initial.Get().(int),
		Increment: p.Increment.Get().(int),
		Double:    p.Double.Get().(bool),
	}
}

// NewTable creates a new Table using the preferred mode and growth policy.
func (p *Preferences) NewTable() (*Table, error) {
	return NewTableWithGrowth(p.Mode(), p.Growth())
}
