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

package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// the separator between the parts of a key. a key of "symbols.unique" is
// stored in the file as the value "unique" in the table "symbols"
const keySeparator = "."

// Disk represents preference values as stored on disk in a TOML file.
type Disk struct {
	path    string
	entries map[string]Pref

	// values found in the file that have not been claimed by a call to Add().
	// they are preserved when the file is saved
	unclaimed map[string]any
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for preferences file")
	}

	return &Disk{
		path:      path,
		entries:   make(map[string]Pref),
		unclaimed: make(map[string]any),
	}, nil
}

// Add preference value to the Disk instance.
func (dsk *Disk) Add(key string, p Pref) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, " \t") {
		return fmt.Errorf("prefs: illegal key (%q)", key)
	}
	for _, k := range strings.Split(key, keySeparator) {
		if k == "" {
			return fmt.Errorf("prefs: illegal key (%q)", key)
		}
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key already added (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// Keys returns the sorted list of keys that have been added.
func (dsk *Disk) Keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the preference added with the key.
func (dsk *Disk) Lookup(key string) (Pref, bool) {
	p, ok := dsk.entries[key]
	return p, ok
}

// Load preference values from disk. A missing file is not an error and the
// existing values are kept.
//
// Values on the command line stack (see PushCommandLineStack()) are applied
// after the file has been read and take priority over it.
func (dsk *Disk) Load() error {
	data, err := os.ReadFile(dsk.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("prefs: %w", err)
	}

	if err == nil {
		m := make(map[string]any)
		if _, err := toml.Decode(string(data), &m); err != nil {
			return fmt.Errorf("prefs: %s: %w", dsk.path, err)
		}

		flat := make(map[string]any)
		flatten("", m, flat)

		for k, v := range flat {
			if p, ok := dsk.entries[k]; ok {
				if err := p.Set(v); err != nil {
					return fmt.Errorf("prefs: %s: %w", k, err)
				}
			} else {
				dsk.unclaimed[k] = v
			}
		}
	}

	for k, p := range dsk.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}

// Save current preference values to disk. Values in the file that were not
// added to the Disk instance are preserved.
func (dsk *Disk) Save() error {
	nested := make(map[string]any)
	for k, v := range dsk.unclaimed {
		setNested(nested, k, v)
	}
	for k, p := range dsk.entries {
		setNested(nested, k, p.Get())
	}

	if err := os.MkdirAll(filepath.Dir(dsk.path), 0o700); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	err = toml.NewEncoder(f).Encode(nested)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("prefs: %s: %w", dsk.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// flatten nested TOML tables into a single level map with keys joined with
// the key separator.
func flatten(prefix string, m map[string]any, flat map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + keySeparator + k
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(key, sub, flat)
			continue // for loop
		}
		flat[key] = v
	}
}

// setNested is the reverse of flatten() for a single key.
func setNested(m map[string]any, key string, v any) {
	parts := strings.Split(key, keySeparator)
	for _, p := range parts[:len(parts)-1] {
		sub, ok := m[p].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			m[p] = sub
		}
		m = sub
	}
	m[parts[len(parts)-1]] = v
}
