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
	"fmt"
	"sort"
	"strings"
	"sync"
)

// the separator between key and value in a command line prefs string
const keyValueSeparator = "::"

// the separator between key/value pairs
const pairSeparator = ";"

var commandLine struct {
	crit  sync.Mutex
	stack []map[string]string
}

// SizeCommandLineStack returns the number of groups on the stack.
func SizeCommandLineStack() int {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	return len(commandLine.stack)
}

// PushCommandLineStack adds a new group of preferences to the stack. The
// prefs string is a series of key/value pairs separated by semi-colons. For
// example:
//
//	symbols.unique::true; symbols.increment::64
//
// Malformed pairs are ignored.
func PushCommandLineStack(prefs string) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	cl := make(map[string]string)
	for _, p := range strings.Split(prefs, pairSeparator) {
		kv := strings.Split(p, keyValueSeparator)
		if len(kv) == 2 {
			k := strings.TrimSpace(kv[0])
			if k != "" {
				cl[k] = strings.TrimSpace(kv[1])
			}
		}
	}

	commandLine.stack = append(commandLine.stack, cl)
}

// PopCommandLineStack removes the most recent group from the stack. The
// entries in the group that have not been used by GetCommandLinePref() are
// returned as a prefs string, sorted by key.
func PopCommandLineStack() string {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	if len(commandLine.stack) == 0 {
		return ""
	}

	popped := commandLine.stack[len(commandLine.stack)-1]
	commandLine.stack = commandLine.stack[:len(commandLine.stack)-1]

	keys := make([]string, 0, len(popped))
	for key := range popped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s%s ", key, keyValueSeparator, popped[key], pairSeparator))
	}

	return strings.TrimSuffix(s.String(), pairSeparator+" ")
}

// GetCommandLinePref returns the value for the key in the most recent group
// on the stack. The entry is removed from the group once it has been
// retrieved.
func GetCommandLinePref(key string) (bool, Value) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	if len(commandLine.stack) == 0 {
		return false, nil
	}

	cl := commandLine.stack[len(commandLine.stack)-1]
	if v, ok := cl[key]; ok {
		delete(cl, key)
		return true, v
	}

	return false, nil
}
