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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// helpWriter collects the usage output of the flag package so that it can be
// amended before being shown to the user.
type helpWriter struct {
	buffer strings.Builder
}

func (hw *helpWriter) Write(p []byte) (n int, err error) {
	return hw.buffer.Write(p)
}

// help writes the collected usage to output with the mode path, sub-modes
// and additional help text.
func (hw *helpWriter) help(output io.Writer, path string, subModes []string, additionalHelp string) {
	banner, flags, _ := strings.Cut(hw.buffer.String(), "\n")

	if flags == "" && len(subModes) == 0 && additionalHelp == "" {
		if path == "" {
			fmt.Fprintln(output, "No help available")
		} else {
			fmt.Fprintf(output, "No help available for %s\n", path)
		}
		return
	}

	var s strings.Builder

	if path == "" {
		s.WriteString(banner)
		s.WriteString("\n")
	} else {
		fmt.Fprintf(&s, "%s for %s mode\n", banner, path)
	}

	s.WriteString(flags)

	if len(subModes) > 0 {
		if flags != "" {
			s.WriteString("\n")
		}
		fmt.Fprintf(&s, "  available sub-modes: %s\n", strings.Join(subModes, ", "))
		fmt.Fprintf(&s, "    default: %s\n", subModes[0])
	}

	if additionalHelp != "" {
		fmt.Fprintf(&s, "\n%s\n", additionalHelp)
	}

	_, _ = io.WriteString(output, s.String())
}
