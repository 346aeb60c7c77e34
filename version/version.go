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

// Package version reports the version of the symtab command. The version
// number is set at build time with:
//
//	go build -ldflags "-X github.com/jetsetilly/symtab/version.number=v1.0.0"
//
// Without a version number the VCS information embedded by the Go toolchain
// is used instead.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "symtab"

// set by the linker. see package documentation
var number string

// Info describes the build of the running program.
type Info struct {
	// the version number or one of "unreleased" or "local". unreleased means
	// that the program was built from a VCS checkout without a version number
	// and local means that there is no VCS information at all
	Version string

	// the VCS revision. suffixed with "+dirty" if the working tree had been
	// modified
	Revision string

	// true if Version is a release number
	Release bool
}

func (i Info) String() string {
	if i.Release {
		return fmt.Sprintf("%s %s", ApplicationName, i.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, i.Version, i.Revision)
}

// Version returns build information for the running program.
func Version() Info {
	info, _ := debug.ReadBuildInfo()
	return fromBuildInfo(number, info)
}

func fromBuildInfo(number string, info *debug.BuildInfo) Info {
	var vcs bool
	var revision string
	var modified bool

	if info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	v := Info{
		Version:  number,
		Revision: revision,
		Release:  number != "",
	}

	if v.Revision == "" {
		v.Revision = "no revision information"
	} else if modified {
		v.Revision += "+dirty"
	}

	if !v.Release {
		if vcs {
			v.Version = "unreleased"
		} else {
			v.Version = "local"
		}
	}

	return v
}
