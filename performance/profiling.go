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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/pkg/errors"

	"github.com/jetsetilly/symtab/logger"
	"github.com/jetsetilly/symtab/paths"
)

// Profile specifies which profiles are to be created by RunProfiler().
type Profile int

// List of valid Profile values. Values can be combined.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 0b01
	ProfileMem  Profile = 0b10
	ProfileAll  Profile = ProfileCPU | ProfileMem
)

func (p Profile) String() string {
	switch p {
	case ProfileNone:
		return "none"
	case ProfileCPU:
		return "cpu"
	case ProfileMem:
		return "mem"
	case ProfileAll:
		return "cpu,mem"
	}
	return fmt.Sprintf("invalid (%d)", int(p))
}

// ParseProfile converts a comma separated list of profile names to a Profile
// value. Valid names are NONE, CPU, MEM and ALL. Case insensitive.
func ParseProfile(s string) (Profile, error) {
	var p Profile
	for _, n := range strings.Split(s, ",") {
		switch strings.ToUpper(strings.TrimSpace(n)) {
		case "", "NONE":
		case "CPU":
			p |= ProfileCPU
		case "MEM":
			p |= ProfileMem
		case "ALL":
			p |= ProfileAll
		default:
			return ProfileNone, errors.Errorf("performance: unknown profile type (%s)", n)
		}
	}
	return p, nil
}

// RunProfiler runs the supplied function and creates the profiles requested
// by the Profile argument. Profile files are named with the filenameHeader
// and placed in the profiles resource directory.
//
// The heap profile is written after run() returns, even if run() returned an
// error.
func RunProfiler(profile Profile, filenameHeader string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		fn, err := profileFile(filenameHeader, "cpu")
		if err != nil {
			return err
		}

		f, err := os.Create(fn)
		if err != nil {
			return errors.Wrap(err, "performance")
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "performance")
		}
		defer pprof.StopCPUProfile()

		logger.Logf(logger.Allow, "performance", "cpu profile: %s", fn)
	}

	runErr := run()

	if profile&ProfileMem == ProfileMem {
		fn, err := profileFile(filenameHeader, "mem")
		if err != nil {
			return err
		}
		if err := memProfile(fn); err != nil {
			return err
		}
		logger.Logf(logger.Allow, "performance", "mem profile: %s", fn)
	}

	return runErr
}

func profileFile(header string, kind string) (string, error) {
	fn := paths.UniqueFilename(header, kind) + ".profile"
	pth, err := paths.ResourcePath("profiles", fn)
	if err != nil {
		return "", errors.Wrap(err, "performance")
	}
	return pth, nil
}

func memProfile(outFile string) error {
	f, err := os.Create(outFile)
	if err != nil {
		return errors.Wrap(err, "performance")
	}

	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "performance")
	}

	return errors.Wrap(f.Close(), "performance")
}
