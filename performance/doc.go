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

// Package performance contains helper functions for examining the
// performance of the symtab command.
//
// RunProfiler() runs a function while collecting CPU and heap profiles. The
// profiles are written to the "profiles" resource directory (see the paths
// package) and can be examined with "go tool pprof".
//
// LaunchStatsview() starts a local HTTP server showing live runtime
// statistics. After launch the statistics are available at:
//
//	localhost:12600/debug/statsview
//
// and the standard Go pprof pages at:
//
//	localhost:12600/debug/pprof/
package performance
