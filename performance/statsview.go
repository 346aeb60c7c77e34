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
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/jetsetilly/symtab/logger"
)

// StatsviewAddress is the address of the HTTP server started by
// LaunchStatsview().
const StatsviewAddress = "localhost:12600"

const statsviewURL = "/debug/statsview"

// LaunchStatsview starts a HTTP server in a new goroutine. The server offers
// graphical runtime statistics and the standard pprof endpoints. The
// returned function stops the server.
func LaunchStatsview(output io.Writer) (stop func()) {
	viewer.SetConfiguration(viewer.WithAddr(StatsviewAddress))
	mgr := statsview.New()

	go func() {
		logger.Logf(logger.Allow, "statsview", "starting server on %s", StatsviewAddress)
		mgr.Start()
	}()

	fmt.Fprintf(output, "stats server available at %s%s\n", StatsviewAddress, statsviewURL)

	return mgr.Stop
}
