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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/pkg/errors"

	"github.com/jetsetilly/symtab/logger"
	"github.com/jetsetilly/symtab/modalflag"
	"github.com/jetsetilly/symtab/performance"
	"github.com/jetsetilly/symtab/prefs"
	"github.com/jetsetilly/symtab/symbols"
	"github.com/jetsetilly/symtab/version"
)

// exit values returned by run()
const (
	exitOK          = 0
	exitCommandLine = 10
	exitMode        = 20
)

const additionalHelp = `Symbol files contain one record per line. A record is an unsigned decimal
address and a name separated by a single tab. Addresses must be a multiple
of four.`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run the symtab command with the supplied arguments. returns the exit value
// for the process.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	md := &modalflag.Modes{Output: stdout}
	md.NewArgs(args)
	md.AddSubModes("LOOKUP", "CHECK", "DUMP", "VERSION", "PREFS")
	md.AddDefaultSubMode("LIST")
	md.AdditionalHelp(additionalHelp)

	log := md.AddBool("log", false, "echo log to stderr")
	prf := md.AddString("prefs", "", "preferences for this run. eg. \"symbols.double::true; symbols.increment::64\"")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Fprintf(stderr, "* error: %v\n", err)
		return exitCommandLine
	}

	if *log {
		logger.SetEcho(stderr)
	} else {
		logger.SetEcho(nil)
	}

	if *prf != "" {
		prefs.PushCommandLineStack(*prf)
	}

	defer func() {
		// preferences on the command line that were never used are most
		// likely to be typos
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "symtab", "unused preferences: %s", unused)
		}
	}()

	switch md.Mode() {
	case "LIST":
		err = list(md, stdout, stderr)
	case "LOOKUP":
		err = lookup(md, stdout)
	case "CHECK":
		err = check(md, stdout)
	case "DUMP":
		err = dump(md)
	case "VERSION":
		fmt.Fprintln(stdout, version.Version())
	case "PREFS":
		err = showPrefs(md, stdout)
	}

	if err != nil {
		fmt.Fprintf(stderr, "* error in %s mode: %v\n", md, err)
		return exitMode
	}

	return exitOK
}

// tableFlags are the flags common to every mode that creates a table.
type tableFlags struct {
	unique    *bool
	double    *bool
	initial   *int
	increment *int
}

func addTableFlags(md *modalflag.Modes) tableFlags {
	return tableFlags{
		unique:    md.AddBool("unique", false, "reject duplicate names"),
		double:    md.AddBool("double", false, "double table capacity when it is full"),
		initial:   md.AddInt("initial", symbols.DefaultGrowth.Initial, "initial table capacity"),
		increment: md.AddInt("increment", symbols.DefaultGrowth.Increment, "capacity added when the table is full"),
	}
}

// newTable creates a table according to the preferences file. flags that
// were set explicitly on the command line override the preferences and are
// checked in the same way.
func newTable(md *modalflag.Modes, flgs tableFlags) (*symbols.Table, error) {
	p, err := symbols.NewPreferences()
	if err != nil {
		return nil, err
	}

	md.Visit(func(flg string) {
		if err != nil {
			return
		}
		switch flg {
		case "unique":
			err = p.Unique.Set(*flgs.unique)
		case "double":
			err = p.Double.Set(*flgs.double)
		case "initial":
			err = p.Initial.Set(*flgs.initial)
		case "increment":
			err = p.Increment.Set(*flgs.increment)
		}
	})
	if err != nil {
		return nil, err
	}

	return p.NewTable()
}

// loadFiles reads every file into the table. rejected records are not an
// error but the total number is returned.
func loadFiles(tbl *symbols.Table, files []string) (symbols.ReadResult, error) {
	var total symbols.ReadResult
	for _, fn := range files {
		res, err := symbols.ReadSymbolsFile(fn, tbl)
		total.Accepted += res.Accepted
		total.Rejected += res.Rejected
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func list(md *modalflag.Modes, stdout io.Writer, stderr io.Writer) error {
	md.NewMode()

	flgs := addTableFlags(md)
	out := md.AddString("out", "", "write table to file rather than stdout")
	labels := md.AddBool("labels", false, "list symbols as an aligned table of labels")
	profile := md.AddString("profile", "none", "run with profiling. CPU, MEM or ALL")
	stats := md.AddBool("statsview", false, "run stats server (localhost:12600)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("symbol file required for %s mode", md)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	if *stats {
		stop := performance.LaunchStatsview(stderr)
		defer stop()
	}

	return performance.RunProfiler(prf, "list", func() error {
		tbl, err := newTable(md, flgs)
		if err != nil {
			return err
		}
		defer tbl.Destroy()

		res, err := loadFiles(tbl, md.RemainingArgs())
		if err != nil {
			return err
		}
		if res.Rejected > 0 {
			logger.Logf(logger.Allow, "symtab", "%d records rejected", res.Rejected)
		}

		if *out == "" {
			return writeTable(tbl, stdout, *labels)
		}

		// the output file is only created once every input has been read.
		// the output file can be one of the inputs
		f, err := os.Create(*out)
		if err != nil {
			return errors.Wrap(err, "symtab")
		}
		if err := writeTable(tbl, f, *labels); err != nil {
			_ = f.Close()
			return err
		}
		return errors.Wrap(f.Close(), "symtab")
	})
}

func writeTable(tbl *symbols.Table, output io.Writer, labels bool) error {
	if labels {
		return tbl.List(output)
	}
	return tbl.Write(output)
}

func lookup(md *modalflag.Modes, stdout io.Writer) error {
	md.NewMode()

	flgs := addTableFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) < 2 {
		return fmt.Errorf("symbol file and at least one name required for %s mode", md)
	}

	tbl, err := newTable(md, flgs)
	if err != nil {
		return err
	}
	defer tbl.Destroy()

	if _, err := symbols.ReadSymbolsFile(md.GetArg(0), tbl); err != nil {
		return err
	}

	unresolved := 0
	for _, name := range md.RemainingArgs()[1:] {
		if sym, ok := tbl.Lookup(name); ok {
			fmt.Fprintln(stdout, sym.String())
		} else {
			fmt.Fprintf(stdout, "unresolved symbol: %s\n", name)
			unresolved++
		}
	}

	if unresolved > 0 {
		return fmt.Errorf("%d unresolved symbols", unresolved)
	}

	return nil
}

func check(md *modalflag.Modes, stdout io.Writer) error {
	md.NewMode()

	flgs := addTableFlags(md)
	verbose := md.AddBool("verbose", false, "show the reason for every rejected record")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("symbol file required for %s mode", md)
	}

	tbl, err := newTable(md, flgs)
	if err != nil {
		return err
	}
	defer tbl.Destroy()

	if *verbose {
		logger.Clear()
	}

	// files are checked against the same table so that duplicates across
	// files are found in unique mode
	rejected := 0
	for _, fn := range md.RemainingArgs() {
		res, err := symbols.ReadSymbolsFile(fn, tbl)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %d accepted, %d rejected\n", fn, res.Accepted, res.Rejected)
		rejected += res.Rejected
	}

	if *verbose {
		logger.Write(stdout)
	}

	if rejected > 0 {
		return fmt.Errorf("%d records rejected", rejected)
	}

	return nil
}

func dump(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addTableFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0, 1:
		return fmt.Errorf("symbol file and output file required for %s mode", md)
	case 2:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	tbl, err := newTable(md, flgs)
	if err != nil {
		return err
	}
	defer tbl.Destroy()

	if _, err := symbols.ReadSymbolsFile(md.GetArg(0), tbl); err != nil {
		return err
	}

	f, err := os.Create(md.GetArg(1))
	if err != nil {
		return errors.Wrap(err, "symtab")
	}

	syms := tbl.Symbols()
	memviz.Map(f, &syms)

	return errors.Wrap(f.Close(), "symtab")
}

func showPrefs(md *modalflag.Modes, stdout io.Writer) error {
	md.NewMode()

	save := md.AddBool("save", false, "save preferences, including those given with -prefs")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := symbols.NewPreferences()
	if err != nil {
		return err
	}

	if *save {
		if err := prf.Save(); err != nil {
			return err
		}
	}

	return prf.Write(stdout)
}
