// Command mwpcheck runs mwp-analysis on a C source file and reports,
// per function, whether every variable admits a polynomial bound.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumin/mwp"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mwpcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outfile := fs.String("outfile", "", "file for storing analysis result")
	logfile := fs.String("logfile", "", "save log messages into a file")
	noSave := fs.Bool("no-save", false, "skip writing result to file")
	noCpp := fs.Bool("no-cpp", false, "disable execution of a C pre-processor on the input file")
	cpp := fs.String("cpp", "gcc", "path to C pre-processor on your system (default: gcc)")
	cppArgs := fs.String("cpp-args", "-E", "arguments to pass to the C pre-processor (default: -E)")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *showVersion {
		fmt.Fprintln(stdout, "mwpcheck", version)
		return 0
	}

	file := fs.Arg(0)
	if file == "" {
		fs.Usage()
		return 1
	}

	logger, closeLog, err := newLogger(*logfile, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "mwpcheck:", err)
		return 1
	}
	defer closeLog()

	if !*noCpp {
		logger.Debug("skipping C pre-processor invocation, not supported by this build", "cpp", *cpp, "cpp_args", *cppArgs)
	}

	src, err := os.ReadFile(file)
	if err != nil {
		logger.Error("reading input file", "file", file, "err", err)
		return 1
	}

	funcs, err := mwp.ParseProgram(string(src))
	if err != nil {
		logger.Error("parsing input file", "file", file, "err", err)
		return 1
	}

	res := mwp.Run(funcs, mwp.ChoiceDomain, logger, false)

	if !*noSave {
		dest := *outfile
		if dest == "" {
			dest = defaultOutfile(file)
		}
		if err := writeResult(dest, res); err != nil {
			logger.Error("writing result file", "file", dest, "err", err)
			return 1
		}
	}

	return 0
}

func newLogger(logfile string, stderr io.Writer) (*slog.Logger, func(), error) {
	handlerWriter := stderr
	closeFn := func() {}
	if logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, nil, err
		}
		handlerWriter = f
		closeFn = func() { f.Close() }
	}
	return slog.New(slog.NewTextHandler(handlerWriter, nil)), closeFn, nil
}

// defaultOutfile mirrors pymwp's default_file_out: the input file's
// base name, with its extension replaced by .json, in the current
// directory.
func defaultOutfile(inputFile string) string {
	base := filepath.Base(inputFile)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".json"
}

func writeResult(dest string, res *mwp.Result) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
