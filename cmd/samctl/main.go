// Package main is samctl's command-line entry point: load a file, run a
// script of sam command lines against it, and either write the result
// back (`run`) or just report errors (`check`). Grounded on the
// teacher's cmd/glitter/glitter.go: a package-global Options struct
// filled in by flag.*Var in init(), a one-line banner, and a verbosity-
// gated Info helper, generalized from glitter's weave/tangle dual mode
// to samctl's run/check dual mode.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"monogrammedchalk.com/samctl/address"
	"monogrammedchalk.com/samctl/executor"
	"monogrammedchalk.com/samctl/handlers"
	"monogrammedchalk.com/samctl/process"
	"monogrammedchalk.com/samctl/transcript"
	"monogrammedchalk.com/samctl/uiiface"
)

const versionStr = "0.1"

// SamctlOptions stores global options about how to operate, mirroring
// the teacher's GlitterOptions.
type SamctlOptions struct {
	Verbose    int
	ScriptFile string
	Shell      string
	ShowUsage  bool
	Command    string
	GivenFiles []string
}

// NewSamctlOptions returns an options struct with the defaults.
func NewSamctlOptions() SamctlOptions {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return SamctlOptions{Shell: shell}
}

// Options is a global variable describing how to operate, mirroring the
// teacher's package-global Options.
var Options = NewSamctlOptions()

// Info prints the message if the verbosity level is level or greater.
func Info(level int, msg string, args ...any) {
	if Options.Verbose >= level {
		log.Printf(msg+"\n", args...)
	}
}

func printBanner() {
	fmt.Fprintf(os.Stderr, "samctl version %s.\n", versionStr)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: samctl [options] run|check file...")
	flag.PrintDefaults()
}

func init() {
	flag.IntVar(&Options.Verbose, "v", 0, "how much info to print")
	flag.StringVar(&Options.ScriptFile, "script", "", "file of sam command lines to run (default: read from stdin)")
	flag.StringVar(&Options.Shell, "shell", Options.Shell, "shell used by the SHELL-flagged commands (>,<,|,!)")
	flag.BoolVar(&Options.ShowUsage, "h", false, "show usage and quit")
}

func main() {
	log.SetPrefix("samctl: ")
	log.SetFlags(0)

	printBanner()

	flag.Parse()
	if Options.ShowUsage || len(flag.Args()) < 2 {
		printUsage()
		os.Exit(0)
	}
	Options.Command = flag.Arg(0)
	Options.GivenFiles = flag.Args()[1:]

	var err error
	switch Options.Command {
	case "run":
		err = runFiles(Options.GivenFiles, true)
	case "check":
		err = runFiles(Options.GivenFiles, false)
	default:
		printUsage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// runFiles opens every file in an Engine, runs the configured script
// against each in turn, and — when write is true — writes the result
// back to disk; otherwise it only reports errors accumulated in the
// engine's ErrLog, per SPEC_FULL.md §3's run/check dual mode.
func runFiles(files []string, write bool) error {
	eng := executor.New(uiiface.NewLogger())
	eng.Shell = Options.Shell
	eng.Runner = process.New(Options.Shell)
	handlers.Register(eng)

	script, err := readScript(Options.ScriptFile)
	if err != nil {
		return err
	}

	ids := make(map[string]transcript.WindowID, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("samctl: %s: %w", name, err)
		}
		id := eng.Open(name, data)
		ids[name] = id
		Info(1, "opened %s", name)
	}

	var lastErr error
	for name, id := range ids {
		if !eng.Focus(id) {
			continue
		}
		for _, line := range script {
			if err := eng.Exec([]byte(line)); err != nil {
				Info(0, "%s: %v", name, err)
				lastErr = err
			}
		}
		if write {
			if f, ok := eng.File(id); ok {
				if err := f.SaveBegin(""); err != nil {
					lastErr = err
					continue
				}
				if err := f.WriteRange(address.Range{Start: 0, End: f.Size()}); err != nil {
					f.Cancel()
					lastErr = err
					continue
				}
				if err := f.Commit(); err != nil {
					lastErr = err
					continue
				}
				Info(1, "wrote %s", name)
			}
		}
	}

	for _, e := range eng.ErrLog.Entries() {
		fmt.Fprintln(os.Stderr, e.String())
	}
	if len(eng.ErrLog.Entries()) > 0 && lastErr == nil {
		lastErr = fmt.Errorf("samctl: %d error(s) reported", len(eng.ErrLog.Entries()))
	}
	return lastErr
}

// readScript reads newline-separated sam command lines from path, or
// from stdin if path is empty.
func readScript(path string) ([]string, error) {
	var r *os.File
	if path == "" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
