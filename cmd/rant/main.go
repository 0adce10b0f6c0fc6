/*
File    : rant/cmd/rant/main.go
Package : main

Package main is the entry point for the Rant command-line tool. It
provides two modes of operation:
 1. File mode: compile and run a .rant pattern file from the command line
 2. REPL mode (default, no file given): interactive read-eval-print loop

Grounded on the teacher's main/main.go (flag dispatch, colored error
reporting, panic recovery around the compile/run pipeline).
*/
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/mouzizhang/rant/dictionary"
	"github.com/mouzizhang/rant/program"
	"github.com/mouzizhang/rant/yamldict"
)

// VERSION is the current version of the Rant CLI.
var VERSION = "v1.0.0"

// AUTHOR contains the contact information shown in --version/--help output.
var AUTHOR = "rant maintainers"

// LICENCE specifies the software license.
var LICENCE = "MIT"

// PROMPT is the command prompt displayed in REPL mode.
var PROMPT = "rant >>> "

// BANNER is the ASCII art logo displayed when starting the REPL.
var BANNER = `
  ██▀███   ▄▄▄       ███▄    █ ▄▄▄█████▓
 ▓██ ▒ ██▒▒████▄     ██ ▀█   █ ▓  ██▒ ▓▒
 ▓██ ░▄█ ▒▒██  ▀█▄  ▓██  ▀█ ██▒▒ ▓██░ ▒░
 ▒██▀▀█▄  ░██▄▄▄▄██ ▓██▒  ▐▌██▒░ ▓██▓ ░
 ░██▓ ▒██▒ ▓█   ▓██▒▒██░   ▓██░  ▒██▒ ░
 ░ ▒▓ ░▒▓░ ▒▒   ▓▒█░░ ▒░   ▒ ▒   ▒ ░░
   ░▒ ░ ▒░  ▒   ▒▒ ░░ ░░   ░ ▒░    ░
   ░░   ░   ░   ▒      ░   ░ ░   ░
    ░           ░  ░         ░
`

// LINE is a separator line used for visual formatting.
var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) < 2 {
		repler := NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
		repler.Start(os.Stdin, os.Stdout)
		return
	}

	switch os.Args[1] {
	case "--help", "-h", "help":
		showHelp()
	case "--version", "-v":
		showVersion()
	case "repl":
		repler := NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENCE, PROMPT)
		repler.Start(os.Stdin, os.Stdout)
	case "run":
		runCommand(os.Args[2:])
	default:
		// Bare "rant <file>" is shorthand for "rant run <file>".
		runCommand(os.Args[1:])
	}
}

func showHelp() {
	cyanColor.Println("Rant - a procedural text-generation language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  rant                           Start interactive REPL mode")
	yellowColor.Println("  rant run <file> [options]      Compile and run a .rant pattern file")
	yellowColor.Println("  rant repl                      Start interactive REPL mode")
	yellowColor.Println("  rant --help                    Display this help message")
	yellowColor.Println("  rant --version                 Display version information")
	cyanColor.Println("")
	cyanColor.Println("RUN OPTIONS:")
	yellowColor.Println("  --seed N                       PRNG seed (default: 1)")
	yellowColor.Println("  --arg name=value                Bind a pattern field (repeatable)")
	yellowColor.Println("  --dict file.yaml                Load a YAML dictionary for query resolution")
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  .exit                          Exit the REPL")
}

func showVersion() {
	cyanColor.Println("Rant - a procedural text-generation language")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENCE)
}

// runCommand parses "rant run <file> [--seed N] [--arg k=v]... [--dict f]"
// and executes the named pattern file to completion.
func runCommand(argv []string) {
	if len(argv) == 0 {
		redColor.Fprintf(os.Stderr, "[USAGE ERROR] missing pattern file. Usage: rant run <file> [options]\n")
		os.Exit(1)
	}

	fileName := argv[0]
	var seed int64 = 1
	args := program.NewProgramArgs()
	var dictPath string

	for i := 1; i < len(argv); i++ {
		switch argv[i] {
		case "--seed":
			i++
			if i >= len(argv) {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] --seed requires a value\n")
				os.Exit(1)
			}
			n, err := strconv.ParseInt(argv[i], 10, 64)
			if err != nil {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] --seed must be an integer: %v\n", err)
				os.Exit(1)
			}
			seed = n
		case "--arg":
			i++
			if i >= len(argv) {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] --arg requires a name=value pair\n")
				os.Exit(1)
			}
			name, value, ok := strings.Cut(argv[i], "=")
			if !ok {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] --arg %q is not name=value\n", argv[i])
				os.Exit(1)
			}
			args = args.With(name, value)
		case "--dict":
			i++
			if i >= len(argv) {
				redColor.Fprintf(os.Stderr, "[USAGE ERROR] --dict requires a file path\n")
				os.Exit(1)
			}
			dictPath = argv[i]
		default:
			redColor.Fprintf(os.Stderr, "[USAGE ERROR] unrecognized option %q\n", argv[i])
			os.Exit(1)
		}
	}

	executeFileWithRecovery(fileName, seed, args, dictPath)
}

// executeFileWithRecovery handles compile-and-run with panic recovery, in
// the teacher's style: a single defer/recover wraps the full pipeline so a
// VM panic is reported like any other runtime error instead of crashing
// the process.
func executeFileWithRecovery(fileName string, seed int64, args program.ProgramArgs, dictPath string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", recovered)
			os.Exit(1)
		}
	}()

	source, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[FILE ERROR] could not read file %q: %v\n", fileName, err)
		os.Exit(1)
	}

	dict, err := loadDict(dictPath)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[DICT ERROR] %v\n", err)
		os.Exit(1)
	}

	p, diags, err := program.Compile(string(source), fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[COMPILE ERROR] %v\n", err)
		os.Exit(1)
	}
	for _, d := range diags {
		redColor.Fprintf(os.Stderr, "[PARSE ERROR] %s\n", d.Error())
	}

	result, err := p.Run(args, seed, dict)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", err)
		os.Exit(1)
	}

	yellowColor.Fprintf(os.Stdout, "%s\n", result.Main)
	for name, text := range result.Channels {
		cyanColor.Fprintf(os.Stdout, "[%s] %s\n", name, text)
	}
}

// loadDict returns a nil dictionary.Dictionary (not a typed-nil pointer
// wrapped in the interface) when no --dict path was given, so the engine's
// own "dict != nil" check behaves correctly.
func loadDict(path string) (dictionary.Dictionary, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open dictionary %q: %w", path, err)
	}
	defer f.Close()
	return yamldict.Load(f)
}
