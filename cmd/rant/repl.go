/*
File    : rant/cmd/rant/repl.go
Package : main

Package main's REPL mode: an interactive read-eval-print loop over the
compile/run pipeline. Grounded on the teacher's repl/repl.go (readline
history, colored banner and results, panic recovery per line); each line
compiles and runs as its own standalone pattern with empty
program.ProgramArgs, so variables set on one line are not visible on the
next.
*/
package main

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/mouzizhang/rant/program"
)

var (
	blueColor    = color.New(color.FgBlue)
	yellowColorR = color.New(color.FgYellow)
	redColorR    = color.New(color.FgRed)
	greenColor   = color.New(color.FgGreen)
	cyanColorR   = color.New(color.FgCyan)
)

// Repl is an interactive Rant session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// NewRepl constructs a Repl ready to Start.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColorR.Fprintln(writer, "Version: "+r.Version+" | "+r.License+" License")
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColorR.Fprintf(writer, "%s\n", "Welcome to Rant!")
	cyanColorR.Fprintf(writer, "%s\n", "Type a pattern and press enter")
	cyanColorR.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop until the user exits or input ends.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	var seed int64 = 1

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		r.executeWithRecovery(writer, line, seed)
		seed++
	}
}

// executeWithRecovery compiles and runs one line, recovering from any panic
// so a single bad pattern doesn't end the session.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, seed int64) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColorR.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	p, diags, err := program.Compile(line, "repl")
	if err != nil {
		redColorR.Fprintf(writer, "[COMPILE ERROR] %v\n", err)
		return
	}
	for _, d := range diags {
		redColorR.Fprintf(writer, "[PARSE ERROR] %s\n", d.Error())
	}

	result, err := p.Run(program.NewProgramArgs(), seed, nil)
	if err != nil {
		redColorR.Fprintf(writer, "[RUNTIME ERROR] %v\n", err)
		return
	}
	yellowColorR.Fprintf(writer, "%s\n", result.Main)
}
