/*
File   : opdef/repl/repl.go
Package repl implements the interactive shell for opdef, adapted from the
teacher's repl/repl.go. Because the source language has no expression
syntax outside of operator definitions, one declaration (include,
category, or operator definition) is accepted per line; after each
successful definition the REPL re-evaluates and echoes the most recently
completed nullary operator, generalizing the teacher's "echo the result
of the last statement" contract.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/opdeflang/opdef/declparser"
	"github.com/opdeflang/opdef/driver"
	"github.com/opdeflang/opdef/eval"
	"github.com/opdeflang/opdef/lexer"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a Read-Eval-Print Loop instance for opdef.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
	BaseDir string // directory include statements resolve against
}

// New builds a Repl instance.
func New(banner, version, author, line, license, prompt, baseDir string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt, BaseDir: baseDir}
}

// PrintBannerInfo prints the startup banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to opdef!")
	cyanColor.Fprintf(writer, "%s\n", "Enter one declaration per line: include IDENT, category IDENT, or an operator definition.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop against reader/writer (reader is unused
// directly since readline owns stdin, exactly as in the teacher).
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	session := driver.NewSession(r.BaseDir)

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)

		r.executeWithRecovery(writer, line, session)
	}
}

// executeWithRecovery parses one declaration, registers it, and echoes
// the current value of the last declared nullary operator. Panics
// (invariant violations deep in resolution or evaluation) are caught and
// reported rather than crashing the session, matching the teacher's
// executeWithRecovery.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, session *driver.Session) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	ts := lexer.NewTokenStream(lexer.New(line))
	p := declparser.New(ts)
	if !p.HasNext() {
		return
	}

	stmt, parseErr := p.Next()
	if parseErr != nil {
		redColor.Fprintf(writer, "%s\n", parseErr.Error())
		return
	}

	if errs := session.ProcessStatement(stmt); len(errs) > 0 {
		for _, e := range errs {
			redColor.Fprintf(writer, "%s\n", e.Error())
		}
		return
	}

	h, ok := session.Table.LastRegisteredNullary()
	if !ok {
		cyanColor.Fprintf(writer, "declaration registered\n")
		return
	}
	result, evalErr := eval.Invoke(h, nil, session.Table)
	if evalErr != nil {
		redColor.Fprintf(writer, "%s\n", evalErr.Error())
		return
	}
	yellowColor.Fprintf(writer, "%s\n", result.String())
}
