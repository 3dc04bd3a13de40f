/*
File   : opdef/main/main.go
Package main is the opdef interpreter's entry point, adapted from
go-mix's main/main.go. It provides three modes of operation:

 1. REPL mode (default, no arguments): interactive declaration-by-
    declaration session.
 2. Server mode (`opdef server <port>`): one REPL session per TCP
    connection, unchanged from go-mix's net.Listen/Accept loop.
 3. File mode (any other arguments): delegated to the Cobra command tree
    in package cmd, which implements run/lex/parse/semantic and the
    -l/-p/-s/-r/-h compatibility flags.
*/
package main

import (
	"net"
	"os"

	"github.com/fatih/color"

	"github.com/opdeflang/opdef/cmd"
	"github.com/opdeflang/opdef/repl"
)

var (
	version = cmd.Version
	author  = "opdeflang contributors"
	license = "MIT"
	prompt  = "opdef >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
   ___            _       __
  / _ \ _ __   __| | ___ / _|
 | | | | '_ \ / _ |/ _ \ |_
 | |_| | |_) | (_| |  __/  _|
  \___/| .__/ \__,_|\___|_|
       |_|
`
)

var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) == 1 {
		repler := repl.New(banner, version, author, line, license, prompt, ".")
		repler.Start(os.Stdin, os.Stdout)
		return
	}

	if os.Args[1] == "server" {
		if len(os.Args) < 3 {
			redColor.Fprintf(os.Stderr, "[USAGE ERROR] Missing port for server mode. Usage: opdef server <port>\n")
			os.Exit(1)
		}
		startServer(os.Args[2])
		return
	}

	cmd.Execute()
}

// startServer listens on port and serves one REPL session per TCP
// connection, unchanged in structure from go-mix's main/main.go.
func startServer(port string) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[SERVER ERROR] Failed to start server on port %s: %v\n", port, err)
		os.Exit(1)
	}
	cyanColor.Printf("opdef REPL server listening on :%s\n", port)
	defer listener.Close()

	for {
		conn, err := listener.Accept()
		if err != nil {
			redColor.Fprintf(os.Stderr, "[SERVER ERROR] Failed to accept connection: %v\n", err)
			continue
		}
		go handleClient(conn)
	}
}

func handleClient(conn net.Conn) {
	defer conn.Close()
	cyanColor.Printf("New client connected from %s\n", conn.RemoteAddr())
	repler := repl.New(banner, version, author, line, license, prompt, ".")
	repler.Start(conn, conn)
	cyanColor.Printf("Client disconnected from %s\n", conn.RemoteAddr())
}
