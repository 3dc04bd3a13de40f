package cmd

// Version is the opdef CLI version string, printed by --version and the
// REPL banner (mirroring go-mix's main/main.go showVersion).
const Version = "0.1.0"
