// Package childrun detects and handles the hidden re-exec mode a pipeline
// uses to run a builtin command as its own OS process: when a builtin is
// any stage of a multi-stage pipeline, the shell can't fork (Go has no
// fork), so it re-execs its own binary with shell.ChildRunFlag and the
// builtin's name/args, and this package is what the re-exec'd process runs
// instead of an interactive REPL.
package childrun

import (
	"os"

	"github.com/jrho/goshell/pkg/shell"
)

// Detect reports whether args (normally os.Args[1:]) requests child-run
// mode, and if so, the builtin name and its arguments.
func Detect(args []string) (name string, builtinArgs []string, ok bool) {
	if len(args) < 2 || args[0] != shell.ChildRunFlag {
		return "", nil, false
	}
	return args[1], args[2:], true
}

// Run executes the requested builtin standalone and returns the process
// exit code main should use.
func Run(name string, args []string) int {
	return shell.RunBuiltinStandalone(name, args)
}

// Main is a convenience wrapper for cmd/goshell: if os.Args requests
// child-run mode it runs the builtin and exits the process directly,
// otherwise it returns false so the caller proceeds with a normal
// interactive session.
func Main() (ran bool) {
	name, args, ok := Detect(os.Args[1:])
	if !ok {
		return false
	}
	os.Exit(Run(name, args))
	return true
}
