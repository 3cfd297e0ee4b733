// Command goshell is an interactive POSIX-like command-line shell.
//
// It provides a REPL for executing built-in and external commands, with
// pipelines, I/O redirection, environment variable expansion, persistent
// history, and tab completion.
//
// # Built-in commands
//
//   - echo:    print arguments to stdout
//   - exit:    terminate the shell
//   - type:    report whether a name is a builtin or an external command
//   - pwd:     print the working directory
//   - cd:      change directory, with tilde expansion
//   - history: show, clear, load, or save command history
//
// # Configuration
//
// goshell reads ~/.goshellrc.yaml if present, then applies GOSHELL_*
// environment variable overrides (GOSHELL_HISTORY_FILE, GOSHELL_HISTORY_SIZE,
// GOSHELL_COLOR, GOSHELL_FD_CHECK_INTERVAL_MS).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jrho/goshell/internal/childrun"
	"github.com/jrho/goshell/internal/config"
	"github.com/jrho/goshell/pkg/shell"
)

func main() {
	if childrun.Main() {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "goshell: loading config:", err)
		cfg = config.Default()
	}

	opts := shell.Options{
		HistoryFile:     cfg.HistoryFile,
		HistorySize:     cfg.HistorySize,
		Color:           cfg.Color,
		FDCheckInterval: time.Duration(cfg.FDCheckInterval) * time.Millisecond,
	}

	sh := shell.New(os.Stdin, os.Stdout, os.Stderr, opts)
	if err := sh.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "goshell:", err)
		os.Exit(1)
	}
	os.Exit(sh.ExitCode())
}
