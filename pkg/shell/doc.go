// Package shell implements an interactive command-line shell: a lexer,
// a variable expander, a pipeline planner, an executor that wires builtins
// and external processes together through pipes and redirections, a set of
// builtin commands, a completion engine, and a history manager.
//
// # Core pipeline
//
// Lex tokenizes a raw input line. Expand substitutes $NAME/${NAME} words
// against the environment. Plan groups the resulting tokens into a
// CommandList of Pipelines of Stages and opens any redirection targets.
// Shell.Run then executes the CommandList pipeline by pipeline: builtins run
// in-process when they are the sole stage of their pipeline, and in a
// re-exec'd child process
// (see internal/childrun) when part of a multi-stage pipeline, so that a
// builtin's stdio redirection can never corrupt the interactive shell's own
// streams.
//
// # I/O Redirection
//
//   - <        : redirect stdin
//   - >, 1>    : redirect stdout (truncate)
//   - >>, 1>>  : redirect stdout (append)
//   - 2>       : redirect stderr (truncate)
//   - 2>>      : redirect stderr (append)
//
// # Basic usage
//
//	sh := shell.New(os.Stdin, os.Stdout, os.Stderr, shell.Options{})
//	if err := sh.Run(); err != nil {
//	    log.Fatal(err)
//	}
//	os.Exit(sh.ExitCode())
//
// # Testing with custom streams
//
//	input := strings.NewReader("echo hello\nexit\n")
//	var stdout, stderr bytes.Buffer
//	sh := shell.New(input, &stdout, &stderr, shell.Options{})
//	sh.Run()
//
// # Thread safety
//
// Shell instances are not safe for concurrent use; each instance is driven
// by a single REPL goroutine, though it does track concurrently running
// child processes internally for signal forwarding.
package shell
