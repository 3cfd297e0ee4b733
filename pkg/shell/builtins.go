package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Builtin is the function signature for a shell builtin. args excludes the
// command name itself. Returning ErrExit signals the REPL driver to
// terminate; any other non-nil error is printed to sh.Err and the shell
// continues.
type Builtin func(args []string, sh *Shell) error

func (sh *Shell) registerBuiltins() {
	sh.builtins = map[string]Builtin{
		"echo":    builtinEcho,
		"exit":    builtinExit,
		"type":    builtinType,
		"pwd":     builtinPwd,
		"cd":      builtinCd,
		"history": builtinHistory,
	}
}

func builtinEcho(args []string, sh *Shell) error {
	fmt.Fprintln(sh.Out, strings.Join(args, " "))
	return nil
}

// builtinExit records the requested exit code (0 if absent or unparsable)
// and signals termination via ErrExit. Inside a pipeline, this builtin runs
// in a re-exec'd child process (see internal/childrun), so it only
// terminates that child, never the parent shell.
func builtinExit(args []string, sh *Shell) error {
	code := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			code = n
		}
	}
	sh.exitCode = code
	return ErrExit
}

func builtinType(args []string, sh *Shell) error {
	if len(args) == 0 {
		fmt.Fprintln(sh.Out, "type: usage: type NAME")
		return nil
	}

	name := args[0]
	if _, ok := sh.builtins[name]; ok {
		fmt.Fprintln(sh.Out, name, "is a shell builtin")
		return nil
	}
	if path, ok := sh.Lookup(name); ok {
		fmt.Fprintln(sh.Out, name, "is", path)
		return nil
	}
	fmt.Fprintln(sh.Out, name+": not found")
	return nil
}

func builtinPwd(args []string, sh *Shell) error {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(sh.Err, "pwd: error finding directory:", err)
		return nil
	}
	fmt.Fprintln(sh.Out, dir)
	return nil
}

func builtinCd(args []string, sh *Shell) error {
	var target string

	if len(args) == 0 {
		target = os.Getenv("HOME")
		if target == "" {
			return nil
		}
	} else {
		target = args[0]
	}

	if strings.HasPrefix(target, "~") {
		home := os.Getenv("HOME")
		if home == "" {
			fmt.Fprintln(sh.Err, "cd: HOME not set")
			return nil
		}
		if target == "~" {
			target = home
		} else if strings.HasPrefix(target, "~/") {
			target = filepath.Join(home, target[2:])
		} else {
			fmt.Fprintf(sh.Err, "cd: unsupported user expansion: %s\n", target)
			return nil
		}
	}

	if err := os.Chdir(target); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(sh.Err, "cd: %s: No such file or directory\n", target)
		} else if os.IsPermission(err) {
			fmt.Fprintf(sh.Err, "cd: %s: Permission denied\n", target)
		} else {
			fmt.Fprintf(sh.Err, "cd: %s: %v\n", target, err)
		}
	}

	return nil
}

// builtinHistory implements the history command: with no arguments it
// prints the whole buffer; with a numeric argument N it prints only the
// last N entries; -c clears the in-memory buffer and truncates the history
// file; -r/-w reload/save the buffer against the configured history file,
// or an explicit path given as a second argument.
func builtinHistory(args []string, sh *Shell) error {
	if sh.history == nil {
		return nil
	}

	if len(args) == 0 {
		sh.history.print(sh.Out, 0)
		return nil
	}

	switch args[0] {
	case "-c":
		sh.history.Clear()
		if sh.history.path != "" {
			_ = os.Truncate(sh.history.path, 0)
		}
		return nil
	case "-r":
		path := ""
		if len(args) > 1 {
			path = args[1]
		}
		_ = sh.history.Load(path)
		return nil
	case "-w":
		path := ""
		if len(args) > 1 {
			path = args[1]
		}
		_ = sh.history.Save(path)
		return nil
	default:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(sh.Err, "history: %s: numeric argument required\n", args[0])
			return nil
		}
		sh.history.print(sh.Out, n)
		return nil
	}
}
