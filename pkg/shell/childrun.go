package shell

import (
	"errors"
	"os"
	"strings"
)

func pathDirsFromEnv() []string {
	path := os.Getenv("PATH")
	if path == "" {
		return nil
	}
	return strings.Split(path, string(os.PathListSeparator))
}

// ChildRunFlag is the hidden first argument cmd/goshell's main uses to
// recognize a re-exec'd child process spawned to run a single builtin
// inside a pipeline (see internal/childrun and pipeline.go's spawnStage).
// It is exported so main.go and internal/childrun can recognize it without
// pkg/shell importing internal/childrun (which would create an import
// cycle, since internal/childrun imports pkg/shell to call
// RunBuiltinStandalone).
const ChildRunFlag = "--goshell-internal-child-run"

// RunBuiltinStandalone runs a single builtin by name against the real
// process environment (os.Stdin/Stdout/Stderr, already bound by the parent
// shell's exec.Cmd to the correct pipe or redirection target) and reports
// the process exit code to use. It is the hidden re-exec target for a
// builtin that is one stage of a multi-stage pipeline. The child inherits
// the parent's environment and working directory, but its history buffer
// starts empty: the parent's in-memory history is not passed to it.
func RunBuiltinStandalone(name string, args []string) int {
	sh := &Shell{
		Out:      os.Stdout,
		Err:      os.Stderr,
		pathDirs: pathDirsFromEnv(),
		history:  NewHistory("", 0),
	}
	sh.registerBuiltins()

	fn, ok := sh.builtins[name]
	if !ok {
		return 127
	}

	err := fn(args, sh)
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrExit) {
		return sh.exitCode
	}
	return 1
}
