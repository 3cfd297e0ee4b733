package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// BaseIO are the shell's own default streams, used as a pipeline's stdin
// (the terminal) and as the first/last stage's unredirected stdout/stderr.
type BaseIO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// runPipeline executes one pipeline (one or more stages joined by '|').
// A single-stage pipeline runs its builtin in-process when the stage is a
// builtin; a multi-stage pipeline always spawns every stage as a separate
// OS process, wiring N-1 os.Pipe()s between them, so that a builtin in the
// middle of a pipeline can never corrupt the shell's own stdio.
func (sh *Shell) runPipeline(ctx context.Context, p *Pipeline, base BaseIO) (int, error) {
	if len(p.Stages) == 1 {
		return sh.runSingleStage(ctx, p.Stages[0], base)
	}
	return sh.runMultiStage(ctx, p.Stages, base)
}

func (sh *Shell) runSingleStage(ctx context.Context, stage *Stage, base BaseIO) (int, error) {
	stdin, stdout, stderr := resolveStageIO(stage, base)

	name := stage.Args[0]
	args := stage.Args[1:]

	if fn, ok := sh.builtins[name]; ok {
		prevOut, prevErr := sh.Out, sh.Err
		sh.Out, sh.Err = stdout, stderr
		err := fn(args, sh)
		sh.Out, sh.Err = prevOut, prevErr

		if errors.Is(err, ErrExit) {
			return 0, err
		}
		if err != nil {
			return 1, err
		}
		return 0, nil
	}

	executor := &DefaultExecutor{LookupFunc: sh.Lookup}
	code, err := executor.Execute(ctx, name, args, IOBindings{Stdin: stdin, Stdout: stdout, Stderr: stderr})
	if err != nil {
		return code, err
	}
	return code, nil
}

// runMultiStage spawns every stage of a pipeline before waiting on any of
// them, so all stages genuinely run concurrently rather than one at a time.
func (sh *Shell) runMultiStage(ctx context.Context, stages []*Stage, base BaseIO) (int, error) {
	n := len(stages)
	pipes := make([]*os.File, 2*(n-1)) // [r0, w0, r1, w1, ...]
	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			closeAllPipes(pipes)
			return 1, newShellError(ErrSpawn, "pipeline: %s", err)
		}
		pipes[2*i] = r
		pipes[2*i+1] = w
	}

	var cmds []*exec.Cmd
	var spawnErr error

	for i, stage := range stages {
		var stdin io.Reader = base.Stdin
		var stdout io.Writer = base.Stdout
		var stderr io.Writer = base.Stderr

		if stage.Stdin != nil {
			stdin = stage.Stdin
		} else if i > 0 {
			stdin = pipes[2*(i-1)]
		}
		if stage.Stdout != nil {
			stdout = stage.Stdout
		} else if i < n-1 {
			stdout = pipes[2*i+1]
		}
		if stage.Stderr != nil {
			stderr = stage.Stderr
		}

		cmd, err := sh.spawnStage(ctx, stage, stdin, stdout, stderr)

		if i > 0 {
			pipes[2*(i-1)].Close()
		}
		if i < n-1 {
			pipes[2*i+1].Close()
		}

		if err != nil {
			spawnErr = err
			break
		}
		sh.trackRunning(cmd)
		cmds = append(cmds, cmd)
	}

	if spawnErr != nil {
		for _, cmd := range cmds {
			if cmd.Process != nil {
				_ = cmd.Process.Kill()
			}
		}
		for _, cmd := range cmds {
			_ = cmd.Wait()
			sh.untrackRunning(cmd)
		}
		// Pipe ends already handed off to a stage (success or failed
		// attempt) were closed inline above; this catches every remaining
		// fd belonging to stages the loop never reached. Closing an
		// already-closed *os.File here is harmless (the error is ignored).
		closeAllPipes(pipes)
		return 1, spawnErr
	}

	var lastExit int
	for _, cmd := range cmds {
		err := cmd.Wait()
		sh.untrackRunning(cmd)
		lastExit = exitCodeOf(err)
	}

	return lastExit, nil
}

func (sh *Shell) spawnStage(ctx context.Context, stage *Stage, stdin io.Reader, stdout, stderr io.Writer) (*exec.Cmd, error) {
	name := stage.Args[0]
	args := stage.Args[1:]

	if _, ok := sh.builtins[name]; ok {
		self, err := os.Executable()
		if err != nil {
			return nil, newShellError(ErrSpawn, "%s: cannot locate shell executable for pipeline builtin: %s", name, err)
		}
		childArgs := append([]string{ChildRunFlag, name}, args...)
		cmd := exec.CommandContext(ctx, self, childArgs...)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr
		if err := cmd.Start(); err != nil {
			return nil, newShellError(ErrSpawn, "%s: %s", name, err)
		}
		return cmd, nil
	}

	path, err := resolveCommandPath(name, sh.Lookup)
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Args = append([]string{name}, args...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr
	if err := cmd.Start(); err != nil {
		return nil, newShellError(ErrSpawn, "%s: %s", name, err)
	}
	return cmd, nil
}

func resolveStageIO(stage *Stage, base BaseIO) (io.Reader, io.Writer, io.Writer) {
	stdin := io.Reader(base.Stdin)
	stdout := io.Writer(base.Stdout)
	stderr := io.Writer(base.Stderr)
	if stage.Stdin != nil {
		stdin = stage.Stdin
	}
	if stage.Stdout != nil {
		stdout = stage.Stdout
	}
	if stage.Stderr != nil {
		stderr = stage.Stderr
	}
	return stdin, stdout, stderr
}

func closeAllPipes(pipes []*os.File) {
	for _, f := range pipes {
		if f != nil {
			f.Close()
		}
	}
}

func exitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
