package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/jrho/goshell/internal/envprobe"
)

// Options configures a Shell at construction time. Every field has a usable
// zero value so a caller can pass Options{} for a minimal, non-interactive
// instance (as the tests in this package do).
type Options struct {
	HistoryFile     string        // path persisted/loaded by the history builtin and startup/shutdown
	HistorySize     int           // 0 means unlimited
	Color           bool          // colorize the prompt when the output stream is a terminal
	FDCheckInterval time.Duration // 0 disables the descriptor self-check
}

// Shell is a command-line shell instance: I/O streams, the builtin
// registry, PATH-derived executable lookup, the history manager, and
// (when stdin is a terminal) a line editor with tab completion.
type Shell struct {
	in  *bufio.Reader // fallback line source when readline isn't engaged
	Out io.Writer
	Err io.Writer

	pathDirs  []string
	pathCache *envprobe.Cache
	builtins  map[string]Builtin

	fileOpener FileOpener
	history    *History
	opts       Options

	rl *readline.Instance

	mu      sync.Mutex
	running []*exec.Cmd

	sigCh    chan os.Signal
	stopOnce sync.Once

	fdCheckDone     chan struct{}
	stopFDCheckOnce sync.Once

	exitCode int
}

// New creates a Shell reading from reader and writing to out/errw. When
// reader is os.Stdin and it is attached to a terminal, the shell engages a
// readline-based line editor with history and tab completion; otherwise it
// falls back to a plain buffered-line reader, which is also what every
// non-interactive test in this package exercises.
func New(reader io.Reader, out, errw io.Writer, opts Options) *Shell {
	sh := &Shell{
		in:         bufio.NewReader(reader),
		Out:        out,
		Err:        errw,
		pathDirs:   pathDirsFromEnv(),
		pathCache:  envprobe.FromPathEnv(),
		fileOpener: DefaultFileOpener{},
		opts:       opts,
		history:    NewHistory(opts.HistoryFile, opts.HistorySize),
		sigCh:      make(chan os.Signal, 1),
	}
	sh.registerBuiltins()

	if opts.HistoryFile != "" {
		_ = sh.history.Load("")
	}

	if f, ok := reader.(*os.File); ok && f == os.Stdin && isatty.IsTerminal(f.Fd()) {
		sh.setupReadline()
	}

	signal.Notify(sh.sigCh, os.Interrupt)
	go sh.forwardInterrupts()

	sh.startFDCheck(opts.FDCheckInterval)

	return sh
}

func (sh *Shell) setupReadline() {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.prompt(),
		HistoryFile:     "", // History is the sole source of truth; see history.go
		AutoComplete:    &autoCompleter{sh: sh},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(sh.Err, "shell: line editor unavailable, falling back to plain input:", err)
		return
	}
	sh.rl = rl
	for _, line := range sh.history.All() {
		sh.rl.SaveHistory(line)
	}
}

func (sh *Shell) prompt() string {
	if sh.opts.Color && isatty.IsTerminal(os.Stdout.Fd()) {
		return color.New(color.FgGreen, color.Bold).Sprint("$ ")
	}
	return "$ "
}

// ExitCode reports the code requested by the most recent exit builtin call
// that ran in-process (a sole builtin stage), or 0 if none ran.
func (sh *Shell) ExitCode() int {
	return sh.exitCode
}

// Run drives the read-eval-print loop until EOF, an exit builtin, or a
// fatal I/O error.
func (sh *Shell) Run() error {
	defer sh.shutdown()

	for {
		line, err := sh.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(sh.Out)
				return nil
			}
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sh.history.Add(trimmed)
		if sh.rl != nil {
			sh.rl.SaveHistory(trimmed)
		}

		tokens, err := Lex(trimmed)
		if err != nil {
			fmt.Fprintf(sh.Err, "Error parsing input: %s\n", err)
			continue
		}
		tokens = ExpandTokens(tokens, os.LookupEnv)

		cl, err := Plan(tokens, sh.fileOpener)
		if err != nil {
			fmt.Fprintln(sh.Err, err)
			continue
		}

		if err := sh.execute(context.Background(), cl); err != nil {
			if errors.Is(err, ErrExit) {
				return nil
			}
		}
	}
}

func (sh *Shell) readLine() (string, error) {
	if sh.rl != nil {
		sh.rl.SetPrompt(sh.prompt())
		return sh.rl.Readline()
	}
	fmt.Fprint(sh.Out, "$ ")
	line, err := sh.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

func (sh *Shell) execute(ctx context.Context, cl *CommandList) error {
	baseIO := BaseIO{Stdin: os.Stdin, Stdout: sh.Out, Stderr: sh.Err}
	for _, p := range cl.Pipelines {
		_, err := sh.runPipeline(ctx, p, baseIO)
		if errors.Is(err, ErrExit) {
			cl.closeRedirections()
			return ErrExit
		}
		if err != nil {
			fmt.Fprintln(sh.Err, err)
		}
	}
	cl.closeRedirections()
	return nil
}

func (sh *Shell) shutdown() {
	signal.Stop(sh.sigCh)
	sh.stopOnce.Do(func() { close(sh.sigCh) })
	sh.stopFDCheck()
	if sh.opts.HistoryFile != "" {
		_ = sh.history.Save("")
	}
	if sh.rl != nil {
		sh.rl.Close()
	}
}

func (sh *Shell) forwardInterrupts() {
	for range sh.sigCh {
		sh.mu.Lock()
		for _, cmd := range sh.running {
			if cmd.Process != nil {
				_ = cmd.Process.Signal(os.Interrupt)
			}
		}
		sh.mu.Unlock()
	}
}

func (sh *Shell) trackRunning(cmd *exec.Cmd) {
	sh.mu.Lock()
	sh.running = append(sh.running, cmd)
	sh.mu.Unlock()
}

func (sh *Shell) untrackRunning(cmd *exec.Cmd) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	for i, c := range sh.running {
		if c == cmd {
			sh.running = append(sh.running[:i], sh.running[i+1:]...)
			return
		}
	}
}

// Lookup searches the shell's captured PATH directories, in order, for an
// executable regular file named name. It always re-checks the filesystem
// live (no caching), so newly installed commands are found mid-session;
// the startup-time path cache (internal/envprobe) exists only to make tab
// completion fast and may lag behind this method.
func (sh *Shell) Lookup(name string) (string, bool) {
	for _, dir := range sh.pathDirs {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil {
			if info.Mode().IsRegular() && info.Mode()&0111 != 0 {
				return candidate, true
			}
		}
	}
	return "", false
}
