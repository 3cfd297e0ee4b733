package shell

import "io"

// Stage is one command within a pipeline: its argv and whatever explicit
// redirections the planner opened for it. A redirection field is nil when
// that stream is not explicitly redirected and should fall back to the
// pipeline's own wiring (a neighboring stage's pipe, or the shell's own
// stdio for the first/last stage).
type Stage struct {
	Args   []string
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
	Stderr io.WriteCloser
}

func (s *Stage) closeRedirections() {
	if s.Stdin != nil {
		s.Stdin.Close()
	}
	if s.Stdout != nil {
		s.Stdout.Close()
	}
	if s.Stderr != nil {
		s.Stderr.Close()
	}
}

// Pipeline is one or more stages connected stdout-to-stdin in sequence.
type Pipeline struct {
	Stages []*Stage
}

func (p *Pipeline) closeRedirections() {
	for _, s := range p.Stages {
		s.closeRedirections()
	}
}

// CommandList is the result of planning one input line: the pipelines
// separated by ';' or '&', run left to right.
type CommandList struct {
	Pipelines []*Pipeline
}

func (cl *CommandList) closeRedirections() {
	for _, p := range cl.Pipelines {
		p.closeRedirections()
	}
}
