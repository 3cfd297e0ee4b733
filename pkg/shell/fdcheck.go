package shell

import (
	"fmt"
	"os"
	"time"
)

// startFDCheck launches the descriptor self-check described in the
// concurrency model's descriptor-discipline rules: on an interval, compare
// the process's current open-descriptor count against the baseline taken at
// startup and report drift to stderr. It is an operational diagnostic, not
// a correctness mechanism, so any failure to count descriptors (platforms
// without /proc, sandboxed environments) just disables the check rather
// than surfacing an error to the caller.
func (sh *Shell) startFDCheck(interval time.Duration) {
	if interval <= 0 {
		return
	}
	baseline, err := countOpenFDs()
	if err != nil {
		return
	}

	sh.fdCheckDone = make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-sh.fdCheckDone:
				return
			case <-ticker.C:
				sh.reportFDDrift(baseline)
			}
		}
	}()
}

func (sh *Shell) reportFDDrift(baseline int) {
	current, err := countOpenFDs()
	if err != nil {
		return
	}
	if current != baseline {
		fmt.Fprintf(sh.Err, "goshell: open file descriptor count drifted from %d to %d\n", baseline, current)
	}
}

func (sh *Shell) stopFDCheck() {
	if sh.fdCheckDone != nil {
		sh.stopFDCheckOnce.Do(func() { close(sh.fdCheckDone) })
	}
}

// countOpenFDs counts the process's open file descriptors by reading
// /proc/self/fd, which exists on Linux. On platforms where it doesn't, the
// self-check is simply never started.
func countOpenFDs() (int, error) {
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
