//go:build unix

package supervisor

import (
	"os"
	"os/exec"
	"os/signal"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

// pendingSignal holds the most recent SIGTERM or SIGINT received by the
// parent. A single slot, so when both arrive within one poll interval only
// the later one reaches the child.
var pendingSignal atomic.Int32

var (
	unixKill         = unix.Kill
	waitPollInterval = 50 * time.Millisecond
)

// InstallSignalBridge starts capturing SIGTERM and SIGINT so that the wait
// loop can forward them to the child. Call it first thing in main; a signal
// received while the child is still being set up is forwarded once the wait
// loop runs. The parent never terminates on these signals itself, it waits
// for the child to exit and reports as usual.
func InstallSignalBridge() {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, unix.SIGTERM, unix.SIGINT)
	go func() {
		for sig := range ch {
			if s, ok := sig.(unix.Signal); ok {
				pendingSignal.Store(int32(s))
			}
		}
	}()
}

// forwardPending delivers the captured signal, if any, to pid.
func forwardPending(pid int) {
	if sig := pendingSignal.Swap(0); sig != 0 {
		unixKill(pid, unix.Signal(sig))
	}
}

// waitChild waits for the started child, forwarding captured signals to it
// every poll interval.
var waitChild = func(cmd *exec.Cmd) error {
	pid := cmd.Process.Pid
	// a signal may have arrived while the child was being spawned
	forwardPending(pid)

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	tick := time.NewTicker(waitPollInterval)
	defer tick.Stop()
	for {
		select {
		case err := <-done:
			return err
		case <-tick.C:
			forwardPending(pid)
		}
	}
}
