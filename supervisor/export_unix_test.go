//go:build unix

package supervisor

import (
	"time"

	"golang.org/x/sys/unix"
)

var ForwardPending = forwardPending

func SetPendingSignal(sig unix.Signal) {
	pendingSignal.Store(int32(sig))
}

func MockUnixKill(m func(pid int, sig unix.Signal) error) (restore func()) {
	old := unixKill
	unixKill = m
	return func() {
		unixKill = old
	}
}

func MockWaitPollInterval(d time.Duration) (restore func()) {
	old := waitPollInterval
	waitPollInterval = d
	return func() {
		waitPollInterval = old
	}
}
