package supervisor

import (
	"io"
	"os/exec"
)

var (
	ComposeReport = composeReport
	ChildEnv      = childEnv
	Finish        = finish
)

func MockStderr(w io.Writer) (restore func()) {
	old := stderr
	stderr = w
	return func() {
		stderr = old
	}
}

func MockTeeStreams(out, err io.Writer) (restore func()) {
	oldOut, oldErr := teeOut, teeErr
	teeOut, teeErr = out, err
	return func() {
		teeOut, teeErr = oldOut, oldErr
	}
}

func MockEnviron(m func() []string) (restore func()) {
	old := environ
	environ = m
	return func() {
		environ = old
	}
}

func MockCmdStart(m func(cmd *exec.Cmd) error) (restore func()) {
	old := cmdStart
	cmdStart = m
	return func() {
		cmdStart = old
	}
}

func MockWaitChild(m func(cmd *exec.Cmd) error) (restore func()) {
	old := waitChild
	waitChild = m
	return func() {
		waitChild = old
	}
}
