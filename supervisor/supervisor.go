package supervisor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/drewkett/hcp/tee"
)

// Process exit codes of the supervisor itself. Anything else is the child's
// own exit code passed through.
const (
	// ExitConfig indicates a configuration problem, reported before any
	// ping is sent.
	ExitConfig = 1
	// ExitSpawn indicates the child could not be started.
	ExitSpawn = 961
	// ExitIO indicates reading the child's output or waiting on it failed.
	ExitIO = 962
	// ExitHTTP indicates the health-check service could not be reached,
	// even after the retry.
	ExitHTTP = 963
	// ExitNoCode indicates the child terminated without an exit code.
	ExitNoCode = 964
)

// Reporter posts job lifecycle events to the health-check service.
type Reporter interface {
	PingStart() error
	PingSuccess(msg string) error
	PingFailure(msg string) error
}

// Config for a single supervised run.
type Config struct {
	// Command is the child argv, program name first.
	Command []string
	// Tee forwards the child's stdout and stderr to the parent's streams
	// while capturing.
	Tee bool
	// IgnoreCode forces a success ping and a zero exit code no matter how
	// the child exited. The report text still shows the child's own code.
	IgnoreCode bool
}

// Variables the supervisor consumes; scrubbed from the child environment so
// that nested invocations do not pick them up by accident.
var scrubEnv = []string{"HCP_ID", "HCP_TEE", "HCP_IGNORE_CODE"}

var (
	stderr  io.Writer = os.Stderr
	teeOut  io.Writer = os.Stdout
	teeErr  io.Writer = os.Stderr
	environ           = os.Environ
	cmdStart          = func(cmd *exec.Cmd) error { return cmd.Start() }
)

// childEnv returns the parent environment minus the supervisor's own
// variables.
func childEnv() []string {
	env := environ()
	filtered := make([]string, 0, len(env))
Next:
	for _, kv := range env {
		for _, name := range scrubEnv {
			if strings.HasPrefix(kv, name+"=") {
				continue Next
			}
		}
		filtered = append(filtered, kv)
	}
	return filtered
}

// finish sends the terminal ping matching code, success for 0 and failure
// otherwise, and returns the code the process should exit with. When log is
// set msg is printed to stderr first. Every run path converges here exactly
// once, except HTTP failure during the ping itself, which overrides the code.
func finish(rep Reporter, msg string, code int, log bool) int {
	if log {
		fmt.Fprintln(stderr, msg)
	}
	var err error
	if code == 0 {
		err = rep.PingSuccess(msg)
	} else {
		err = rep.PingFailure(msg)
	}
	if err != nil {
		logrus.Errorf("Error sending finishing request to healthchecks: %v", err)
		return ExitHTTP
	}
	return code
}

// composeReport builds the terminal report from the child's exit code (-1
// when there was none) and the captured output tails. The tails go in
// verbatim as bytes.
func composeReport(exitCode int, stdoutTail, stderrTail []byte) (msg string, code int) {
	var b bytes.Buffer
	code = exitCode
	if exitCode >= 0 {
		fmt.Fprintf(&b, "Command exited with exit code %d\n", exitCode)
	} else {
		b.WriteString("Command exited without an exit code\n")
		code = ExitNoCode
	}
	if len(stdoutTail) > 0 {
		b.WriteString("stdout:\n")
		b.Write(stdoutTail)
		b.WriteByte('\n')
	}
	if len(stderrTail) > 0 {
		if len(stdoutTail) > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("stderr:\n")
		b.Write(stderrTail)
		b.WriteByte('\n')
	}
	return b.String(), code
}

type teeResult struct {
	tail []byte
	err  error
}

// Run executes the configured command under supervision and returns the
// process exit code. The start ping goes out before the spawn, the terminal
// ping after both output readers have drained, and exactly one terminal ping
// is sent on every path.
func Run(config Config, rep Reporter) int {
	if len(config.Command) == 0 {
		return finish(rep, "No command given", 0, true)
	}
	if err := rep.PingStart(); err != nil {
		logrus.Errorf("Error on healthchecks /start call: %v", err)
		return ExitHTTP
	}

	// own pipes instead of cmd.StdoutPipe so that waiting on the child
	// cannot close them out from under the readers
	outR, outW, err := os.Pipe()
	if err != nil {
		return finish(rep, fmt.Sprintf("Failed to spawn process: %v", err), ExitSpawn, true)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return finish(rep, fmt.Sprintf("Failed to spawn process: %v", err), ExitSpawn, true)
	}

	cmd := exec.Command(config.Command[0], config.Command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = outW
	cmd.Stderr = errW
	cmd.Env = childEnv()
	if err := cmdStart(cmd); err != nil {
		outR.Close()
		outW.Close()
		errR.Close()
		errW.Close()
		return finish(rep, fmt.Sprintf("Failed to spawn process: %v", err), ExitSpawn, true)
	}
	// the child holds its own copies now; closing ours makes the readers
	// see EOF once the child side goes away
	outW.Close()
	errW.Close()

	outSink := io.Discard
	errSink := io.Discard
	if config.Tee {
		outSink = teeOut
		errSink = teeErr
	}
	outC := make(chan teeResult, 1)
	errC := make(chan teeResult, 1)
	go func() {
		defer outR.Close()
		tail, err := tee.Tee(outR, outSink, tee.DefaultTailBytes)
		outC <- teeResult{tail: tail, err: err}
	}()
	go func() {
		defer errR.Close()
		tail, err := tee.Tee(errR, errSink, tee.DefaultTailBytes)
		errC <- teeResult{tail: tail, err: err}
	}()

	waitErr := waitChild(cmd)
	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return finish(rep, fmt.Sprintf("Failed waiting for process: %v", waitErr), ExitIO, true)
	}

	out := <-outC
	if out.err != nil {
		return finish(rep, fmt.Sprintf("Error reading stdout from child: %v", out.err), ExitIO, false)
	}
	errOut := <-errC
	if errOut.err != nil {
		return finish(rep, fmt.Sprintf("Error reading stderr from child: %v", errOut.err), ExitIO, false)
	}

	msg, code := composeReport(cmd.ProcessState.ExitCode(), out.tail, errOut.tail)
	if config.IgnoreCode {
		code = 0
	}
	return finish(rep, msg, code, false)
}
