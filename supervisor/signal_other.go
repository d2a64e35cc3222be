//go:build !unix

package supervisor

import "os/exec"

// InstallSignalBridge does nothing where signal forwarding is not
// supported.
func InstallSignalBridge() {}

// waitChild blocks until the child exits.
var waitChild = func(cmd *exec.Cmd) error {
	return cmd.Wait()
}
