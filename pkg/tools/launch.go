package tools

import (
	"os"
	"os/exec"
)

// Launch runs the tool attached to the current terminal with the layered
// environment. No retry, no timeout, no output parsing; the returned error
// is *exec.ExitError when the tool exited non-zero, and callers propagate
// that exit code verbatim.
func Launch(binPath string, args []string, env []string) error {
	c := exec.Command(binPath, args...)
	c.Env = env
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
