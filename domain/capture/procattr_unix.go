//go:build unix

package capture

import (
	"os/exec"
	"syscall"
)

// configureProcAttr moves the encoder into its own process group so a
// terminal SIGINT reaches only the recorder, which then closes stdin.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
