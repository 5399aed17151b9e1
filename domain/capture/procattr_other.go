//go:build !unix && !windows

package capture

import "os/exec"

func configureProcAttr(cmd *exec.Cmd) {}
