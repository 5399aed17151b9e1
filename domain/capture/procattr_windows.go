//go:build windows

package capture

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// configureProcAttr hides the encoder's console window and detaches it from
// the console's Ctrl-C group; the recorder finalizes it through stdin EOF.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW | windows.CREATE_NEW_PROCESS_GROUP,
	}
}
