//go:build windows

package cmdexec

import (
	"os/exec"
	"syscall"
)

// setProcGroup creates the command in a new process group so a timeout can
// terminate the command together with its children.
//
// Parameters:
//   - cmd: The command to configure
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}

// killProcGroup terminates the command's process tree.
//
// Parameters:
//   - cmd: The command whose process tree should be killed
//
// Returns:
//   - error: Kill failure, nil when the process never started
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
