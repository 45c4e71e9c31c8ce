//go:build unix

package cmdexec

import (
	"os/exec"
	"syscall"
)

// setProcGroup puts the command in its own process group so a timeout can
// terminate the command together with its children.
//
// Parameters:
//   - cmd: The command to configure
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}

// killProcGroup sends SIGKILL to the command's whole process group.
//
// Parameters:
//   - cmd: The command whose process group should be killed
//
// Returns:
//   - error: Kill failure, nil when the process never started
func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	// Negative PID addresses the whole process group.
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
