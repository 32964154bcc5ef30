//go:build !windows

package process

import "syscall"

// KillProcessGroup kills the browser started by the verifier along with its
// renderer and GPU children, by signalling the process group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// launcher.Kill() runs afterwards, so the error is not needed
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
