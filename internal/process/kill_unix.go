//go:build !windows

// Package process cleans up browser processes left behind by the PDF backend.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, so Chrome
// helper processes die with the browser.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
