//go:build windows

// Package process cleans up browser processes left behind by the PDF backend.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills a process tree with taskkill (/F force, /T tree).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
