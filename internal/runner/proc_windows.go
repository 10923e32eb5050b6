//go:build windows

package runner

import (
	"os/exec"
	"syscall"
)

const createNoWindow = 0x08000000

// configure keeps console utilities (net, tasklist, taskkill) from
// flashing a window.
func configure(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
