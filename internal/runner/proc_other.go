//go:build !windows

package runner

import "os/exec"

func configure(cmd *exec.Cmd) {}
