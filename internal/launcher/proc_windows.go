//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

const createNewProcessGroup = 0x00000200

func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNewProcessGroup}
}
