// Package platform hands files to the desktop environment.
package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating systems with a known viewer command.
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// OpenCommand returns the command that opens path with the default
// application on goos.
func OpenCommand(goos, path string) (string, []string, error) {
	switch goos {
	case OSDarwin:
		return "open", []string{path}, nil
	case OSWindows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}, nil
	case OSLinux, "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// Open starts the default viewer for path and does not wait for it to exit.
func Open(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	name, args, err := OpenCommand(runtime.GOOS, absPath)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("no viewer available: %w", err)
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	return cmd.Process.Release()
}
