//go:build windows
// +build windows

package hlog

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"golang.org/x/sys/windows/svc"
)

func IsTerminal() bool {
	isService, err := svc.IsWindowsService()
	if err != nil {
		// If we can't determine service status, assume we're not a service
		// but check terminal capabilities
		return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	}

	// If we're a service, we're definitely not a console
	if isService {
		return false
	}

	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func getLogDir() string {
	// If running as a service, use ProgramData
	isService, _ := svc.IsWindowsService()
	if isService {
		return filepath.Join(filepath.VolumeName(os.Getenv("SystemDrive")), "ProgramData", "Marstip", "logs")
	}

	// Otherwise use %LOCALAPPDATA%
	appData := os.Getenv("LOCALAPPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
	}
	return filepath.Join(appData, "Marstip", "logs")
}
