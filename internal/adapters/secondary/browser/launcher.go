package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Launcher opens the preview URL in the platform's default browser
type Launcher struct{}

// NewLauncher creates a new browser launcher
func NewLauncher() *Launcher {
	return &Launcher{}
}

// Open launches the URL in the default browser without waiting on it
func (l *Launcher) Open(url string) error {
	name, args := openCommand(url)

	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("no browser opener available: %w", err)
	}

	cmd := exec.Command(name, args...) // #nosec G204 - command is platform-fixed, url comes from our own config
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// openCommand returns the platform's URL opener
func openCommand(url string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
