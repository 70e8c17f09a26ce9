package auth

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenBrowser opens the default web browser to the specified URL. It
// picks the launcher command for the current operating system and
// returns an error if the platform is unsupported or the browser fails
// to start.
func OpenBrowser(url string) error {
	var err error

	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}

	return err
}

// TryOpenBrowser attempts to open the browser but ignores any error;
// the user can still copy and paste the URL by hand.
func TryOpenBrowser(url string) {
	_ = OpenBrowser(url)
}
