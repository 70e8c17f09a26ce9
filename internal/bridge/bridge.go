// Package bridge talks to the native shell wrapper over a local
// socket. The wrapper may or may not exist depending on the build
// target and runtime environment; every entry point is guarded and
// degrades to an absent, error-free bridge.
package bridge

import "errors"

// ErrUnavailable is returned by capability queries when no native
// wrapper is attached.
var ErrUnavailable = errors.New("native bridge unavailable")

// Bridge is the capability surface the native shell wrapper exposes to
// this process.
type Bridge interface {
	// Platform reports the wrapper's platform string (e.g. "android", "ios").
	Platform() (string, error)

	// IsNativePlatform reports whether the app runs inside the wrapper.
	IsNativePlatform() (bool, error)

	// OnResumeURL registers a listener for URLs delivered while the
	// process is already running (warm resume).
	OnResumeURL(fn func(url string))

	// LaunchURL returns the URL the process was launched with, if any.
	// The warm-resume signal never fires retroactively, so cold-start
	// URLs must be queried through this exactly once at startup.
	LaunchURL() (string, error)
}

// event is the line-JSON frame exchanged with the wrapper.
type event struct {
	Type      string `json:"type"`
	URL       string `json:"url,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Native    bool   `json:"native,omitempty"`
	LaunchURL string `json:"launch_url,omitempty"`
}

const (
	eventHello     = "hello"
	eventInfo      = "info"
	eventResumeURL = "resume-with-url"
)

// absent is the no-op bridge used on web builds and whenever the
// wrapper cannot be reached.
type absent struct{}

// Absent returns the no-op bridge.
func Absent() Bridge {
	return absent{}
}

func (absent) Platform() (string, error) { return "", ErrUnavailable }

func (absent) IsNativePlatform() (bool, error) { return false, ErrUnavailable }

func (absent) OnResumeURL(func(string)) {}

func (absent) LaunchURL() (string, error) { return "", nil }
