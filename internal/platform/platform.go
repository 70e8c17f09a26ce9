// Package platform resolves which runtime flavor the app is running
// under. Detection never fails: every error path degrades to the web
// result.
package platform

import (
	"github.com/authtemplate/authshell/internal/bridge"
	"github.com/authtemplate/authshell/internal/config"
)

// Platform identifies the runtime flavor. It is derived on every query,
// never persisted.
type Platform string

const (
	Web     Platform = "web"
	Android Platform = "android"
	IOS     Platform = "ios"
)

// Detector answers platform queries through the capability bridge
// selected at startup. The build target is captured at construction
// time; it cannot change for the life of the process.
type Detector struct {
	bridge      bridge.Bridge
	mobileBuild bool
}

// NewDetector creates a detector backed by the given bridge.
func NewDetector(b bridge.Bridge) *Detector {
	return &Detector{
		bridge:      b,
		mobileBuild: config.IsMobileBuild(),
	}
}

// Platform resolves the current platform. Non-mobile builds are web
// unconditionally and the bridge is never consulted. On mobile builds
// any bridge failure or unknown platform string also resolves to web.
func (d *Detector) Platform() Platform {
	if !d.mobileBuild {
		return Web
	}

	name, err := d.bridge.Platform()
	if err != nil {
		return Web
	}

	switch name {
	case "android":
		return Android
	case "ios":
		return IOS
	default:
		return Web
	}
}

// IsNative reports whether the app runs inside the native wrapper.
// Defaults to false on web builds and on any bridge failure.
func (d *Detector) IsNative() bool {
	if !d.mobileBuild {
		return false
	}

	native, err := d.bridge.IsNativePlatform()
	if err != nil {
		return false
	}
	return native
}

// IsWeb is derived solely from the build-time target.
func (d *Detector) IsWeb() bool {
	return !d.mobileBuild
}
