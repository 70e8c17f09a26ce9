package platform

import (
	"testing"

	"github.com/authtemplate/authshell/internal/bridge"
	"github.com/stretchr/testify/assert"
)

// recordingBridge counts capability queries so tests can assert the
// bridge is never touched on web builds.
type recordingBridge struct {
	platform      string
	platformErr   error
	native        bool
	nativeErr     error
	platformCalls int
	nativeCalls   int
}

func (b *recordingBridge) Platform() (string, error) {
	b.platformCalls++
	return b.platform, b.platformErr
}

func (b *recordingBridge) IsNativePlatform() (bool, error) {
	b.nativeCalls++
	return b.native, b.nativeErr
}

func (b *recordingBridge) OnResumeURL(func(string)) {}

func (b *recordingBridge) LaunchURL() (string, error) { return "", nil }

func TestWebBuildNeverConsultsBridge(t *testing.T) {
	rec := &recordingBridge{platform: "android", native: true}
	d := &Detector{bridge: rec, mobileBuild: false}

	assert.True(t, d.IsWeb())
	assert.Equal(t, Web, d.Platform())
	assert.False(t, d.IsNative())
	assert.Zero(t, rec.platformCalls)
	assert.Zero(t, rec.nativeCalls)
}

func TestMobileBuildPlatformMapping(t *testing.T) {
	tests := []struct {
		name     string
		bridge   *recordingBridge
		expected Platform
	}{
		{
			name:     "android",
			bridge:   &recordingBridge{platform: "android"},
			expected: Android,
		},
		{
			name:     "ios",
			bridge:   &recordingBridge{platform: "ios"},
			expected: IOS,
		},
		{
			name:     "unknown platform string falls back to web",
			bridge:   &recordingBridge{platform: "windows-phone"},
			expected: Web,
		},
		{
			name:     "bridge failure falls back to web",
			bridge:   &recordingBridge{platformErr: bridge.ErrUnavailable},
			expected: Web,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Detector{bridge: tt.bridge, mobileBuild: true}
			assert.Equal(t, tt.expected, d.Platform())
			assert.False(t, d.IsWeb())
		})
	}
}

func TestIsNative(t *testing.T) {
	d := &Detector{bridge: &recordingBridge{native: true}, mobileBuild: true}
	assert.True(t, d.IsNative())

	d = &Detector{bridge: &recordingBridge{nativeErr: bridge.ErrUnavailable}, mobileBuild: true}
	assert.False(t, d.IsNative())
}

func TestAbsentBridgeDefaults(t *testing.T) {
	d := NewDetector(bridge.Absent())
	assert.Equal(t, Web, d.Platform())
	assert.False(t, d.IsNative())
}
