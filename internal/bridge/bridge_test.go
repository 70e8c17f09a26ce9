package bridge

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/authtemplate/authshell/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsentBridge(t *testing.T) {
	b := Absent()

	_, err := b.Platform()
	assert.ErrorIs(t, err, ErrUnavailable)

	native, err := b.IsNativePlatform()
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, native)

	url, err := b.LaunchURL()
	require.NoError(t, err)
	assert.Empty(t, url)

	// Registering on the absent bridge is a harmless no-op.
	b.OnResumeURL(func(string) { t.Fatal("absent bridge must never deliver") })
}

func TestListenerDeliversForwardedURLs(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "bridge.sock")
	cfg := &config.BridgeConfig{Socket: socket}

	l, err := Listen(cfg)
	require.NoError(t, err)
	defer func() {
		_ = l.Close()
	}()

	urls := make(chan string, 1)
	l.OnResumeURL(func(url string) { urls <- url })

	require.NoError(t, Forward(cfg, "authtemplate://auth?data=%7B%7D"))

	select {
	case url := <-urls:
		assert.Equal(t, "authtemplate://auth?data=%7B%7D", url)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for URL delivery")
	}
}

func TestListenerReportsNotNative(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "bridge.sock")
	l, err := Listen(&config.BridgeConfig{Socket: socket})
	require.NoError(t, err)
	defer func() {
		_ = l.Close()
	}()

	_, err = l.Platform()
	assert.ErrorIs(t, err, ErrUnavailable)

	native, err := l.IsNativePlatform()
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, native)
}

func TestForwardWithoutListener(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "missing.sock")
	err := Forward(&config.BridgeConfig{Socket: socket}, "authtemplate://auth?data=x")
	assert.Error(t, err)
}

// fakeWrapper acts as the native shell side of the socket: it answers
// the hello with an info frame and can push resume events afterwards.
type fakeWrapper struct {
	ln    net.Listener
	conns chan net.Conn
	info  event
}

func newFakeWrapper(t *testing.T, socket string, info event) *fakeWrapper {
	t.Helper()
	ln, err := net.Listen("unix", socket)
	require.NoError(t, err)

	w := &fakeWrapper{ln: ln, conns: make(chan net.Conn, 1), info: info}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		reader := bufio.NewReader(conn)
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return
		}
		var hello event
		if json.Unmarshal(line, &hello) != nil || hello.Type != eventHello {
			_ = conn.Close()
			return
		}
		payload, _ := json.Marshal(w.info)
		_, _ = conn.Write(append(payload, '\n'))
		w.conns <- conn
	}()
	return w
}

func (w *fakeWrapper) push(t *testing.T, conn net.Conn, ev event) {
	t.Helper()
	payload, err := json.Marshal(ev)
	require.NoError(t, err)
	_, err = conn.Write(append(payload, '\n'))
	require.NoError(t, err)
}

func (w *fakeWrapper) close() {
	_ = w.ln.Close()
}

func TestDialHandshakeAndResume(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "wrapper.sock")
	wrapper := newFakeWrapper(t, socket, event{
		Type:      eventInfo,
		Platform:  "android",
		Native:    true,
		LaunchURL: "authtemplate://auth?data=%7B%7D",
	})
	defer wrapper.close()

	b, err := Dial(&config.BridgeConfig{Socket: socket})
	require.NoError(t, err)

	name, err := b.Platform()
	require.NoError(t, err)
	assert.Equal(t, "android", name)

	native, err := b.IsNativePlatform()
	require.NoError(t, err)
	assert.True(t, native)

	launch, err := b.LaunchURL()
	require.NoError(t, err)
	assert.Equal(t, "authtemplate://auth?data=%7B%7D", launch)

	urls := make(chan string, 1)
	b.OnResumeURL(func(url string) { urls <- url })

	conn := <-wrapper.conns
	wrapper.push(t, conn, event{Type: eventResumeURL, URL: "authtemplate://auth?data=abc"})

	select {
	case url := <-urls:
		assert.Equal(t, "authtemplate://auth?data=abc", url)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for resume event")
	}
}

func TestDialRejectsBadHandshake(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "wrapper.sock")
	wrapper := newFakeWrapper(t, socket, event{Type: eventResumeURL})
	defer wrapper.close()

	_, err := Dial(&config.BridgeConfig{Socket: socket})
	assert.Error(t, err)
}

func TestDialWithoutSocket(t *testing.T) {
	_, err := Dial(&config.BridgeConfig{})
	assert.Error(t, err)
}

func TestNewFallsBackToAbsentOnWebBuild(t *testing.T) {
	b := New(&config.BridgeConfig{Socket: filepath.Join(t.TempDir(), "nope.sock")})
	_, err := b.Platform()
	assert.ErrorIs(t, err, ErrUnavailable)
}
