package bridge

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/authtemplate/authshell/internal/config"
	"github.com/authtemplate/authshell/internal/logger"
	"go.uber.org/zap"
)

// Listener is the desktop counterpart of the wrapper socket: this
// process owns the socket and the OS custom-scheme handler (the
// "open-url" verb) connects to push URLs in. It satisfies Bridge so the
// deep-link router wires up identically on every platform; capability
// queries report not-native.
type Listener struct {
	socket string
	ln     net.Listener

	mu        sync.Mutex
	listeners []func(string)
}

// Listen binds the local socket and starts accepting URL deliveries.
func Listen(cfg *config.BridgeConfig) (*Listener, error) {
	if cfg.Socket == "" {
		return nil, fmt.Errorf("bridge socket not configured")
	}

	// A previous run may have left the socket file behind.
	_ = os.Remove(cfg.Socket)

	ln, err := net.Listen("unix", cfg.Socket)
	if err != nil {
		return nil, fmt.Errorf("failed to bind bridge socket: %w", err)
	}

	l := &Listener{socket: cfg.Socket, ln: ln}
	go l.acceptLoop()
	return l, nil
}

func (l *Listener) Platform() (string, error) { return "", ErrUnavailable }

func (l *Listener) IsNativePlatform() (bool, error) { return false, ErrUnavailable }

func (l *Listener) OnResumeURL(fn func(string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

func (l *Listener) LaunchURL() (string, error) {
	return "", nil
}

// Close stops accepting deliveries and removes the socket file.
func (l *Listener) Close() error {
	err := l.ln.Close()
	_ = os.Remove(l.socket)
	return err
}

func (l *Listener) acceptLoop() {
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			return
		}
		go l.serve(conn)
	}
}

func (l *Listener) serve(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	reader := bufio.NewReader(conn)
	for {
		ev, err := readEvent(reader)
		if err != nil {
			return
		}
		if ev.Type != eventResumeURL || ev.URL == "" {
			logger.Debug("ignoring bridge frame", zap.String("type", ev.Type))
			continue
		}

		l.mu.Lock()
		listeners := make([]func(string), len(l.listeners))
		copy(listeners, l.listeners)
		l.mu.Unlock()

		for _, fn := range listeners {
			fn(ev.URL)
		}
	}
}

// Forward delivers a URL to the process listening on the bridge
// socket. It is the transport behind the "open-url" CLI verb the OS
// invokes for custom-scheme URLs.
func Forward(cfg *config.BridgeConfig, url string) error {
	if cfg.Socket == "" {
		return fmt.Errorf("bridge socket not configured")
	}

	conn, err := net.DialTimeout("unix", cfg.Socket, dialTimeout)
	if err != nil {
		return fmt.Errorf("no running authshell process on %s: %w", cfg.Socket, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	return writeEvent(conn, event{Type: eventResumeURL, URL: url})
}
