package bridge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/authtemplate/authshell/internal/config"
	"github.com/authtemplate/authshell/internal/logger"
	"go.uber.org/zap"
)

const dialTimeout = 2 * time.Second

// native is the wrapper-backed bridge. It dials the wrapper's socket,
// performs a hello/info handshake, then keeps reading resume events for
// the life of the process.
type native struct {
	conn      net.Conn
	platform  string
	isNative  bool
	launchURL string

	mu        sync.Mutex
	listeners []func(string)
}

// New selects the bridge implementation once at startup. Non-mobile
// builds never touch the wrapper; mobile builds attempt to attach and
// fall back to the absent bridge on any failure. New never returns an
// error: capability detection must not block or break startup.
func New(cfg *config.BridgeConfig) Bridge {
	if !config.IsMobileBuild() {
		return Absent()
	}

	b, err := Dial(cfg)
	if err != nil {
		logger.Debug("native bridge not attached, falling back to web behavior", zap.Error(err))
		return Absent()
	}
	return b
}

// Dial attaches to the wrapper socket and performs the handshake.
func Dial(cfg *config.BridgeConfig) (Bridge, error) {
	if cfg.Socket == "" {
		return nil, fmt.Errorf("bridge socket not configured")
	}

	conn, err := net.DialTimeout("unix", cfg.Socket, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to dial bridge socket: %w", err)
	}

	if err := writeEvent(conn, event{Type: eventHello}); err != nil {
		_ = conn.Close()
		return nil, err
	}

	reader := bufio.NewReader(conn)
	_ = conn.SetReadDeadline(time.Now().Add(dialTimeout))
	info, err := readEvent(reader)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("bridge handshake failed: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	if info.Type != eventInfo {
		_ = conn.Close()
		return nil, fmt.Errorf("unexpected bridge handshake frame %q", info.Type)
	}

	b := &native{
		conn:      conn,
		platform:  info.Platform,
		isNative:  info.Native,
		launchURL: info.LaunchURL,
	}
	if b.launchURL == "" && cfg.LaunchURLEnv != "" {
		b.launchURL = os.Getenv(cfg.LaunchURLEnv)
	}

	go b.readLoop(reader)
	return b, nil
}

func (b *native) Platform() (string, error) {
	return b.platform, nil
}

func (b *native) IsNativePlatform() (bool, error) {
	return b.isNative, nil
}

func (b *native) OnResumeURL(fn func(string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *native) LaunchURL() (string, error) {
	return b.launchURL, nil
}

func (b *native) readLoop(reader *bufio.Reader) {
	for {
		ev, err := readEvent(reader)
		if err != nil {
			logger.Debug("bridge connection closed", zap.Error(err))
			return
		}
		if ev.Type != eventResumeURL || ev.URL == "" {
			continue
		}

		b.mu.Lock()
		listeners := make([]func(string), len(b.listeners))
		copy(listeners, b.listeners)
		b.mu.Unlock()

		for _, fn := range listeners {
			fn(ev.URL)
		}
	}
}

func writeEvent(conn net.Conn, ev event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("failed to write bridge event: %w", err)
	}
	return nil
}

func readEvent(reader *bufio.Reader) (event, error) {
	line, err := reader.ReadBytes('\n')
	if err != nil {
		return event{}, err
	}
	var ev event
	if err := json.Unmarshal(line, &ev); err != nil {
		return event{}, fmt.Errorf("malformed bridge event: %w", err)
	}
	return ev, nil
}
