package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/authtemplate/authshell/internal/auth"
	"github.com/authtemplate/authshell/internal/backend"
	"github.com/authtemplate/authshell/internal/bridge"
	"github.com/authtemplate/authshell/internal/config"
	"github.com/authtemplate/authshell/internal/deeplink"
	"github.com/authtemplate/authshell/internal/logger"
	"github.com/authtemplate/authshell/internal/server"
	"github.com/authtemplate/authshell/internal/session"
	"github.com/authtemplate/authshell/internal/trampoline"
	"github.com/authtemplate/authshell/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a browser-based sign-in from this machine",
	RunE:  runLogin,
}

// resultNavigator converts router navigation into a login outcome for
// the TUI.
type resultNavigator struct {
	store   *session.Store
	results chan<- tui.LoginResult
}

func (n *resultNavigator) Navigate(path string) {
	switch path {
	case deeplink.PathAuthenticated:
		n.results <- tui.LoginResult{Info: n.store.Get()}
	case deeplink.PathLoginFailed:
		n.results <- tui.LoginResult{Err: errors.New("the sign-in payload could not be read")}
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI; keep logs off the console.
	logCfg := cfg.Logging
	logCfg.DisableConsole = true
	if logCfg.OutputPath == "" {
		logCfg.DisableStacktrace = true
	}
	if err := logger.InitLogger(&logCfg); err != nil {
		return err
	}

	pending, err := auth.BeginLogin(&cfg.OAuth)
	if err != nil {
		return err
	}

	store := session.NewStore()
	results := make(chan tui.LoginResult, 1)
	router := deeplink.NewRouter(&cfg.DeepLink, store, &resultNavigator{store: store, results: results})

	// The OS custom-scheme handler delivers the deep link by running
	// "authshell open-url", which connects to this socket.
	listener, err := bridge.Listen(&cfg.Bridge)
	if err != nil {
		return err
	}
	defer func() {
		_ = listener.Close()
	}()
	router.Wire(listener)

	// Host the callback trampoline locally for the browser round trip.
	srv := server.NewServer(&cfg.Server, trampoline.NewHandler(cfg, backend.NewClient(&cfg.Backend)))
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go func() {
		if err := srv.Start(ctx); err != nil {
			results <- tui.LoginResult{Err: err}
		}
	}()

	auth.TryOpenBrowser(pending.AuthURL)

	p := tea.NewProgram(tui.NewLoginModel(pending.AuthURL, results))
	m, err := p.Run()
	if err != nil {
		return err
	}

	final := m.(tui.LoginModel)
	if final.Canceled() {
		pterm.Warning.Println("Sign-in canceled")
		return nil
	}
	result := final.Result()
	if result == nil {
		return fmt.Errorf("sign-in did not complete")
	}
	if result.Err != nil {
		return result.Err
	}

	pterm.Success.Printfln("Signed in via %s", result.Info.Provider)
	return nil
}
