// Package tui renders minimal login feedback for the CLI login flow.
package tui

import (
	"fmt"

	"github.com/authtemplate/authshell/internal/session"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginResult is delivered once the deep link lands (or the flow fails).
type LoginResult struct {
	Info *session.LoginInfo
	Err  error
}

type resultMsg LoginResult

// LoginModel shows a spinner while the browser round trip is pending
// and a terminal status line once the result arrives.
type LoginModel struct {
	spinner  spinner.Model
	authURL  string
	results  <-chan LoginResult
	result   *LoginResult
	canceled bool
}

// NewLoginModel creates the model for one login attempt.
func NewLoginModel(authURL string, results <-chan LoginResult) LoginModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return LoginModel{
		spinner: sp,
		authURL: authURL,
		results: results,
	}
}

func waitForResult(results <-chan LoginResult) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(<-results)
	}
}

func (m LoginModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForResult(m.results))
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.canceled = true
			return m, tea.Quit
		}
		return m, nil

	case resultMsg:
		result := LoginResult(msg)
		m.result = &result
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m LoginModel) View() string {
	if m.canceled {
		return docStyle.Render(failureStyle("Sign-in canceled."))
	}

	if m.result != nil {
		if m.result.Err != nil {
			return docStyle.Render(failureStyle(fmt.Sprintf("Sign-in failed: %v", m.result.Err)))
		}
		who := m.result.Info.Provider
		if email, ok := m.result.Info.UserInfo["email"].(string); ok && email != "" {
			who = email
		}
		return docStyle.Render(successStyle(fmt.Sprintf("Signed in as %s.", who)))
	}

	body := fmt.Sprintf("%s %s\n\n%s\n%s",
		m.spinner.View(),
		statusStyle("Signing you in..."),
		hintStyle("If your browser did not open, visit:"),
		hintStyle(m.authURL),
	)
	return docStyle.Render(body)
}

// Result returns the delivered login result, or nil when the user quit
// before it arrived.
func (m LoginModel) Result() *LoginResult {
	return m.result
}

// Canceled reports whether the user aborted the flow.
func (m LoginModel) Canceled() bool {
	return m.canceled
}
