package deeplink

import (
	"github.com/authtemplate/authshell/internal/logger"
	"go.uber.org/zap"
)

// ShellNavigator publishes navigation targets for the embedding shell.
// The shell owns the actual view stack; this side only announces where
// the UI should go next.
type ShellNavigator struct{}

// NewShellNavigator creates the shell-facing navigator.
func NewShellNavigator() *ShellNavigator {
	return &ShellNavigator{}
}

func (n *ShellNavigator) Navigate(path string) {
	logger.Info("Navigating", zap.String("path", path))
}
