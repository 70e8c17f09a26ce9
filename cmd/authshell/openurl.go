package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/authtemplate/authshell/internal/bridge"
	"github.com/authtemplate/authshell/internal/config"
)

var openURLSocket string

// openURLCmd is what the OS custom-scheme handler invokes: it forwards
// the URL into the running authshell process and exits.
var openURLCmd = &cobra.Command{
	Use:   "open-url <url>",
	Short: "Forward a custom-scheme URL to the running authshell process",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		socket := openURLSocket
		if socket == "" {
			socket = os.Getenv("AUTHSHELL_BRIDGE_SOCKET")
		}
		if socket == "" {
			return fmt.Errorf("bridge socket is required, pass --socket or set AUTHSHELL_BRIDGE_SOCKET")
		}

		return bridge.Forward(&config.BridgeConfig{Socket: socket}, args[0])
	},
}

func init() {
	openURLCmd.Flags().StringVar(&openURLSocket, "socket", "", "Path to the bridge socket of the running process")
}
