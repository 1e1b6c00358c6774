package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show radio and connection state.",
	Run: func(cmd *cobra.Command, args []string) {
		status, err := getAPI().Status()
		if err != nil {
			fail("Failed to read WiFi status", err)
		}

		output(status, func() {
			fmt.Printf("Radio: %s\n", onOff(status.Enabled))
			if status.Connected {
				fmt.Printf("Connected to: %s\n", status.SSID)
			} else {
				fmt.Println("Not connected")
			}
		})
	},
}

var connectedCmd = &cobra.Command{
	Use:   "connected",
	Short: "Print the SSID of the connected network, exit 1 if there is none.",
	Run: func(cmd *cobra.Command, args []string) {
		name, ok, err := getAPI().ConnectedNetworkName()
		if err != nil {
			fail("Failed to read connection", err)
		}
		if !ok {
			os.Exit(1)
		}
		fmt.Println(name)
	},
}

var isConnectedCmd = &cobra.Command{
	Use:   "is-connected <ssid>",
	Short: "Exit 0 if connected to <ssid>, 1 otherwise.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ok, err := getAPI().IsConnectedTo(args[0])
		if err != nil {
			fail("Failed to read connection", err)
		}
		if !ok {
			os.Exit(1)
		}
	},
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(connectedCmd)
	rootCmd.AddCommand(isConnectedCmd)
}
