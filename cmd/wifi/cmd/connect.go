package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
)

var keepOthers bool

var connectCmd = &cobra.Command{
	Use:   "connect <netId>",
	Short: "Switch to a configured network.",
	Long: `Switch to a configured network by id (see 'wifi list --configured').

All other configured networks are disabled unless --keep-others is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		netID, err := strconv.Atoi(args[0])
		if err != nil {
			fail("netId must be a number", err)
		}

		opts := []wifihelper.ConnectOption{}
		if keepOthers {
			opts = append(opts, wifihelper.KeepOthers())
		}

		if err := getAPI().ConnectToNetwork(netID, opts...); err != nil {
			fail("Failed to switch network", err)
		}
		fmt.Printf("Requested switch to network %d\n", netID)
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Remove the currently connected network.",
	Run: func(cmd *cobra.Command, args []string) {
		err := getAPI().DisconnectFromNetwork()
		if errors.Is(err, wifihelper.ErrNoActiveConnection) {
			logrus.Warn("Not connected to any network")
			return
		}
		if err != nil {
			fail("Failed to disconnect", err)
		}
		fmt.Println("Disconnected")
	},
}

func init() {
	connectCmd.Flags().BoolVar(&keepOthers, "keep-others", false, "Leave other configured networks enabled")
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
}
