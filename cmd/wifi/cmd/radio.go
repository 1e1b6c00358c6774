package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func radioCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Ask the host to switch the WiFi radio %s.", onOff(enabled)),
		Long: fmt.Sprintf(`Ask the host to switch the WiFi radio %s.

The request returns once accepted, the radio may take a few
seconds to settle. Use 'wifi status' to check.`, onOff(enabled)),
		Run: func(cmd *cobra.Command, args []string) {
			if err := getAPI().SetConnectionEnabled(enabled); err != nil {
				fail("Failed to change radio state", err)
			}
			fmt.Printf("Requested radio %s\n", onOff(enabled))
		},
	}
}

func init() {
	rootCmd.AddCommand(radioCmd("enable", true))
	rootCmd.AddCommand(radioCmd("disable", false))
}
