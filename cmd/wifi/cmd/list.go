package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
)

var (
	listAvailable  bool
	listConfigured bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available and configured networks.",
	Long: `List available networks (from the latest scan) followed by
configured ones. A network that is both appears twice.`,
	Run: func(cmd *cobra.Command, args []string) {
		api := getAPI()

		if listConfigured && !listAvailable {
			networks, err := api.ConfiguredNetworks()
			if err != nil {
				fail("Failed to list configured networks", err)
			}
			output(networks, func() {
				for _, n := range networks {
					fmt.Printf("%4d  %s\n", n.NetID, n.SSID)
				}
			})
			return
		}

		list := api.ListNetworks
		if listAvailable && !listConfigured {
			list = api.ListAvailableNetworks
		}

		names, err := list()
		if err != nil {
			fail("Failed to list networks", err)
		}
		output(names, func() {
			for _, n := range names {
				fmt.Println(n)
			}
		})
	},
}

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Scan and list networks strongest first.",
	Run: func(cmd *cobra.Command, args []string) {
		results, err := getAPI().RankBySignal(nil)
		if err != nil {
			fail("Failed to rank networks", err)
		}
		output(results, func() {
			for _, r := range results {
				level := fmt.Sprintf("%4d", r.Level)
				if r.Level == wifihelper.LevelUnknown {
					level = "   ?"
				}
				fmt.Printf("%s dBm  %5d MHz  %-17s  %s\n", level, r.Frequency, r.BSSID, r.SSID)
			}
		})
	},
}

func init() {
	listCmd.Flags().BoolVar(&listAvailable, "available", false, "Only networks from the latest scan")
	listCmd.Flags().BoolVar(&listConfigured, "configured", false, "Only configured networks, with their ids")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(signalCmd)
}
