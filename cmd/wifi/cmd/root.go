package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
	"github.com/dogeorg/wifihelper/pkg/client"
	"github.com/dogeorg/wifihelper/pkg/system/network"
	network_sim "github.com/dogeorg/wifihelper/pkg/system/network/sim"
)

var (
	iface      string
	wpaCtrlDir string
	remote     string
	sim        bool
	verbose    bool
	asJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "wifi",
	Short: "wifi inspects and switches the host's WiFi networks",
	Long: `wifi inspects and switches the host's WiFi networks.

It talks to the local WiFi stack (wpa_supplicant, nl80211) directly,
or to a wifid instance when --remote is given.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&iface, "iface", wifihelper.DefaultInterface, "Wireless interface to manage")
	rootCmd.PersistentFlags().StringVar(&wpaCtrlDir, "wpa-ctrl-dir", wifihelper.DefaultWpaCtrlDir, "wpa_supplicant control socket directory")
	rootCmd.PersistentFlags().StringVar(&remote, "remote", "", "Base URL of a wifid REST API, ie: http://127.0.0.1:8080")
	rootCmd.PersistentFlags().BoolVar(&sim, "sim", false, "Use a simulated WiFi host instead of real hardware")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Be verbose")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print results as JSON")
}

func getAPI() wifihelper.WifiAPI {
	if remote != "" {
		return client.New(remote)
	}

	log := logrus.StandardLogger()

	if sim {
		host := network_sim.NewDemoHost()
		return wifihelper.NewWifiHelper(host, host, wifihelper.WithLogger(log))
	}

	config := wifihelper.ServerConfig{
		Interface:  iface,
		WpaCtrlDir: wpaCtrlDir,
	}

	return wifihelper.NewWifiHelper(
		network.NewConnectivityManager(config, log),
		network.NewWifiManager(config, log),
		wifihelper.WithLogger(log),
	)
}

func fail(msg string, err error) {
	logrus.WithError(err).Error(msg)
	os.Exit(1)
}

// output prints v as JSON when --json is set, otherwise calls text.
func output(v any, text func()) {
	if !asJSON {
		text()
		return
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail("Failed to encode output", err)
	}
	fmt.Println(string(b))
}
