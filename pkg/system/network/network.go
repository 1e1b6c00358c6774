package network

import (
	"github.com/mdlayher/wifi"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/sirupsen/logrus"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
	network_connector "github.com/dogeorg/wifihelper/pkg/system/network/connector"
	network_link "github.com/dogeorg/wifihelper/pkg/system/network/link"
	network_wifi "github.com/dogeorg/wifihelper/pkg/system/network/wifi"
	"github.com/dogeorg/wifihelper/pkg/utils"
)

func NewWifiManager(config wifihelper.ServerConfig, log logrus.FieldLogger) wifihelper.WifiProvider {
	iface := config.Interface
	if iface == "" {
		iface = wifihelper.DefaultInterface
	}

	log = log.WithField("iface", iface)

	running, err := supplicantRunning()
	if err != nil {
		log.WithError(err).Debug("Could not inspect process table")
	} else if !running {
		log.Warn("wpa_supplicant does not appear to be running, network operations will fail")
	}

	runner := utils.ExecRunner{}
	return WifiManagerLinux{
		Interface:   iface,
		link:        network_link.New(),
		wpa:         network_connector.NewWPASupplicant(iface, config.WpaCtrlDir, runner),
		WifiScanner: network_wifi.NewWifiScanner(runner),
		log:         log,
	}
}

func NewConnectivityManager(config wifihelper.ServerConfig, log logrus.FieldLogger) wifihelper.ConnectivityProvider {
	return ConnectivityManagerLinux{
		Interface: config.Interface,
		newClient: func() (nl80211Client, error) {
			return wifi.New()
		},
		log: log,
	}
}

func supplicantRunning() (bool, error) {
	procs, err := process.Processes()
	if err != nil {
		return false, err
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if name == "wpa_supplicant" {
			return true, nil
		}
	}

	return false, nil
}
