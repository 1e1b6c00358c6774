package network_wifi

import "github.com/dogeorg/wifihelper/pkg/utils"

type ScannedWifiNetwork struct {
	SSID       string
	BSSID      string
	Encryption string
	Quality    float32
	Signal     int // dBm, only meaningful with HasSignal
	HasSignal  bool
	Frequency  int // MHz
}

type WifiScanner interface {
	Scan(networkInterface string) ([]ScannedWifiNetwork, error)
}

func NewWifiScanner(runner utils.CommandRunner) WifiScanner {
	if runner == nil {
		runner = utils.ExecRunner{}
	}
	return IWListScanner{runner: runner}
}
