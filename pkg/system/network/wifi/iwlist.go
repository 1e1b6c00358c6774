package network_wifi

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dogeorg/wifihelper/pkg/utils"
)

var _ WifiScanner = &IWListScanner{}

var (
	ssidRegex       = regexp.MustCompile(`(?m)ESSID:"(.*)"\s*$`)
	addressRegex    = regexp.MustCompile(`Address: ([0-9A-Fa-f:]+)`)
	encryptionRegex = regexp.MustCompile(`Encryption key:(on|off)`)
	wpa2Regex       = regexp.MustCompile(`IE: IEEE 802.11i/WPA2 Version`)
	wpaRegex        = regexp.MustCompile(`IE: WPA Version 1`)
	signalRegex     = regexp.MustCompile(`Signal level[=:](-?\d+) dBm`)
	qualityRegex    = regexp.MustCompile(`Quality[=:](\d+)/(\d+)`)
	frequencyRegex  = regexp.MustCompile(`Frequency:(\d+(?:\.\d+)?) GHz`)
)

type IWListScanner struct {
	runner utils.CommandRunner
}

func (s IWListScanner) Scan(interfaceName string) ([]ScannedWifiNetwork, error) {
	out, err := s.runner.Run("iwlist", interfaceName, "scan")
	if err != nil {
		return nil, err
	}

	return parseIWListOutput(string(out)), nil
}

// Cells are returned in the order iwlist printed them.
func parseIWListOutput(output string) []ScannedWifiNetwork {
	var networks []ScannedWifiNetwork
	cells := strings.Split(output, "Cell ")

	for _, cell := range cells {
		ssid := ssidRegex.FindStringSubmatch(cell)
		address := addressRegex.FindStringSubmatch(cell)
		encryption := encryptionRegex.FindStringSubmatch(cell)

		if len(ssid) < 2 || len(address) < 2 || len(encryption) < 2 {
			continue
		}

		// Hidden networks have no name to offer.
		if ssid[1] == "" {
			continue
		}

		var encryptionType string
		if encryption[1] == "on" {
			if wpa2Regex.MatchString(cell) {
				encryptionType = "WPA2"
			} else if wpaRegex.MatchString(cell) {
				encryptionType = "WPA"
			} else {
				encryptionType = "WEP"
			}
		}

		network := ScannedWifiNetwork{
			SSID:       ssid[1],
			BSSID:      address[1],
			Encryption: encryptionType,
		}

		if m := signalRegex.FindStringSubmatch(cell); len(m) > 1 {
			if level, err := strconv.Atoi(m[1]); err == nil {
				network.Signal = level
				network.HasSignal = true
			}
		}

		if m := qualityRegex.FindStringSubmatch(cell); len(m) > 2 {
			have, _ := strconv.ParseFloat(m[1], 32)
			total, _ := strconv.ParseFloat(m[2], 32)
			if total > 0 {
				network.Quality = float32(have / total)
			}
		}

		if m := frequencyRegex.FindStringSubmatch(cell); len(m) > 1 {
			ghz, err := strconv.ParseFloat(m[1], 64)
			if err == nil {
				network.Frequency = int(math.Round(ghz * 1000))
			}
		}

		networks = append(networks, network)
	}

	return networks
}
