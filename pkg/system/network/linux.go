package network

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/mdlayher/wifi"
	"github.com/sirupsen/logrus"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
	network_connector "github.com/dogeorg/wifihelper/pkg/system/network/connector"
	network_link "github.com/dogeorg/wifihelper/pkg/system/network/link"
	network_wifi "github.com/dogeorg/wifihelper/pkg/system/network/wifi"
)

var _ wifihelper.WifiProvider = &WifiManagerLinux{}
var _ wifihelper.ConnectivityProvider = &ConnectivityManagerLinux{}

// what we need from wpa_supplicant, see connector.WPASupplicant
type wpaClient interface {
	Status() (map[string]string, error)
	ListNetworks() ([]network_connector.ConfiguredNetwork, error)
	EnableNetwork(id int) (bool, error)
	DisableNetwork(id int) (bool, error)
	RemoveNetwork(id int) (bool, error)
	SaveConfig() (bool, error)
}

type WifiManagerLinux struct {
	Interface   string
	link        network_link.NetLink
	wpa         wpaClient
	WifiScanner network_wifi.WifiScanner
	log         logrus.FieldLogger
}

func (t WifiManagerLinux) IsWifiEnabled() (bool, error) {
	link, err := t.link.LinkByName(t.Interface)
	if err != nil {
		return false, fmt.Errorf("cannot find link %s: %w", t.Interface, err)
	}
	return network_link.IsUp(link), nil
}

// SetWifiEnabled only flips the administrative state of the link.
// Association happens later, driven by wpa_supplicant.
func (t WifiManagerLinux) SetWifiEnabled(enabled bool) (bool, error) {
	link, err := t.link.LinkByName(t.Interface)
	if err != nil {
		return false, fmt.Errorf("cannot find link %s: %w", t.Interface, err)
	}

	if enabled {
		err = t.link.LinkSetUp(link)
	} else {
		err = t.link.LinkSetDown(link)
	}
	if err != nil {
		t.log.WithError(err).WithField("enabled", enabled).Warn("Failed to change link state")
		return false, err
	}

	return true, nil
}

func (t WifiManagerLinux) ConnectionInfo() (wifihelper.ConnectionRecord, bool, error) {
	status, err := t.wpa.Status()
	if err != nil {
		return wifihelper.ConnectionRecord{}, false, err
	}

	// wpa_cli only prints an id once a configured network is selected.
	rawID, ok := status["id"]
	if !ok {
		return wifihelper.ConnectionRecord{}, false, nil
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return wifihelper.ConnectionRecord{}, false, fmt.Errorf("bad network id %q in wpa_cli status: %w", rawID, err)
	}

	rec := wifihelper.ConnectionRecord{
		SSID:  status["ssid"],
		BSSID: status["bssid"],
		NetID: id,
		State: status["wpa_state"],
	}

	if freq, ok := status["freq"]; ok {
		rec.Frequency, _ = strconv.Atoi(freq)
	}

	return rec, true, nil
}

func (t WifiManagerLinux) ScanResults() ([]wifihelper.SignalRecord, error) {
	scanned, err := t.WifiScanner.Scan(t.Interface)
	if err != nil {
		t.log.WithError(err).Warnf("Failed to scan for Wifi networks on %s", t.Interface)
		return nil, err
	}

	records := make([]wifihelper.SignalRecord, 0, len(scanned))
	for _, n := range scanned {
		level := n.Signal
		if !n.HasSignal {
			level = wifihelper.LevelUnknown
		}
		records = append(records, wifihelper.SignalRecord{
			SSID:         n.SSID,
			BSSID:        n.BSSID,
			Level:        level,
			Frequency:    n.Frequency,
			Capabilities: n.Encryption,
		})
	}

	return records, nil
}

func (t WifiManagerLinux) ConfiguredNetworks() ([]wifihelper.NetworkIdentity, error) {
	networks, err := t.wpa.ListNetworks()
	if err != nil {
		return nil, err
	}

	identities := make([]wifihelper.NetworkIdentity, 0, len(networks))
	for _, n := range networks {
		identities = append(identities, wifihelper.NetworkIdentity{SSID: n.SSID, NetID: n.ID})
	}

	return identities, nil
}

// EnableNetwork enables netID. With disableOthers every other
// configured network is disabled first, so wpa_supplicant has
// exactly one candidate to associate with. An unknown netID is
// rejected before anything is touched.
func (t WifiManagerLinux) EnableNetwork(netID int, disableOthers bool) (bool, error) {
	log := t.log.WithField("netId", netID)

	if disableOthers {
		networks, err := t.wpa.ListNetworks()
		if err != nil {
			return false, err
		}

		known := false
		for _, n := range networks {
			if n.ID == netID {
				known = true
				break
			}
		}
		if !known {
			log.Warn("Refusing to enable unknown network")
			return false, nil
		}

		var result *multierror.Error
		for _, n := range networks {
			if n.ID == netID {
				continue
			}
			ok, err := t.wpa.DisableNetwork(n.ID)
			if err != nil {
				result = multierror.Append(result, err)
			} else if !ok {
				result = multierror.Append(result, fmt.Errorf("disable_network %d rejected", n.ID))
			}
		}
		if err := result.ErrorOrNil(); err != nil {
			log.WithError(err).Warn("Failed to disable other networks")
			return false, err
		}
	}

	ok, err := t.wpa.EnableNetwork(netID)
	if err != nil {
		return false, err
	}

	log.WithField("accepted", ok).Debug("enable_network")
	return ok, nil
}

func (t WifiManagerLinux) RemoveNetwork(netID int) (bool, error) {
	ok, err := t.wpa.RemoveNetwork(netID)
	if err != nil || !ok {
		return ok, err
	}

	// Without this the network comes back when wpa_supplicant restarts.
	if saved, err := t.wpa.SaveConfig(); err != nil || !saved {
		t.log.WithError(err).WithField("netId", netID).Warn("Removed network but could not save wpa_supplicant config")
	}

	return true, nil
}

// the subset of *wifi.Client we use
type nl80211Client interface {
	Interfaces() ([]*wifi.Interface, error)
	BSS(ifi *wifi.Interface) (*wifi.BSS, error)
	Close() error
}

type ConnectivityManagerLinux struct {
	// Restricts lookups to one interface, empty means any station.
	Interface string
	newClient func() (nl80211Client, error)
	log       logrus.FieldLogger
}

func (t ConnectivityManagerLinux) ActiveNetwork() (wifihelper.ActiveNetwork, bool, error) {
	wifiClient, err := t.newClient()
	if err != nil {
		return wifihelper.ActiveNetwork{}, false, fmt.Errorf("could not init a wifi interface client: %w", err)
	}
	defer wifiClient.Close()

	wifiInterfaces, err := wifiClient.Interfaces()
	if err != nil {
		return wifihelper.ActiveNetwork{}, false, fmt.Errorf("could not list wifi interfaces: %w", err)
	}

	for _, ifi := range wifiInterfaces {
		if ifi.Name == "" || ifi.Type != wifi.InterfaceTypeStation {
			continue
		}
		if t.Interface != "" && ifi.Name != t.Interface {
			continue
		}

		bss, err := wifiClient.BSS(ifi)
		if err != nil {
			// Not associated with anything.
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return wifihelper.ActiveNetwork{}, false, err
		}

		connected := bss.Status == wifi.BSSStatusAssociated || bss.Status == wifi.BSSStatusIBSSJoined
		t.log.WithFields(logrus.Fields{
			"iface":     ifi.Name,
			"bss":       bss.BSSID.String(),
			"connected": connected,
		}).Debug("active network")

		return wifihelper.ActiveNetwork{
			Interface: ifi.Name,
			Type:      "wifi",
			Connected: connected,
		}, true, nil
	}

	return wifihelper.ActiveNetwork{}, false, nil
}
