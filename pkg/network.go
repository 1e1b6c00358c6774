package wifihelper

import "math"

// see ./system/network/ for implementations

// Reports the host's active network, if any. An active
// network record is not necessarily a connected one:
// callers must check Connected as well.
type ConnectivityProvider interface {
	ActiveNetwork() (ActiveNetwork, bool, error)
}

// Controls the host WiFi stack. Boolean results carry the
// platform's "request accepted" flag, errors carry failures
// talking to the platform at all.
type WifiProvider interface {
	IsWifiEnabled() (bool, error)
	SetWifiEnabled(enabled bool) (bool, error)
	ConnectionInfo() (ConnectionRecord, bool, error)
	ScanResults() ([]SignalRecord, error)
	ConfiguredNetworks() ([]NetworkIdentity, error)
	EnableNetwork(netID int, disableOthers bool) (bool, error)
	RemoveNetwork(netID int) (bool, error)
}

// A network the host has stored settings for.
type NetworkIdentity struct {
	SSID  string `json:"ssid"`
	NetID int    `json:"netId"`
}

// LevelUnknown is the Level of a scan entry whose driver reported
// no signal strength. It ranks below every real reading.
const LevelUnknown = math.MinInt32

// One entry from the latest scan.
type SignalRecord struct {
	SSID         string `json:"ssid"`
	BSSID        string `json:"bssid"`
	Level        int    `json:"level"`     // dBm
	Frequency    int    `json:"frequency"` // MHz
	Capabilities string `json:"capabilities"`
}

// The WiFi provider's view of the current association.
type ConnectionRecord struct {
	SSID      string
	BSSID     string
	NetID     int
	Frequency int
	State     string
}

// The connectivity provider's view of the default network.
type ActiveNetwork struct {
	Interface string
	Type      string
	Connected bool
}

// A point in time snapshot, as served to REST and websocket clients.
type Status struct {
	Enabled   bool   `json:"enabled"`
	Connected bool   `json:"connected"`
	SSID      string `json:"ssid,omitempty"`
}

// Everything a front end (CLI, REST) needs. Implemented by
// WifiHelper locally and by pkg/client against a remote wifid.
type WifiAPI interface {
	Status() (Status, error)
	ConnectionEnabled() (bool, error)
	SetConnectionEnabled(enabled bool) error
	ConnectedNetworkName() (string, bool, error)
	IsConnectedTo(ssid string) (bool, error)
	ListAvailableNetworks() ([]string, error)
	ConfiguredNetworks() ([]NetworkIdentity, error)
	ListConfiguredNetworks() ([]string, error)
	ListNetworks() ([]string, error)
	RankBySignal(records []SignalRecord) ([]SignalRecord, error)
	ConnectToNetwork(netID int, opts ...ConnectOption) error
	DisconnectFromNetwork() error
}
