/*
WifiHelper internal architecture:

 WifiHelper owns no state. Every call is translated into one or more
 requests against the two host collaborators handed to NewWifiHelper,
 and the answer is read fresh each time.

                      ┌──────────────┐
 CLI (wifi)  ───┐     │ WifiHelper{} │      ┌──► ConnectivityProvider
                ├───► │              │ ─────┤     (is there an active,
 REST / WS  ────┘     │  normalises  │      │      connected network?)
 (wifid)              │  SSIDs, maps │      │
                      │  errors      │      └──► WifiProvider
                      └──────────────┘            (radio, scan, configured
                                                   networks, enable/remove)

 Requests against the host are fire-and-forget: an accepted
 SetConnectionEnabled(true) does not mean the radio is up yet.
 Callers that care must poll ConnectionEnabled.
*/

package wifihelper

import (
	"github.com/sirupsen/logrus"
)

const (
	opConnectionEnabled    Op = "ConnectionEnabled"
	opSetConnectionEnabled Op = "SetConnectionEnabled"
	opConnectedNetworkName Op = "ConnectedNetworkName"
	opListAvailable        Op = "ListAvailableNetworks"
	opListConfigured       Op = "ListConfiguredNetworks"
	opRankBySignal         Op = "RankBySignal"
	opConnectToNetwork     Op = "ConnectToNetwork"
	opDisconnect           Op = "DisconnectFromNetwork"
)

var _ WifiAPI = &WifiHelper{}

type WifiHelper struct {
	cm  ConnectivityProvider
	wm  WifiProvider
	log logrus.FieldLogger
}

type HelperOption func(*WifiHelper)

func WithLogger(l logrus.FieldLogger) HelperOption {
	return func(h *WifiHelper) {
		h.log = l
	}
}

func NewWifiHelper(cm ConnectivityProvider, wm WifiProvider, opts ...HelperOption) *WifiHelper {
	h := &WifiHelper{
		cm:  cm,
		wm:  wm,
		log: logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (t *WifiHelper) fail(op Op, err error) error {
	if err != nil {
		t.log.WithField("op", op).WithError(err).Debug("platform call failed")
	} else {
		t.log.WithField("op", op).Debug("platform rejected request")
	}
	return platformError(op, err)
}

// ConnectionEnabled reports whether the WiFi radio is on.
func (t *WifiHelper) ConnectionEnabled() (bool, error) {
	enabled, err := t.wm.IsWifiEnabled()
	if err != nil {
		return false, t.fail(opConnectionEnabled, err)
	}
	return enabled, nil
}

// SetConnectionEnabled asks the host to switch the radio on or off.
// A nil error means the request was accepted, not that it has
// taken effect.
func (t *WifiHelper) SetConnectionEnabled(enabled bool) error {
	accepted, err := t.wm.SetWifiEnabled(enabled)
	if err != nil || !accepted {
		return t.fail(opSetConnectionEnabled, err)
	}
	t.log.WithField("enabled", enabled).Debug("radio state change requested")
	return nil
}

// ConnectedNetworkName returns the SSID we are connected to. ok is
// false unless the host reports an active network record that is
// also connected.
func (t *WifiHelper) ConnectedNetworkName() (string, bool, error) {
	active, ok, err := t.cm.ActiveNetwork()
	if err != nil {
		return "", false, t.fail(opConnectedNetworkName, err)
	}
	if !ok || !active.Connected {
		return "", false, nil
	}

	rec, ok, err := t.wm.ConnectionInfo()
	if err != nil {
		return "", false, t.fail(opConnectedNetworkName, err)
	}
	if !ok {
		return "", false, nil
	}

	return UnquoteSSID(rec.SSID), true, nil
}

func (t *WifiHelper) IsConnectedTo(ssid string) (bool, error) {
	name, ok, err := t.ConnectedNetworkName()
	if err != nil || !ok {
		return false, err
	}
	return SSIDEqual(name, ssid), nil
}

// ListAvailableNetworks returns SSIDs from the latest scan, in scan order.
func (t *WifiHelper) ListAvailableNetworks() ([]string, error) {
	results, err := t.wm.ScanResults()
	if err != nil {
		return nil, t.fail(opListAvailable, err)
	}

	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, UnquoteSSID(r.SSID))
	}
	return names, nil
}

// ConfiguredNetworks returns the host's stored networks with their
// identifiers, in store order.
func (t *WifiHelper) ConfiguredNetworks() ([]NetworkIdentity, error) {
	configured, err := t.wm.ConfiguredNetworks()
	if err != nil {
		return nil, t.fail(opListConfigured, err)
	}

	out := make([]NetworkIdentity, 0, len(configured))
	for _, n := range configured {
		out = append(out, NetworkIdentity{SSID: UnquoteSSID(n.SSID), NetID: n.NetID})
	}
	return out, nil
}

func (t *WifiHelper) ListConfiguredNetworks() ([]string, error) {
	configured, err := t.ConfiguredNetworks()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(configured))
	for _, n := range configured {
		names = append(names, n.SSID)
	}
	return names, nil
}

// ListNetworks is available networks followed by configured ones.
// A network that is both visible and configured appears twice.
func (t *WifiHelper) ListNetworks() ([]string, error) {
	available, err := t.ListAvailableNetworks()
	if err != nil {
		return nil, err
	}

	configured, err := t.ListConfiguredNetworks()
	if err != nil {
		return nil, err
	}

	return append(available, configured...), nil
}

// RankBySignal sorts records strongest first. With nil records it
// ranks a fresh scan instead. The caller's slice is not modified.
func (t *WifiHelper) RankBySignal(records []SignalRecord) ([]SignalRecord, error) {
	if records == nil {
		results, err := t.wm.ScanResults()
		if err != nil {
			return nil, t.fail(opRankBySignal, err)
		}
		records = results
	}
	return SortBySignal(records), nil
}

type ConnectOptions struct {
	DisableOthers bool
}

type ConnectOption func(*ConnectOptions)

// KeepOthers leaves every other configured network enabled.
func KeepOthers() ConnectOption {
	return func(o *ConnectOptions) {
		o.DisableOthers = false
	}
}

// NewConnectOptions resolves opts against the defaults, which
// disable every other configured network.
func NewConnectOptions(opts ...ConnectOption) ConnectOptions {
	o := ConnectOptions{DisableOthers: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ConnectToNetwork asks the host to activate a configured network.
// Unless KeepOthers is passed, all other configured networks are
// disabled so only one stays active.
func (t *WifiHelper) ConnectToNetwork(netID int, opts ...ConnectOption) error {
	o := NewConnectOptions(opts...)

	accepted, err := t.wm.EnableNetwork(netID, o.DisableOthers)
	if err != nil || !accepted {
		return t.fail(opConnectToNetwork, err)
	}

	t.log.WithFields(logrus.Fields{
		"netId":         netID,
		"disableOthers": o.DisableOthers,
	}).Info("network activation requested")
	return nil
}

// DisconnectFromNetwork removes whichever network the current
// connection record points at.
func (t *WifiHelper) DisconnectFromNetwork() error {
	rec, ok, err := t.wm.ConnectionInfo()
	if err != nil {
		return t.fail(opDisconnect, err)
	}
	if !ok || rec.NetID < 0 {
		return ErrNoActiveConnection
	}

	accepted, err := t.wm.RemoveNetwork(rec.NetID)
	if err != nil || !accepted {
		return t.fail(opDisconnect, err)
	}

	t.log.WithField("netId", rec.NetID).Info("network removed")
	return nil
}

// Status gathers radio and connection state in one go.
func (t *WifiHelper) Status() (Status, error) {
	enabled, err := t.ConnectionEnabled()
	if err != nil {
		return Status{}, err
	}

	name, connected, err := t.ConnectedNetworkName()
	if err != nil {
		return Status{}, err
	}

	return Status{Enabled: enabled, Connected: connected, SSID: name}, nil
}
