package network_sim

import (
	"fmt"
	"sync"
	"time"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
)

var _ wifihelper.WifiProvider = &Host{}
var _ wifihelper.ConnectivityProvider = &Host{}

/* Host is an in-memory stand-in for a device's WiFi stack.
 *
 * It behaves the way a phone or wpa_supplicant does, closely
 * enough to drive the CLI and REST API without hardware:
 *
 *  - radio power changes settle after SettleTime, so reading
 *    the state straight after a change may return the old value
 *  - enabling a network while the radio is up connects to it
 *  - configured SSIDs are stored quoted, scan SSIDs bare
 */
type Host struct {
	mu sync.Mutex

	enabled    bool
	pending    *radioChange
	settleTime time.Duration
	now        func() time.Time

	networks []simNetwork
	nextID   int
	current  int
	scan     []wifihelper.SignalRecord
}

type radioChange struct {
	enabled bool
	at      time.Time
}

type simNetwork struct {
	ssid    string
	id      int
	enabled bool
}

type Option func(*Host)

func WithSettleTime(d time.Duration) Option {
	return func(h *Host) {
		h.settleTime = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(h *Host) {
		h.now = now
	}
}

func WithRadio(enabled bool) Option {
	return func(h *Host) {
		h.enabled = enabled
	}
}

// WithNetwork adds a configured network, ids are handed out in order from 0.
func WithNetwork(ssid string) Option {
	return func(h *Host) {
		h.networks = append(h.networks, simNetwork{ssid: `"` + ssid + `"`, id: h.nextID, enabled: true})
		h.nextID++
	}
}

func WithScanResult(ssid string, level int, frequency int) Option {
	return func(h *Host) {
		h.scan = append(h.scan, wifihelper.SignalRecord{
			SSID:      ssid,
			BSSID:     fmt.Sprintf("02:00:00:00:00:%02x", len(h.scan)),
			Level:     level,
			Frequency: frequency,
		})
	}
}

// WithConnection starts the host associated to netID.
func WithConnection(netID int) Option {
	return func(h *Host) {
		h.current = netID
	}
}

func NewHost(opts ...Option) *Host {
	h := &Host{
		current: -1,
		now:     time.Now,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// A small neighbourhood for demos and dev servers.
func NewDemoHost() *Host {
	return NewHost(
		WithRadio(true),
		WithSettleTime(2*time.Second),
		WithNetwork("home"),
		WithNetwork("office"),
		WithNetwork("phone hotspot"),
		WithConnection(0),
		WithScanResult("home", -48, 2437),
		WithScanResult("neighbour", -71, 2412),
		WithScanResult("office", -83, 5180),
		WithScanResult("cafe", -48, 2462),
	)
}

// settle applies a pending radio change once its time has come.
// Callers hold mu.
func (t *Host) settle() {
	if t.pending == nil || t.now().Before(t.pending.at) {
		return
	}
	t.enabled = t.pending.enabled
	t.pending = nil

	if !t.enabled {
		t.current = -1
	}
}

func (t *Host) find(netID int) int {
	for i, n := range t.networks {
		if n.id == netID {
			return i
		}
	}
	return -1
}

func (t *Host) ActiveNetwork() (wifihelper.ActiveNetwork, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settle()

	if !t.enabled || t.current < 0 {
		return wifihelper.ActiveNetwork{}, false, nil
	}
	return wifihelper.ActiveNetwork{Interface: "sim0", Type: "wifi", Connected: true}, true, nil
}

func (t *Host) IsWifiEnabled() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settle()

	return t.enabled, nil
}

func (t *Host) SetWifiEnabled(enabled bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending = &radioChange{enabled: enabled, at: t.now().Add(t.settleTime)}
	t.settle()
	return true, nil
}

func (t *Host) ConnectionInfo() (wifihelper.ConnectionRecord, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settle()

	i := t.find(t.current)
	if t.current < 0 || i < 0 {
		return wifihelper.ConnectionRecord{}, false, nil
	}

	return wifihelper.ConnectionRecord{
		SSID:  t.networks[i].ssid,
		NetID: t.current,
		State: "COMPLETED",
	}, true, nil
}

func (t *Host) ScanResults() ([]wifihelper.SignalRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settle()

	if !t.enabled {
		return []wifihelper.SignalRecord{}, nil
	}

	out := make([]wifihelper.SignalRecord, len(t.scan))
	copy(out, t.scan)
	return out, nil
}

func (t *Host) ConfiguredNetworks() ([]wifihelper.NetworkIdentity, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]wifihelper.NetworkIdentity, 0, len(t.networks))
	for _, n := range t.networks {
		out = append(out, wifihelper.NetworkIdentity{SSID: n.ssid, NetID: n.id})
	}
	return out, nil
}

func (t *Host) EnableNetwork(netID int, disableOthers bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settle()

	i := t.find(netID)
	if i < 0 {
		return false, nil
	}

	if disableOthers {
		for j := range t.networks {
			t.networks[j].enabled = false
		}
	}
	t.networks[i].enabled = true

	if t.enabled {
		t.current = netID
	}
	return true, nil
}

func (t *Host) RemoveNetwork(netID int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.find(netID)
	if i < 0 {
		return false, nil
	}

	t.networks = append(t.networks[:i], t.networks[i+1:]...)
	if t.current == netID {
		t.current = -1
	}
	return true, nil
}

// EnabledNetworks lists the ids currently allowed to associate.
func (t *Host) EnabledNetworks() []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := []int{}
	for _, n := range t.networks {
		if n.enabled {
			ids = append(ids, n.id)
		}
	}
	return ids
}
