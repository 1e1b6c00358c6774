package wifihelper

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnectivity struct {
	active ActiveNetwork
	ok     bool
	err    error
}

func (f *fakeConnectivity) ActiveNetwork() (ActiveNetwork, bool, error) {
	return f.active, f.ok, f.err
}

type enableCall struct {
	netID         int
	disableOthers bool
}

type fakeWifi struct {
	enabled    bool
	enabledErr error
	setResult  bool
	setCalls   []bool

	conn    ConnectionRecord
	connOK  bool
	connErr error

	scan       []SignalRecord
	scanErr    error
	configured []NetworkIdentity
	confErr    error

	enableResult bool
	enableErr    error
	enableCalls  []enableCall

	removeResult bool
	removeCalls  []int
}

func (f *fakeWifi) IsWifiEnabled() (bool, error) { return f.enabled, f.enabledErr }

func (f *fakeWifi) SetWifiEnabled(enabled bool) (bool, error) {
	f.setCalls = append(f.setCalls, enabled)
	return f.setResult, nil
}

func (f *fakeWifi) ConnectionInfo() (ConnectionRecord, bool, error) {
	return f.conn, f.connOK, f.connErr
}

func (f *fakeWifi) ScanResults() ([]SignalRecord, error) { return f.scan, f.scanErr }

func (f *fakeWifi) ConfiguredNetworks() ([]NetworkIdentity, error) {
	return f.configured, f.confErr
}

func (f *fakeWifi) EnableNetwork(netID int, disableOthers bool) (bool, error) {
	f.enableCalls = append(f.enableCalls, enableCall{netID, disableOthers})
	return f.enableResult, f.enableErr
}

func (f *fakeWifi) RemoveNetwork(netID int) (bool, error) {
	f.removeCalls = append(f.removeCalls, netID)
	return f.removeResult, nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newHelper(cm *fakeConnectivity, wm *fakeWifi) *WifiHelper {
	return NewWifiHelper(cm, wm, WithLogger(quietLogger()))
}

func connectedTo(ssid string) (*fakeConnectivity, *fakeWifi) {
	cm := &fakeConnectivity{active: ActiveNetwork{Interface: "wlan0", Type: "wifi", Connected: true}, ok: true}
	wm := &fakeWifi{conn: ConnectionRecord{SSID: ssid, NetID: 3}, connOK: true}
	return cm, wm
}

func TestConnectedNetworkName(t *testing.T) {
	tests := []struct {
		name     string
		cm       *fakeConnectivity
		wm       *fakeWifi
		wantName string
		wantOK   bool
	}{
		{
			name: "no active network record",
			cm:   &fakeConnectivity{},
			wm:   &fakeWifi{conn: ConnectionRecord{SSID: "home"}, connOK: true},
		},
		{
			name: "active but not connected",
			cm:   &fakeConnectivity{active: ActiveNetwork{Connected: false}, ok: true},
			wm:   &fakeWifi{conn: ConnectionRecord{SSID: "home"}, connOK: true},
		},
		{
			name:     "connected",
			cm:       &fakeConnectivity{active: ActiveNetwork{Connected: true}, ok: true},
			wm:       &fakeWifi{conn: ConnectionRecord{SSID: "home"}, connOK: true},
			wantName: "home",
			wantOK:   true,
		},
		{
			name:     "connected with quoted ssid",
			cm:       &fakeConnectivity{active: ActiveNetwork{Connected: true}, ok: true},
			wm:       &fakeWifi{conn: ConnectionRecord{SSID: `"home"`}, connOK: true},
			wantName: "home",
			wantOK:   true,
		},
		{
			name: "connected but no wifi record",
			cm:   &fakeConnectivity{active: ActiveNetwork{Connected: true}, ok: true},
			wm:   &fakeWifi{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok, err := newHelper(tt.cm, tt.wm).ConnectedNetworkName()
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestConnectedNetworkNamePlatformError(t *testing.T) {
	cm := &fakeConnectivity{err: errors.New("netlink: no such device")}
	_, _, err := newHelper(cm, &fakeWifi{}).ConnectedNetworkName()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlatformOperationFailed)

	var pe *PlatformError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, opConnectedNetworkName, pe.Op)
}

func TestIsConnectedTo(t *testing.T) {
	for _, stored := range []string{"cafe", `"cafe"`} {
		cm, wm := connectedTo(stored)
		h := newHelper(cm, wm)

		for _, target := range []string{"cafe", `"cafe"`} {
			ok, err := h.IsConnectedTo(target)
			require.NoError(t, err)
			assert.True(t, ok, "stored %s target %s", stored, target)
		}

		ok, err := h.IsConnectedTo("office")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	ok, err := newHelper(&fakeConnectivity{}, &fakeWifi{}).IsConnectedTo("cafe")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListNetworks(t *testing.T) {
	wm := &fakeWifi{
		scan: []SignalRecord{{SSID: "cafe"}, {SSID: "home"}, {SSID: "cafe"}},
		configured: []NetworkIdentity{
			{SSID: `"home"`, NetID: 0},
			{SSID: `"office"`, NetID: 1},
		},
	}
	h := newHelper(&fakeConnectivity{}, wm)

	available, err := h.ListAvailableNetworks()
	require.NoError(t, err)
	assert.Equal(t, []string{"cafe", "home", "cafe"}, available)

	configured, err := h.ListConfiguredNetworks()
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "office"}, configured)

	all, err := h.ListNetworks()
	require.NoError(t, err)
	assert.Equal(t, append(append([]string{}, available...), configured...), all)
	assert.Equal(t, []string{"cafe", "home", "cafe", "home", "office"}, all)
}

func TestListNetworksPropagatesScanFailure(t *testing.T) {
	wm := &fakeWifi{scanErr: errors.New("iwlist: device busy")}
	_, err := newHelper(&fakeConnectivity{}, wm).ListNetworks()
	assert.ErrorIs(t, err, ErrPlatformOperationFailed)
}

func TestRankBySignal(t *testing.T) {
	input := []SignalRecord{
		{SSID: "far", Level: -80},
		{SSID: "a", Level: -40},
		{SSID: "b", Level: -40},
		{SSID: "farthest", Level: -90},
	}
	h := newHelper(&fakeConnectivity{}, &fakeWifi{})

	ranked, err := h.RankBySignal(input)
	require.NoError(t, err)

	var order []string
	var levels []int
	for _, r := range ranked {
		order = append(order, r.SSID)
		levels = append(levels, r.Level)
	}
	assert.Equal(t, []string{"a", "b", "far", "farthest"}, order)
	assert.Equal(t, []int{-40, -40, -80, -90}, levels)

	// input untouched
	assert.Equal(t, "far", input[0].SSID)
}

func TestRankBySignalScansWhenNil(t *testing.T) {
	wm := &fakeWifi{scan: []SignalRecord{{SSID: "weak", Level: -85}, {SSID: "strong", Level: -30}}}
	ranked, err := newHelper(&fakeConnectivity{}, wm).RankBySignal(nil)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "strong", ranked[0].SSID)

	ranked, err = newHelper(&fakeConnectivity{}, wm).RankBySignal([]SignalRecord{})
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestSetConnectionEnabled(t *testing.T) {
	wm := &fakeWifi{setResult: true}
	h := newHelper(&fakeConnectivity{}, wm)

	require.NoError(t, h.SetConnectionEnabled(true))
	assert.Equal(t, []bool{true}, wm.setCalls)

	wm.setResult = false
	err := h.SetConnectionEnabled(false)
	assert.ErrorIs(t, err, ErrPlatformOperationFailed)
}

func TestConnectionEnabled(t *testing.T) {
	enabled, err := newHelper(&fakeConnectivity{}, &fakeWifi{enabled: true}).ConnectionEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)

	_, err = newHelper(&fakeConnectivity{}, &fakeWifi{enabledErr: errors.New("no link")}).ConnectionEnabled()
	assert.ErrorIs(t, err, ErrPlatformOperationFailed)
}

func TestConnectToNetwork(t *testing.T) {
	wm := &fakeWifi{enableResult: true}
	h := newHelper(&fakeConnectivity{}, wm)

	require.NoError(t, h.ConnectToNetwork(2))
	require.NoError(t, h.ConnectToNetwork(4, KeepOthers()))
	assert.Equal(t, []enableCall{{2, true}, {4, false}}, wm.enableCalls)

	wm.enableResult = false
	assert.ErrorIs(t, h.ConnectToNetwork(9), ErrPlatformOperationFailed)
}

func TestDisconnectFromNetwork(t *testing.T) {
	t.Run("no connection record", func(t *testing.T) {
		wm := &fakeWifi{removeResult: true}
		err := newHelper(&fakeConnectivity{}, wm).DisconnectFromNetwork()
		assert.ErrorIs(t, err, ErrNoActiveConnection)
		assert.Empty(t, wm.removeCalls)
	})

	t.Run("negative netId", func(t *testing.T) {
		wm := &fakeWifi{conn: ConnectionRecord{NetID: -1}, connOK: true, removeResult: true}
		err := newHelper(&fakeConnectivity{}, wm).DisconnectFromNetwork()
		assert.ErrorIs(t, err, ErrNoActiveConnection)
	})

	t.Run("removes current network", func(t *testing.T) {
		cm, wm := connectedTo("home")
		wm.removeResult = true
		require.NoError(t, newHelper(cm, wm).DisconnectFromNetwork())
		assert.Equal(t, []int{3}, wm.removeCalls)
	})

	t.Run("host refuses", func(t *testing.T) {
		cm, wm := connectedTo("home")
		err := newHelper(cm, wm).DisconnectFromNetwork()
		assert.ErrorIs(t, err, ErrPlatformOperationFailed)
		assert.NotErrorIs(t, err, ErrNoActiveConnection)
	})
}

func TestStatus(t *testing.T) {
	cm, wm := connectedTo(`"home"`)
	wm.enabled = true

	s, err := newHelper(cm, wm).Status()
	require.NoError(t, err)
	assert.Equal(t, Status{Enabled: true, Connected: true, SSID: "home"}, s)
}
