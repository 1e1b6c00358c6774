package network_sim

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func helperFor(h *Host) *wifihelper.WifiHelper {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return wifihelper.NewWifiHelper(h, h, wifihelper.WithLogger(l))
}

func TestRadioSettles(t *testing.T) {
	c := &clock{t: time.Unix(1700000000, 0)}
	host := NewHost(WithSettleTime(3*time.Second), WithClock(c.now))
	w := helperFor(host)

	require.NoError(t, w.SetConnectionEnabled(true))

	// accepted is not the same as done
	enabled, err := w.ConnectionEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)

	c.advance(3 * time.Second)
	enabled, err = w.ConnectionEnabled()
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestConnectDisablesOthers(t *testing.T) {
	host := NewHost(WithRadio(true), WithNetwork("a"), WithNetwork("b"), WithNetwork("c"))
	w := helperFor(host)

	assert.Equal(t, []int{0, 1, 2}, host.EnabledNetworks())

	require.NoError(t, w.ConnectToNetwork(1))
	assert.Equal(t, []int{1}, host.EnabledNetworks())

	ok, err := w.IsConnectedTo("b")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, w.ConnectToNetwork(2, wifihelper.KeepOthers()))
	assert.Equal(t, []int{1, 2}, host.EnabledNetworks())

	assert.ErrorIs(t, w.ConnectToNetwork(42), wifihelper.ErrPlatformOperationFailed)
}

func TestDisconnect(t *testing.T) {
	host := NewHost(WithRadio(true), WithNetwork("home"), WithConnection(0))
	w := helperFor(host)

	name, ok, err := w.ConnectedNetworkName()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "home", name)

	require.NoError(t, w.DisconnectFromNetwork())

	_, ok, err = w.ConnectedNetworkName()
	require.NoError(t, err)
	assert.False(t, ok)

	configured, err := w.ListConfiguredNetworks()
	require.NoError(t, err)
	assert.Empty(t, configured)

	assert.ErrorIs(t, w.DisconnectFromNetwork(), wifihelper.ErrNoActiveConnection)
}

func TestRadioOffDropsConnection(t *testing.T) {
	host := NewHost(WithRadio(true), WithNetwork("home"), WithConnection(0))
	w := helperFor(host)

	require.NoError(t, w.SetConnectionEnabled(false))

	_, ok, err := w.ConnectedNetworkName()
	require.NoError(t, err)
	assert.False(t, ok)

	available, err := w.ListAvailableNetworks()
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestDemoHost(t *testing.T) {
	w := helperFor(NewDemoHost())

	all, err := w.ListNetworks()
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "neighbour", "office", "cafe", "home", "office", "phone hotspot"}, all)

	ranked, err := w.RankBySignal(nil)
	require.NoError(t, err)
	var names []string
	for _, r := range ranked {
		names = append(names, r.SSID)
	}
	assert.Equal(t, []string{"home", "cafe", "neighbour", "office"}, names)
}

func TestConfiguredSSIDWithQuotes(t *testing.T) {
	host := NewHost(WithRadio(true), WithNetwork(`say "hi"`), WithNetwork(`back\slash`), WithConnection(0))
	w := helperFor(host)

	configured, err := w.ListConfiguredNetworks()
	require.NoError(t, err)
	assert.Equal(t, []string{`say "hi"`, `back\slash`}, configured)

	ok, err := w.IsConnectedTo(`say "hi"`)
	require.NoError(t, err)
	assert.True(t, ok)
}
