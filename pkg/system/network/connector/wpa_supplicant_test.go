package network_connector

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRunner struct {
	replies map[string]string
	errs    map[string]error
	calls   []string
}

func (r *scriptedRunner) Run(name string, args ...string) ([]byte, error) {
	call := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, call)
	for suffix, err := range r.errs {
		if strings.HasSuffix(call, suffix) {
			return nil, err
		}
	}
	for suffix, reply := range r.replies {
		if strings.HasSuffix(call, suffix) {
			return []byte(reply), nil
		}
	}
	return []byte("FAIL\n"), nil
}

const listNetworksOutput = "network id / ssid / bssid / flags\n" +
	"0\thome\tany\t[CURRENT]\n" +
	"1\toffice\tany\t[DISABLED]\n" +
	"2\tcafe guest\t00:11:22:33:44:55\t\n"

const statusOutput = `bssid=00:11:22:33:44:55
freq=2437
ssid=home
id=0
mode=station
pairwise_cipher=CCMP
key_mgmt=WPA2-PSK
wpa_state=COMPLETED
ip_address=192.168.1.20
`

func TestParseListNetworks(t *testing.T) {
	networks, err := parseListNetworks(listNetworksOutput)
	require.NoError(t, err)
	require.Len(t, networks, 3)

	assert.Equal(t, ConfiguredNetwork{ID: 0, SSID: "home", BSSID: "any", Flags: []string{"CURRENT"}}, networks[0])
	assert.True(t, networks[1].HasFlag("DISABLED"))
	assert.Equal(t, "cafe guest", networks[2].SSID)
	assert.Empty(t, networks[2].Flags)
}

func TestParseListNetworksMalformed(t *testing.T) {
	_, err := parseListNetworks("network id / ssid / bssid / flags\nx\thome\tany\t\n")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	status := parseStatus(statusOutput)
	assert.Equal(t, "home", status["ssid"])
	assert.Equal(t, "0", status["id"])
	assert.Equal(t, "COMPLETED", status["wpa_state"])
	_, ok := status["bogus"]
	assert.False(t, ok)
}

func TestParseFlags(t *testing.T) {
	assert.Equal(t, []string{"CURRENT", "DISABLED"}, parseFlags("[CURRENT][DISABLED]"))
	assert.Empty(t, parseFlags(""))
}

func TestMutate(t *testing.T) {
	r := &scriptedRunner{replies: map[string]string{
		"enable_network 1": "OK\n",
		"remove_network 7": "FAIL\n",
		"save_config":      "something odd\n",
	}}
	w := NewWPASupplicant("wlan0", "/var/run/wpa_supplicant", r)

	ok, err := w.EnableNetwork(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "wpa_cli -p /var/run/wpa_supplicant -i wlan0 enable_network 1", r.calls[0])

	ok, err = w.RemoveNetwork(7)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = w.SaveConfig()
	assert.Error(t, err)
}

func TestCliError(t *testing.T) {
	r := &scriptedRunner{errs: map[string]error{"status": errors.New("wpa_cli: exit status 255")}}
	_, err := NewWPASupplicant("wlan0", "", r).Status()
	assert.Error(t, err)
	assert.Equal(t, "wpa_cli -i wlan0 status", r.calls[0])
}
