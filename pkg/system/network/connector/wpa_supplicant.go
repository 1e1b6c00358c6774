package network_connector

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dogeorg/wifihelper/pkg/utils"
)

// A network block from wpa_supplicant's configuration.
type ConfiguredNetwork struct {
	ID    int
	SSID  string
	BSSID string
	Flags []string
}

func (n ConfiguredNetwork) HasFlag(flag string) bool {
	for _, f := range n.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Talks to a running wpa_supplicant through wpa_cli. Every
// command is a one-shot invocation, wpa_cli replies OK/FAIL
// for mutations and tab/key=value text for queries.
type WPASupplicant struct {
	Interface string
	CtrlDir   string
	runner    utils.CommandRunner
}

func NewWPASupplicant(iface string, ctrlDir string, runner utils.CommandRunner) *WPASupplicant {
	if runner == nil {
		runner = utils.ExecRunner{}
	}
	return &WPASupplicant{
		Interface: iface,
		CtrlDir:   ctrlDir,
		runner:    runner,
	}
}

func (t *WPASupplicant) cli(args ...string) (string, error) {
	full := []string{}
	if t.CtrlDir != "" {
		full = append(full, "-p", t.CtrlDir)
	}
	full = append(full, "-i", t.Interface)
	full = append(full, args...)

	out, err := t.runner.Run("wpa_cli", full...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// mutate runs a command that answers OK or FAIL.
func (t *WPASupplicant) mutate(args ...string) (bool, error) {
	out, err := t.cli(args...)
	if err != nil {
		return false, err
	}

	switch reply := strings.TrimSpace(out); reply {
	case "OK":
		return true, nil
	case "FAIL":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected wpa_cli reply to %s: %q", args[0], reply)
	}
}

// Status returns the key=value pairs of `wpa_cli status`.
func (t *WPASupplicant) Status() (map[string]string, error) {
	out, err := t.cli("status")
	if err != nil {
		return nil, err
	}
	return parseStatus(out), nil
}

func (t *WPASupplicant) ListNetworks() ([]ConfiguredNetwork, error) {
	out, err := t.cli("list_networks")
	if err != nil {
		return nil, err
	}
	return parseListNetworks(out)
}

func (t *WPASupplicant) EnableNetwork(id int) (bool, error) {
	return t.mutate("enable_network", strconv.Itoa(id))
}

func (t *WPASupplicant) DisableNetwork(id int) (bool, error) {
	return t.mutate("disable_network", strconv.Itoa(id))
}

func (t *WPASupplicant) RemoveNetwork(id int) (bool, error) {
	return t.mutate("remove_network", strconv.Itoa(id))
}

func (t *WPASupplicant) SaveConfig() (bool, error) {
	return t.mutate("save_config")
}

func parseStatus(output string) map[string]string {
	status := map[string]string{}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		status[key] = value
	}

	return status
}

// list_networks prints a header line and then one network per line:
//
//	network id / ssid / bssid / flags
//	0	home	any	[CURRENT]
func parseListNetworks(output string) ([]ConfiguredNetwork, error) {
	networks := []ConfiguredNetwork{}

	scanner := bufio.NewScanner(bytes.NewBufferString(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" ||
			strings.HasPrefix(line, "network id") ||
			strings.HasPrefix(line, "Selected interface") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed list_networks line: %q", line)
		}

		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("malformed network id in %q: %w", line, err)
		}

		n := ConfiguredNetwork{ID: id, SSID: fields[1]}
		if len(fields) > 2 {
			n.BSSID = fields[2]
		}
		if len(fields) > 3 {
			n.Flags = parseFlags(fields[3])
		}

		networks = append(networks, n)
	}

	return networks, scanner.Err()
}

// "[CURRENT][DISABLED]" -> ["CURRENT", "DISABLED"]
func parseFlags(s string) []string {
	flags := []string{}
	for _, f := range strings.Split(s, "]") {
		f = strings.TrimPrefix(strings.TrimSpace(f), "[")
		if f != "" {
			flags = append(flags, f)
		}
	}
	return flags
}
