package wifihelper

import "time"

type ServerConfig struct {
	Bind         string
	Port         int
	Interface    string
	WpaCtrlDir   string
	PollInterval time.Duration
	Sim          bool
	Verbose      bool
}

const (
	DefaultInterface    = "wlan0"
	DefaultWpaCtrlDir   = "/var/run/wpa_supplicant"
	DefaultPollInterval = 5 * time.Second
)
