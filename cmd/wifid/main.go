package main

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
)

func main() {
	// Optional, a missing .env just means flags and the real env only.
	_ = godotenv.Load()

	var port int
	var bind string
	var iface string
	var wpaCtrlDir string
	var poll time.Duration
	var sim bool
	var verbose bool
	var help bool

	flag.IntVar(&port, "port", envInt("WIFID_PORT", 8080), "REST API Port")
	flag.StringVar(&bind, "addr", envString("WIFID_ADDR", "127.0.0.1"), "Address to bind to")
	flag.StringVar(&iface, "iface", envString("WIFID_IFACE", wifihelper.DefaultInterface), "Wireless interface to manage")
	flag.StringVar(&wpaCtrlDir, "wpa-ctrl-dir", envString("WIFID_WPA_CTRL_DIR", wifihelper.DefaultWpaCtrlDir), "wpa_supplicant control socket directory")
	flag.DurationVar(&poll, "poll", envDuration("WIFID_POLL", wifihelper.DefaultPollInterval), "Status websocket poll interval")
	flag.BoolVar(&sim, "sim", envBool("WIFID_SIM", false), "Serve a simulated WiFi host")
	flag.BoolVar(&verbose, "v", false, "Be verbose")
	flag.BoolVar(&help, "h", false, "Get help")
	flag.Parse()

	if help {
		flag.Usage()
		os.Exit(0)
	}

	config := wifihelper.ServerConfig{
		Port:         port,
		Bind:         bind,
		Interface:    iface,
		WpaCtrlDir:   wpaCtrlDir,
		PollInterval: poll,
		Sim:          sim,
		Verbose:      verbose,
	}

	srv := Server(config)
	if !srv.Start() {
		os.Exit(1)
	}
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}
