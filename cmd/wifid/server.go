package main

import (
	"context"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/sirupsen/logrus"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
	"github.com/dogeorg/wifihelper/pkg/conductor"
	"github.com/dogeorg/wifihelper/pkg/system/network"
	network_sim "github.com/dogeorg/wifihelper/pkg/system/network/sim"
	"github.com/dogeorg/wifihelper/pkg/version"
	"github.com/dogeorg/wifihelper/pkg/web"
)

type server struct {
	config wifihelper.ServerConfig
	log    *logrus.Logger
}

func Server(config wifihelper.ServerConfig) server {
	log := logrus.StandardLogger()
	if config.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return server{config, log}
}

// Start blocks until every service has stopped. It reports false if
// startup failed.
func (t server) Start() bool {
	v := version.GetRelease()
	t.log.WithFields(logrus.Fields{
		"release": v.Release,
		"commit":  v.Git.Commit,
	}).Info("Starting wifid")

	/* ----------------------------------------------------------------------- */
	// Set up our system interfaces so we can talk to the host OS

	var cm wifihelper.ConnectivityProvider
	var wm wifihelper.WifiProvider

	if t.config.Sim {
		t.log.Warn("Serving a simulated WiFi host, no real hardware will be touched")
		host := network_sim.NewDemoHost()
		cm, wm = host, host
	} else {
		cm = network.NewConnectivityManager(t.config, t.log)
		wm = network.NewWifiManager(t.config, t.log)
	}

	helper := wifihelper.NewWifiHelper(cm, wm, wifihelper.WithLogger(t.log))

	/* ----------------------------------------------------------------------- */
	// Setup our external APIs. REST, Websockets

	rest := web.RESTAPI(t.config, helper, t.log)

	/* ----------------------------------------------------------------------- */
	// Create a conductor to manage all the above services startup/shutdown

	var c *conductor.Conductor

	if t.config.Verbose {
		c = conductor.NewConductor(
			conductor.HookSignals(),
			conductor.Noisy(),
		)
	} else {
		c = conductor.NewConductor(
			conductor.HookSignals(),
		)
	}
	c.Service("REST API", rest)

	// Added last, so it only runs once everything else is up.
	n := &notifier{log: t.log}
	c.Service("Systemd Notifier", n)

	<-c.Start()
	return n.ran
}

// notifier tells systemd we're ready once every service before it
// has started, and that we're stopping on the way down. Outside of
// systemd both notifications are no-ops.
type notifier struct {
	log logrus.FieldLogger
	ran bool
}

func (t *notifier) Run(started, stopped chan bool, stop chan context.Context) error {
	t.ran = true
	go func() {
		if ok, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
			t.log.WithError(err).Warn("Failed to notify systemd")
		} else if ok {
			t.log.Debug("Notified systemd we are ready")
		}
		started <- true

		<-stop
		daemon.SdNotify(false, daemon.SdNotifyStopping)
		stopped <- true
	}()
	return nil
}
