package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
	"github.com/dogeorg/wifihelper/pkg/conductor"
)

func RESTAPI(
	config wifihelper.ServerConfig,
	wifi wifihelper.WifiAPI,
	log logrus.FieldLogger,
) conductor.Service {
	return newAPI(config, wifi, log)
}

// NewHandler serves the API without a listener of its own, for
// embedding in another server.
func NewHandler(config wifihelper.ServerConfig, wifi wifihelper.WifiAPI, log logrus.FieldLogger) http.Handler {
	return newAPI(config, wifi, log).handler()
}

func newAPI(config wifihelper.ServerConfig, wifi wifihelper.WifiAPI, log logrus.FieldLogger) api {
	if config.PollInterval <= 0 {
		config.PollInterval = wifihelper.DefaultPollInterval
	}

	a := api{
		mux:    http.NewServeMux(),
		config: config,
		wifi:   wifi,
		log:    log,
	}

	routes := map[string]http.HandlerFunc{
		"GET /wifi/status":              a.getStatus,
		"GET /wifi/enabled":             a.getEnabled,
		"PUT /wifi/enabled":             a.setEnabled,
		"GET /wifi/connection":          a.getConnection,
		"GET /wifi/connected-to/{ssid}": a.getConnectedTo,
		"GET /wifi/networks":            a.getNetworks,
		"GET /wifi/networks/available":  a.getAvailableNetworks,
		"GET /wifi/networks/configured": a.getConfiguredNetworks,
		"GET /wifi/signal":              a.getSignal,
		"POST /wifi/connect":            a.connectNetwork,
		"POST /wifi/disconnect":         a.disconnectNetwork,
		"GET /version":                  a.getVersion,
		"/ws/status":                    a.getStatusSocket,
	}

	for p, h := range routes {
		a.mux.HandleFunc(p, h)
	}
	log.Debugf("Loaded %d API routes", len(routes))

	return a
}

type api struct {
	mux    *http.ServeMux
	config wifihelper.ServerConfig
	wifi   wifihelper.WifiAPI
	log    logrus.FieldLogger
}

func (t api) handler() http.Handler {
	return cors.AllowAll().Handler(t.mux)
}

func (t api) Run(started, stopped chan bool, stop chan context.Context) error {
	addr := fmt.Sprintf("%s:%d", t.config.Bind, t.config.Port)

	// Listen up front so a busy port fails startup rather than the process.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	go func() {
		srv := &http.Server{
			Handler:           t.handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := srv.Serve(ln); err != http.ErrServerClosed {
				t.log.WithError(err).Error("HTTP server stopped unexpectedly")
			}
		}()

		t.log.Infof("REST API listening on %s", addr)
		started <- true
		ctx := <-stop
		if err := srv.Shutdown(ctx); err != nil {
			t.log.WithError(err).Warn("REST API did not shut down cleanly")
		}
		stopped <- true
	}()
	return nil
}
