package web

import (
	"encoding/json"
	"net/http"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
	"github.com/dogeorg/wifihelper/pkg/version"
)

func (t api) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := t.wifi.Status()
	if err != nil {
		t.sendWifiError(w, err)
		return
	}
	sendResponse(w, status)
}

func (t api) getEnabled(w http.ResponseWriter, r *http.Request) {
	enabled, err := t.wifi.ConnectionEnabled()
	if err != nil {
		t.sendWifiError(w, err)
		return
	}
	sendResponse(w, map[string]bool{"enabled": enabled})
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

func (t api) setEnabled(w http.ResponseWriter, r *http.Request) {
	var req setEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "Error parsing JSON")
		return
	}
	if req.Enabled == nil {
		sendErrorResponse(w, http.StatusBadRequest, "enabled is required")
		return
	}

	if err := t.wifi.SetConnectionEnabled(*req.Enabled); err != nil {
		t.sendWifiError(w, err)
		return
	}

	// Accepted only: the radio may still be switching.
	sendResponse(w, map[string]bool{"success": true})
}

type connectionResponse struct {
	Connected bool   `json:"connected"`
	SSID      string `json:"ssid,omitempty"`
}

func (t api) getConnection(w http.ResponseWriter, r *http.Request) {
	ssid, ok, err := t.wifi.ConnectedNetworkName()
	if err != nil {
		t.sendWifiError(w, err)
		return
	}
	sendResponse(w, connectionResponse{Connected: ok, SSID: ssid})
}

func (t api) getConnectedTo(w http.ResponseWriter, r *http.Request) {
	ok, err := t.wifi.IsConnectedTo(r.PathValue("ssid"))
	if err != nil {
		t.sendWifiError(w, err)
		return
	}
	sendResponse(w, map[string]bool{"connected": ok})
}

func (t api) sendNetworks(w http.ResponseWriter, list func() ([]string, error)) {
	names, err := list()
	if err != nil {
		t.sendWifiError(w, err)
		return
	}
	sendResponse(w, map[string]any{"networks": names})
}

func (t api) getNetworks(w http.ResponseWriter, r *http.Request) {
	t.sendNetworks(w, t.wifi.ListNetworks)
}

func (t api) getAvailableNetworks(w http.ResponseWriter, r *http.Request) {
	t.sendNetworks(w, t.wifi.ListAvailableNetworks)
}

func (t api) getConfiguredNetworks(w http.ResponseWriter, r *http.Request) {
	networks, err := t.wifi.ConfiguredNetworks()
	if err != nil {
		t.sendWifiError(w, err)
		return
	}
	sendResponse(w, map[string]any{"networks": networks})
}

func (t api) getSignal(w http.ResponseWriter, r *http.Request) {
	results, err := t.wifi.RankBySignal(nil)
	if err != nil {
		t.sendWifiError(w, err)
		return
	}
	sendResponse(w, map[string]any{"results": results})
}

type connectRequest struct {
	NetID         *int  `json:"netId"`
	DisableOthers *bool `json:"disableOthers"`
}

func (t api) connectNetwork(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "Error parsing JSON")
		return
	}
	if req.NetID == nil {
		sendErrorResponse(w, http.StatusBadRequest, "netId is required")
		return
	}

	opts := []wifihelper.ConnectOption{}
	if req.DisableOthers != nil && !*req.DisableOthers {
		opts = append(opts, wifihelper.KeepOthers())
	}

	if err := t.wifi.ConnectToNetwork(*req.NetID, opts...); err != nil {
		t.sendWifiError(w, err)
		return
	}
	sendResponse(w, map[string]bool{"success": true})
}

func (t api) disconnectNetwork(w http.ResponseWriter, r *http.Request) {
	if err := t.wifi.DisconnectFromNetwork(); err != nil {
		t.sendWifiError(w, err)
		return
	}
	sendResponse(w, map[string]bool{"success": true})
}

func (t api) getVersion(w http.ResponseWriter, r *http.Request) {
	sendResponse(w, version.GetRelease())
}
