package client

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
)

var _ wifihelper.WifiAPI = &Client{}

// Client speaks to a wifid REST API and hands back the same
// errors a local WifiHelper would, so callers can't tell the
// difference.
type Client struct {
	r *resty.Client
}

func New(baseURL string) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")
	return &Client{r: r}
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (t *Client) do(method, path string, body any, result any) error {
	var e apiError
	req := t.r.R().SetError(&e)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &wifihelper.PlatformError{Op: wifihelper.Op(path), Err: err}
	}
	if !resp.IsError() {
		return nil
	}

	msg := e.Error.Message
	if msg == "" {
		msg = resp.Status()
	}

	switch resp.StatusCode() {
	case http.StatusConflict:
		return wifihelper.ErrNoActiveConnection
	case http.StatusBadGateway:
		return &wifihelper.PlatformError{Op: wifihelper.Op(path), Err: errors.New(msg)}
	default:
		return fmt.Errorf("%s %s: %d: %s", method, path, resp.StatusCode(), msg)
	}
}

func (t *Client) Status() (wifihelper.Status, error) {
	var s wifihelper.Status
	err := t.do(http.MethodGet, "/wifi/status", nil, &s)
	return s, err
}

func (t *Client) ConnectionEnabled() (bool, error) {
	var out struct {
		Enabled bool `json:"enabled"`
	}
	err := t.do(http.MethodGet, "/wifi/enabled", nil, &out)
	return out.Enabled, err
}

func (t *Client) SetConnectionEnabled(enabled bool) error {
	return t.do(http.MethodPut, "/wifi/enabled", map[string]bool{"enabled": enabled}, nil)
}

func (t *Client) ConnectedNetworkName() (string, bool, error) {
	var out struct {
		Connected bool   `json:"connected"`
		SSID      string `json:"ssid"`
	}
	if err := t.do(http.MethodGet, "/wifi/connection", nil, &out); err != nil {
		return "", false, err
	}
	return out.SSID, out.Connected, nil
}

func (t *Client) IsConnectedTo(ssid string) (bool, error) {
	var out struct {
		Connected bool `json:"connected"`
	}
	err := t.do(http.MethodGet, "/wifi/connected-to/"+url.PathEscape(ssid), nil, &out)
	return out.Connected, err
}

func (t *Client) names(path string) ([]string, error) {
	var out struct {
		Networks []string `json:"networks"`
	}
	if err := t.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Networks, nil
}

func (t *Client) ListAvailableNetworks() ([]string, error) {
	return t.names("/wifi/networks/available")
}

func (t *Client) ListNetworks() ([]string, error) {
	return t.names("/wifi/networks")
}

func (t *Client) ConfiguredNetworks() ([]wifihelper.NetworkIdentity, error) {
	var out struct {
		Networks []wifihelper.NetworkIdentity `json:"networks"`
	}
	if err := t.do(http.MethodGet, "/wifi/networks/configured", nil, &out); err != nil {
		return nil, err
	}
	return out.Networks, nil
}

func (t *Client) ListConfiguredNetworks() ([]string, error) {
	networks, err := t.ConfiguredNetworks()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(networks))
	for _, n := range networks {
		names = append(names, n.SSID)
	}
	return names, nil
}

// RankBySignal asks the server to rank its own scan when records
// is nil, otherwise sorts records locally.
func (t *Client) RankBySignal(records []wifihelper.SignalRecord) ([]wifihelper.SignalRecord, error) {
	if records != nil {
		return wifihelper.SortBySignal(records), nil
	}

	var out struct {
		Results []wifihelper.SignalRecord `json:"results"`
	}
	if err := t.do(http.MethodGet, "/wifi/signal", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (t *Client) ConnectToNetwork(netID int, opts ...wifihelper.ConnectOption) error {
	o := wifihelper.NewConnectOptions(opts...)
	body := map[string]any{
		"netId":         netID,
		"disableOthers": o.DisableOthers,
	}
	return t.do(http.MethodPost, "/wifi/connect", body, nil)
}

func (t *Client) DisconnectFromNetwork() error {
	return t.do(http.MethodPost, "/wifi/disconnect", nil, nil)
}
