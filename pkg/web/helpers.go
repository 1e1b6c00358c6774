package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
)

func sendResponse(w http.ResponseWriter, payload any) {
	// note: w.Header after this, so we can call sendError
	b, err := json.Marshal(payload)
	if err != nil {
		sendErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("in json.Marshal: %s", err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store") // do not cache (Browsers cache GET forever by default)
	w.Write(b)
}

func sendErrorResponse(w http.ResponseWriter, code int, message string) {
	// would prefer to use json.Marshal, but this avoids the need
	// to handle encoding errors arising from json.Marshal itself!
	payload := fmt.Sprintf("{\"error\":{\"code\":%d,\"message\":%q}}", code, message)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	w.Write([]byte(payload))
}

// Maps facade errors onto status codes. A missing connection is the
// caller's problem (409), the host refusing is an upstream one (502).
func (t api) sendWifiError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, wifihelper.ErrNoActiveConnection):
		code = http.StatusConflict
	case errors.Is(err, wifihelper.ErrPlatformOperationFailed):
		code = http.StatusBadGateway
	}

	t.log.WithError(err).WithField("code", code).Warn("wifi request failed")
	sendErrorResponse(w, code, err.Error())
}
