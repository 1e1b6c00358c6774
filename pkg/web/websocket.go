package web

import (
	"net/http"
	"time"

	"golang.org/x/net/websocket"

	wifihelper "github.com/dogeorg/wifihelper/pkg"
)

// What the status socket pushes: a full Status whenever it differs
// from the last one sent, or an error if the host couldn't be read.
type StatusUpdate struct {
	Type   string             `json:"type"`
	Status *wifihelper.Status `json:"status,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// Handle incomming websocket connections for status updates. The
// helper never notifies us, so this polls it on PollInterval until
// the client goes away.
func (t api) getStatusSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		defer conn.Close()

		// Clients never send anything, but reading is the only way to
		// see them close: the request context outlives the hijack.
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			var msg string
			for {
				if err := websocket.Message.Receive(conn, &msg); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(t.config.PollInterval)
		defer ticker.Stop()

		var last *StatusUpdate
		for {
			update := t.pollStatus()
			if last == nil || !sameUpdate(*last, update) {
				if err := websocket.JSON.Send(conn, update); err != nil {
					t.log.WithError(err).Debug("status socket closed")
					return
				}
				last = &update
			}

			select {
			case <-gone:
				t.log.Debug("status socket client went away")
				return
			case <-ticker.C:
			}
		}
	}).ServeHTTP(w, r)
}

func (t api) pollStatus() StatusUpdate {
	status, err := t.wifi.Status()
	if err != nil {
		return StatusUpdate{Type: "error", Error: err.Error()}
	}
	return StatusUpdate{Type: "status", Status: &status}
}

func sameUpdate(a, b StatusUpdate) bool {
	if a.Type != b.Type || a.Error != b.Error {
		return false
	}
	if a.Status == nil || b.Status == nil {
		return a.Status == b.Status
	}
	return *a.Status == *b.Status
}
