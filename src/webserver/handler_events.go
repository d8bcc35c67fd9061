package webserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ironsmile/artframe/src/publish"
	"github.com/ironsmile/artframe/src/webserver/webutils"
)

// EventSource is a source of changes of the published state.
type EventSource interface {
	Subscribe() (<-chan publish.Change, func())
	Current() (publish.Change, error)
}

const (
	eventsWriteWait = 10 * time.Second
	eventsPongWait  = 60 * time.Second
	eventsPingEvery = (eventsPongWait * 9) / 10
)

var eventsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// event is a message sent to the websocket clients. The first message is of
// type "state" and every following one is of type "change".
type event struct {
	Type string `json:"type"`
	publish.Change
}

// NewEventsHandler returns a http.Handler which streams the changes of the
// displayed artwork and display status over a websocket.
func NewEventsHandler(events EventSource) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if events == nil {
			webutils.JSONError(w, "events are not available", http.StatusServiceUnavailable)
			return
		}

		current, err := events.Current()
		if err != nil {
			writeError(w, err)
			return
		}

		conn, err := eventsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		changes, unsubscribe := events.Subscribe()
		defer unsubscribe()

		if err := conn.SetReadDeadline(time.Now().Add(eventsPongWait)); err != nil {
			log.Printf("events websocket set read deadline failed: %v", err)
			return
		}
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(eventsPongWait))
		})

		// Clients are not expected to send anything. Reading is needed for
		// processing pongs and noticing closed connections.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		if err := writeEvent(conn, event{Type: "state", Change: current}); err != nil {
			return
		}

		ticker := time.NewTicker(eventsPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case change := <-changes:
				if err := writeEvent(conn, event{Type: "change", Change: change}); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(eventsWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	})
}

func writeEvent(conn *websocket.Conn, ev event) error {
	if err := conn.SetWriteDeadline(time.Now().Add(eventsWriteWait)); err != nil {
		return err
	}
	return conn.WriteJSON(ev)
}
