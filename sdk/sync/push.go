package sync

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type pushEvent struct {
	Type string `json:"type"`
}

// PushListener holds the websocket open against /api/ws and pokes the
// poller's Wake channel whenever the room gets a new message. It is the
// only part of push mode; the data itself still flows through the same
// GET the poll mode uses.
type PushListener struct {
	BaseURL string
	Jar     http.CookieJar
	Wake    chan<- struct{}
}

func NewPushListener(baseURL string, jar http.CookieJar, wake chan<- struct{}) *PushListener {
	return &PushListener{BaseURL: baseURL, Jar: jar, Wake: wake}
}

func (l *PushListener) wsURL() string {
	u := strings.TrimRight(l.BaseURL, "/")
	u = strings.Replace(u, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return u + "/api/ws"
}

// Run dials, reads, and redials with capped backoff until ctx is done.
// A dropped connection degrades push to nothing; the UI stays correct
// because the poller's presence ticker and explicit refreshes remain.
func (l *PushListener) Run(ctx context.Context) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		dialer := websocket.Dialer{
			Jar:              l.Jar,
			HandshakeTimeout: 10 * time.Second,
		}
		conn, _, err := dialer.DialContext(ctx, l.wsURL(), nil)
		if err != nil {
			log.Warn().Err(err).Msg("push: dial failed, backing off")
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		l.readLoop(ctx, conn)
		conn.Close()
	}
}

func (l *PushListener) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var ev pushEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			continue
		}
		if ev.Type != "message.created" {
			continue
		}

		select {
		case l.Wake <- struct{}{}:
		default:
			// refresh already queued
		}
	}
}
