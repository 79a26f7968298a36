package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"cardroom-server/pkg/room"
	"cardroom-server/pkg/token"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

const sessionTokenLength = 32

func (m *Mux) getPokerWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, cookie, err := m.sessionID(r)
		if err != nil {
			logrus.WithError(err).Error("could not establish session")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "could not establish session"})
			return
		}

		var responseHeader http.Header
		if cookie != nil {
			responseHeader = http.Header{}
			responseHeader.Add("Set-Cookie", cookie.String())
		}

		conn, err := upgrader.Upgrade(w, r, responseHeader)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		client := room.NewClient(conn, sessionID)
		m.room.MemberJoin(client)

		waitForCloseFrame := make(chan bool)
		defer func() {
			m.room.MemberLeft(client)
			_ = conn.Close()
			close(waitForCloseFrame)
		}()

		go m.webSocketWriteLoop(client, waitForCloseFrame)
		m.webSocketReadLoop(client)
	}
}

// sessionID returns the stable session identity for the request. A browser
// session without the identity cookie is issued a fresh nonce; the cookie is
// sent back with the upgrade response.
func (m *Mux) sessionID(r *http.Request) (string, *http.Cookie, error) {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil, nil
	}

	nonce, err := token.Generate(sessionTokenLength)
	if err != nil {
		return "", nil, err
	}

	cookie := &http.Cookie{
		Name:     m.cookieName,
		Value:    nonce,
		Path:     "/",
		HttpOnly: true,
	}

	return nonce, cookie, nil
}

func (m *Mux) webSocketWriteLoop(client *room.Client, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.CloseChan():
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = client.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// wait for the close frame
			select {
			case <-waitForCloseFrame:
			case <-time.After(time.Second):
			}
			return
		case msg, ok := <-client.SendChan():
			if !ok {
				return
			}

			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(msg); err != nil {
				logrus.WithError(err).WithField("client", client.String()).Error("could not write message")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(client *room.Client) {
	for {
		var msg room.Inbound
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Debug("connection closed unexpectedly")
			}

			client.CloseError = err
			return
		}

		m.room.ReceivedMessage(client, &msg)
	}
}
