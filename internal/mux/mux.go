package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"cardroom-server/internal/config"
	"cardroom-server/pkg/room"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version    string
	room       *room.Room
	cookieName string
}

// NewMux returns a new HTTP mux serving the health check and the poker
// websocket endpoint
func NewMux(version string, rm *room.Room) *Mux {
	this := &Mux{
		Router:     gmux.NewRouter(),
		version:    version,
		room:       rm,
		cookieName: config.Instance().SessionCookie,
	}

	this.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	this.Methods(http.MethodGet).Path("/poker").Handler(this.getPokerWS())

	return this
}
