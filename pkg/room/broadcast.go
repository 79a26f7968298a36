package room

import "github.com/sirupsen/logrus"

// send queues a message on a single client. A client that cannot accept the
// message (buffer full, peer gone) is asked to close; delivery to other
// clients is unaffected.
func (r *Room) send(c *Client, msg *Message) {
	if !c.Send(msg) {
		logrus.WithField("client", c.String()).Warn("send buffer full; closing client")
		c.CloseWithReason("send failure")
	}
}

// sendTo delivers a message to every connection of one identity
func (r *Room) sendTo(sessionID string, msg *Message) {
	r.mu.Lock()
	conns := make([]*Client, len(r.clients[sessionID]))
	copy(conns, r.clients[sessionID])
	r.mu.Unlock()

	for _, c := range conns {
		r.send(c, msg)
	}
}

// broadcast delivers a message to every connection of every identity. The
// client list is snapshotted so a join or leave in flight never blocks the
// batch.
func (r *Room) broadcast(msg *Message) {
	r.mu.Lock()
	conns := make([]*Client, 0, len(r.clients))
	for _, list := range r.clients {
		conns = append(conns, list...)
	}
	r.mu.Unlock()

	for _, c := range conns {
		r.send(c, msg)
	}
}

// serverBroadcast sends a room-generated chat message to everyone and
// records it in the history
func (r *Room) serverBroadcast(text string) {
	cm := newServerMessage(text)
	r.recordHistory(cm)
	r.broadcast(chatEnvelope(cm))
}

// serverMessageTo sends a room-generated chat message to one identity only
func (r *Room) serverMessageTo(sessionID, text string) {
	r.sendTo(sessionID, chatEnvelope(newServerMessage(text)))
}
