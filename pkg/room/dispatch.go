package room

import (
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"cardroom-server/pkg/deck"
)

// ReceivedMessage dispatches a decoded envelope from a client. Payloads that
// do not match the shape expected for the declared type are malformed: they
// are logged and dropped, and the connection stays open. Commands for an
// identity that is no longer registered are ignored.
func (r *Room) ReceivedMessage(c *Client, msg *Inbound) {
	log := logrus.WithFields(logrus.Fields{
		"client": c.String(),
		"type":   msg.Type,
	})

	var err error
	switch msg.Type {
	case TypeGetHand:
		var cards []deck.Card
		if !decodeCards(log, msg.Payload, &cards) {
			return
		}

		err = r.GetHand(c.SessionID(), cards)
	case TypeDrawCards:
		var count int
		if !decodePayload(log, msg.Payload, &count) {
			return
		}

		if count <= 0 {
			log.WithField("count", count).Warn("malformed command")
			return
		}

		err = r.DrawCards(c.SessionID(), count)
	case TypeSubmitHand:
		var cards []deck.Card
		if !decodeCards(log, msg.Payload, &cards) {
			return
		}

		err = r.SubmitHand(c.SessionID(), cards)
	case TypeRename:
		var name string
		if !decodePayload(log, msg.Payload, &name) {
			return
		}

		if name == "" {
			log.Warn("malformed command")
			return
		}

		err = r.Rename(c.SessionID(), name)
	case TypeAnte:
		err = r.Ante(c.SessionID())
	case TypeBetMoney:
		var amount float64
		if !decodePayload(log, msg.Payload, &amount) {
			return
		}

		if amount < 0 {
			log.WithField("amount", amount).Warn("malformed command")
			return
		}

		err = r.Bet(c.SessionID(), amount)
	case TypeMoneyCheck:
		err = r.MoneyCheck(c.SessionID())
	case TypeChat:
		var text string
		if !decodePayload(log, msg.Payload, &text) {
			return
		}

		err = r.Chat(c.SessionID(), text)
	default:
		log.Warn("unknown message type")
		return
	}

	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownIdentity):
		log.Debug("command for unregistered identity dropped")
	case errors.Is(err, ErrInsufficientFunds):
		// the player was already notified; nothing else to do
	default:
		log.WithError(err).Error("command failed")
	}
}

// decodeCards decodes a hand payload: an ordered list of at most five valid cards
func decodeCards(log *logrus.Entry, payload json.RawMessage, cards *[]deck.Card) bool {
	if !decodePayload(log, payload, cards) {
		return false
	}

	if len(*cards) > maxHandSize {
		log.WithField("cards", len(*cards)).Warn("malformed command")
		return false
	}

	for _, card := range *cards {
		if !card.Valid() {
			log.WithField("card", card).Warn("malformed command")
			return false
		}
	}

	return true
}

func decodePayload(log *logrus.Entry, payload json.RawMessage, v interface{}) bool {
	if err := json.Unmarshal(payload, v); err != nil {
		log.WithError(err).Warn("malformed command")
		return false
	}

	return true
}
