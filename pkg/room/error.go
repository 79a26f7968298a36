package room

import "errors"

// ErrUnknownIdentity is an error when a command references a session that is not registered
var ErrUnknownIdentity = errors.New("unknown identity")

// ErrInsufficientFunds is an error when a bet would leave the player with a negative balance
var ErrInsufficientFunds = errors.New("insufficient funds")

// UserError is an error that is safe to send to a player
type UserError string

func (u UserError) Error() string {
	return string(u)
}
