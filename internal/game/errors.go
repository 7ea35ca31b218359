package game

import "errors"

var (
	// ErrInvalidTransition is returned when a transition is invoked in a
	// phase it is not defined for. The round state is left untouched.
	ErrInvalidTransition = errors.New("invalid transition for current phase")

	// ErrActionNotAllowed is returned when a player action is invoked
	// while its legality flag is false.
	ErrActionNotAllowed = errors.New("action not allowed")

	// ErrInsufficientBank is returned when the bank cannot cover a bet.
	ErrInsufficientBank = errors.New("insufficient bank")
)
