package server

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjacktrainer/internal/game"
)

// MessageType identifies a websocket message.
type MessageType string

// Client → server intents. These map one-to-one onto the engine's
// transitions; the browser gates its controls on the legality flags it
// was last sent, and the engine re-checks everything anyway.
const (
	MessageTypePlaceBet  MessageType = "place_bet"
	MessageTypeHit       MessageType = "hit"
	MessageTypeStand     MessageType = "stand"
	MessageTypeDouble    MessageType = "double"
	MessageTypeSplit     MessageType = "split"
	MessageTypeSurrender MessageType = "surrender"
	MessageTypeReset     MessageType = "reset"
	MessageTypeNewGame   MessageType = "new_game"
)

// Server → client messages.
const (
	MessageTypeState        MessageType = "state"
	MessageTypeNotification MessageType = "notification"
	MessageTypeError        MessageType = "error"
)

// Message is the websocket envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(messageType MessageType, data any) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}
	return &Message{Type: messageType, Data: raw, Timestamp: time.Now()}, nil
}

// PlaceBetData carries the bet amount for a place_bet intent.
type PlaceBetData struct {
	Amount int `json:"amount"`
}

// StateData is the full view a client needs to render: the round snapshot
// minus the deck (the shoe stays server-side; only its size is shown).
type StateData struct {
	PlayerHands   []game.Hand `json:"playerHands"`
	DealerHand    game.Hand   `json:"dealerHand"`
	CurrentBet    int         `json:"currentBet"`
	Bank          float64     `json:"bank"`
	Phase         game.Phase  `json:"gamePhase"`
	ActiveHand    int         `json:"activeHandIndex"`
	Surrendered   bool        `json:"surrendered"`
	CardsInShoe   int         `json:"cardsInShoe"`
	game.Legality
}

// StateDataFromRound strips the deck out of a snapshot.
func StateDataFromRound(round game.Round) StateData {
	return StateData{
		PlayerHands: round.PlayerHands,
		DealerHand:  round.DealerHand,
		CurrentBet:  round.CurrentBet,
		Bank:        round.Bank,
		Phase:       round.Phase,
		ActiveHand:  round.ActiveHand,
		Surrendered: round.Surrendered,
		CardsInShoe: len(round.Deck),
		Legality:    round.Legality,
	}
}

// NotificationData carries a transient user-facing message.
type NotificationData struct {
	Message string `json:"message"`
}

// ErrorData describes a rejected intent.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
