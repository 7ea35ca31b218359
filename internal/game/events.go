package game

import (
	"time"

	"github.com/lox/blackjacktrainer/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypePhaseChange  EventType = "phase_change"
	EventTypeDealerCard   EventType = "dealer_card"
	EventTypeShoeShuffled EventType = "shoe_shuffled"
	EventTypeRoundSettled EventType = "round_settled"
	EventTypeNotification EventType = "notification"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event represents anything observable that happens inside the engine.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published after the initial deal completes.
type RoundStartEvent struct {
	Bet        int
	PlayerHand Hand
	DealerUp   deck.Card
	timestamp  time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangeEvent is published whenever the round phase moves.
type PhaseChangeEvent struct {
	From      Phase
	To        Phase
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// DealerCardEvent is published once per dealer draw so collaborators can
// pace card-flip animations one card at a time.
type DealerCardEvent struct {
	Card       deck.Card
	DealerHand Hand
	timestamp  time.Time
}

func (e DealerCardEvent) EventType() EventType { return EventTypeDealerCard }
func (e DealerCardEvent) Timestamp() time.Time { return e.timestamp }

// ShoeShuffledEvent is published when the engine rebuilds the shoe, either
// on exhaustion recovery or the between-rounds reshuffle floor.
type ShoeShuffledEvent struct {
	NumDecks  int
	timestamp time.Time
}

func (e ShoeShuffledEvent) EventType() EventType { return EventTypeShoeShuffled }
func (e ShoeShuffledEvent) Timestamp() time.Time { return e.timestamp }

// RoundSettledEvent is published after settlement with per-hand payouts.
// NetWin is totalPayout − bet × handCount; positive values are surfaced to
// the user as a win notification.
type RoundSettledEvent struct {
	Hands     []Hand
	Dealer    Hand
	Bet       int
	Payouts   []float64
	NetWin    float64
	timestamp time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// NotificationEvent carries a transient user-facing message ("You won $15!").
type NotificationEvent struct {
	Message   string
	timestamp time.Time
}

func (e NotificationEvent) EventType() EventType { return EventTypeNotification }
func (e NotificationEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{subscribers: make([]EventSubscriber, 0)}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
