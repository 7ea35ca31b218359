package server

import (
	"encoding/json"
	"errors"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/blackjacktrainer/internal/config"
	"github.com/lox/blackjacktrainer/internal/game"
)

// session owns one connection and one engine. Reads run on the session
// goroutine; engine events (dealer draws fire from timer goroutines) and
// intent responses are funnelled through outbound so only the writer
// goroutine touches the connection.
type session struct {
	logger   *log.Logger
	conn     *websocket.Conn
	engine   *game.Engine
	minBet   int
	maxBet   int
	outbound chan *Message
	done     chan struct{}
}

func newSession(logger *log.Logger, conn *websocket.Conn, settings *config.Settings, rng *rand.Rand) *session {
	engine := game.NewEngine(logger, rng,
		game.WithRules(settings.Rules()),
		game.WithStartingBank(settings.Table.StartingBank),
	)

	s := &session{
		logger:   logger.WithPrefix("session"),
		conn:     conn,
		engine:   engine,
		minBet:   settings.Table.MinBet,
		maxBet:   settings.Table.MaxBet,
		outbound: make(chan *Message, 16),
		done:     make(chan struct{}),
	}
	engine.Events().Subscribe(s)
	return s
}

// OnEvent forwards engine events to the client. Dealer draws and
// settlements arrive here from the engine's timer goroutine, which is
// what lets the browser animate dealer cards one at a time.
func (s *session) OnEvent(event game.Event) {
	switch ev := event.(type) {
	case game.NotificationEvent:
		msg, err := NewMessage(MessageTypeNotification, NotificationData{Message: ev.Message})
		if err == nil {
			s.queue(msg)
		}
	case game.DealerCardEvent, game.RoundSettledEvent, game.PhaseChangeEvent:
		s.queueState()
	}
}

func (s *session) run() {
	defer s.conn.Close()

	go s.writeLoop()
	defer close(s.done)

	// Opening state so the client can render the betting controls.
	s.queueState()

	for {
		var msg Message
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}
		s.handle(&msg)
	}
}

func (s *session) writeLoop() {
	for {
		select {
		case msg := <-s.outbound:
			if err := s.conn.WriteJSON(msg); err != nil {
				s.logger.Warn("write failed", "error", err)
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *session) handle(msg *Message) {
	var err error
	switch msg.Type {
	case MessageTypePlaceBet:
		err = s.placeBet(msg)
	case MessageTypeHit:
		err = s.engine.Hit()
	case MessageTypeStand:
		err = s.engine.Stand()
	case MessageTypeDouble:
		err = s.engine.DoubleDown()
	case MessageTypeSplit:
		err = s.engine.Split()
	case MessageTypeSurrender:
		err = s.engine.Surrender()
	case MessageTypeReset:
		err = s.engine.ResetForNewHand()
	case MessageTypeNewGame:
		s.engine.NewGame()
	default:
		s.queueError("unknown_message", "unknown message type: "+string(msg.Type))
		return
	}

	if err != nil {
		s.queueError(errorCode(err), err.Error())
		return
	}
	s.queueState()
}

func (s *session) placeBet(msg *Message) error {
	var data PlaceBetData
	if err := decodeData(msg, &data); err != nil {
		return err
	}
	if data.Amount < s.minBet || data.Amount > s.maxBet {
		return game.ErrActionNotAllowed
	}
	return s.engine.PlaceBet(data.Amount)
}

func decodeData(msg *Message, v any) error {
	if msg.Data == nil {
		return errors.New("missing message data")
	}
	return json.Unmarshal(msg.Data, v)
}

func (s *session) queueState() {
	msg, err := NewMessage(MessageTypeState, StateDataFromRound(s.engine.State()))
	if err != nil {
		s.logger.Error("failed to encode state", "error", err)
		return
	}
	s.queue(msg)
}

func (s *session) queueError(code, message string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		return
	}
	s.queue(msg)
}

// queue drops messages rather than block the engine's timer goroutine on
// a slow client.
func (s *session) queue(msg *Message) {
	select {
	case s.outbound <- msg:
	case <-s.done:
	default:
		s.logger.Warn("outbound queue full, dropping message", "type", msg.Type)
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, game.ErrInsufficientBank):
		return "insufficient_bank"
	case errors.Is(err, game.ErrActionNotAllowed):
		return "action_not_allowed"
	default:
		return "internal"
	}
}
