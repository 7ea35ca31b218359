package game

import (
	"fmt"
	rand "math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjacktrainer/internal/deck"
)

// DefaultDealerDelay is the pause between dealer draws, matching the
// card-flip pacing the trainer historically used.
const DefaultDealerDelay = time.Second

// reshuffleFloor is the between-rounds reserve: a shoe that has dropped
// below one full deck is rebuilt before the next bet. This is a heuristic
// floor, not tied to the configured deck count.
const reshuffleFloor = 52

// Engine drives the blackjack round state machine. It is the sole writer
// of round state: every transition takes the engine lock, reads the
// current snapshot and swaps in a new one. Collaborators read snapshots
// via State and receive Events; they never mutate anything.
//
// Events raised during a transition are buffered and published after the
// lock is released, so subscribers are free to call State from OnEvent.
type Engine struct {
	mu     sync.Mutex
	logger *log.Logger
	rules  Rules
	rng    *rand.Rand
	clock  quartz.Clock
	events EventBus

	round        *Round
	startingBank float64
	dealerDelay  time.Duration
	pending      []Event

	// generation invalidates scheduled dealer draws: a reset or new game
	// bumps it, so a timer that fires late finds a stale generation and
	// does nothing.
	generation  int
	dealerTimer *quartz.Timer
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules sets the table rules.
func WithRules(rules Rules) Option {
	return func(e *Engine) { e.rules = rules }
}

// WithClock injects the clock used to pace dealer draws. Tests pass
// quartz.NewMock to drive dealer play deterministically.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithDealerDelay sets the pause between dealer draws.
func WithDealerDelay(d time.Duration) Option {
	return func(e *Engine) { e.dealerDelay = d }
}

// WithStartingBank sets the bank a fresh game starts with.
func WithStartingBank(bank float64) Option {
	return func(e *Engine) { e.startingBank = bank }
}

// NewEngine creates an engine with a fresh shoe and bank, in the betting
// phase.
func NewEngine(logger *log.Logger, rng *rand.Rand, opts ...Option) *Engine {
	e := &Engine{
		logger:       logger.WithPrefix("engine"),
		rules:        DefaultRules(),
		rng:          rng,
		clock:        quartz.NewReal(),
		events:       NewEventBus(),
		startingBank: 1000,
		dealerDelay:  DefaultDealerDelay,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.round = &Round{
		Deck:  e.freshDeckLocked(),
		Bank:  e.startingBank,
		Phase: Betting,
	}
	e.pending = nil
	return e
}

// Events returns the event bus for subscribing to engine events.
func (e *Engine) Events() EventBus {
	return e.events
}

// Rules returns the table rules the engine plays under.
func (e *Engine) Rules() Rules {
	return e.rules
}

// State returns a copy of the current round snapshot.
func (e *Engine) State() Round {
	e.mu.Lock()
	defer e.mu.Unlock()
	return *e.round.clone()
}

// transition runs fn under the engine lock, then publishes any events fn
// raised. This serializes transitions (no two may interleave) while
// keeping subscribers outside the critical section.
func (e *Engine) transition(fn func() error) error {
	e.mu.Lock()
	err := fn()
	events := e.pending
	e.pending = nil
	e.mu.Unlock()

	for _, ev := range events {
		e.events.Publish(ev)
	}
	return err
}

// emitLocked buffers an event for publication after the lock drops.
func (e *Engine) emitLocked(ev Event) {
	e.pending = append(e.pending, ev)
}

// NewGame abandons any round in progress and starts over with a fresh
// shoe and the starting bank. Pending dealer draws are invalidated.
func (e *Engine) NewGame() {
	_ = e.transition(func() error {
		e.cancelDealerLocked()
		e.round = &Round{
			Deck:  e.freshDeckLocked(),
			Bank:  e.startingBank,
			Phase: Betting,
		}
		e.logger.Info("new game", "bank", e.startingBank, "decks", e.rules.NumDecks)
		return nil
	})
}

// Restore replaces the engine state with a previously saved snapshot.
// A snapshot saved mid dealer turn resumes dealer play.
func (e *Engine) Restore(round Round) {
	_ = e.transition(func() error {
		e.cancelDealerLocked()
		e.round = round.clone()
		e.logger.Info("restored saved round", "phase", round.Phase, "bank", round.Bank)

		if e.round.Phase == DealerTurn {
			e.dealerStepLocked(e.generation)
		}
		return nil
	})
}

// PlaceBet deducts amount from the bank, deals the opening hands and
// moves to the player turn. Valid only while betting.
func (e *Engine) PlaceBet(amount int) error {
	return e.transition(func() error {
		if e.round.Phase != Betting {
			return fmt.Errorf("place bet in phase %q: %w", e.round.Phase, ErrInvalidTransition)
		}
		if amount <= 0 {
			return fmt.Errorf("bet %d: %w", amount, ErrActionNotAllowed)
		}
		if e.round.Bank < float64(amount) {
			return fmt.Errorf("bet %d against bank %.2f: %w", amount, e.round.Bank, ErrInsufficientBank)
		}

		next := e.round.clone()
		next.CurrentBet = amount
		next.Bank -= float64(amount)
		next.Phase = Dealing

		// A shoe with fewer than four cards cannot cover the opening deal.
		if len(next.Deck) < 4 {
			next.Deck = e.freshDeckLocked()
		}

		e.dealLocked(next)
		e.setRoundLocked(next)

		e.logger.Debug("bet placed", "bet", amount, "bank", next.Bank,
			"player", next.PlayerHands[0], "dealerUp", next.DealerHand.Cards[0])

		e.emitLocked(RoundStartEvent{
			Bet:        amount,
			PlayerHand: next.PlayerHands[0],
			DealerUp:   next.DealerHand.Cards[0],
			timestamp:  time.Now(),
		})
		return nil
	})
}

// dealLocked performs the opening deal on next: two cards to the player
// and two to the dealer, interleaved from a single draw stream
// (player, player, dealer, dealer). If the shoe runs out mid-deal the
// whole deal restarts from a fresh shoe.
func (e *Engine) dealLocked(next *Round) {
	cards, ok := popN(next.Deck, 4)
	if !ok {
		next.Deck = e.freshDeckLocked()
		cards, _ = popN(next.Deck, 4)
	}
	next.Deck = next.Deck[:len(next.Deck)-4]

	player := NewHand(cards[0], cards[1])
	dealer := NewHand(cards[2], cards[3])

	next.PlayerHands = []Hand{player}
	next.DealerHand = dealer
	next.ActiveHand = 0
	next.Phase = PlayerTurn
	next.Legality = Legality{
		CanHit:       true,
		CanStand:     true,
		CanDouble:    CanDouble(next.Bank, next.CurrentBet),
		CanSplit:     CanSplit(player, next.Bank, next.CurrentBet),
		CanSurrender: e.rules.SurrenderAllowed && CanSurrender(PlayerTurn),
	}
	next.Surrendered = false
}

// popN reads the top n cards of a tail-up deck without mutating it. The
// caller truncates the deck on success.
func popN(cards []deck.Card, n int) ([]deck.Card, bool) {
	if len(cards) < n {
		return nil, false
	}
	out := make([]deck.Card, n)
	for i := 0; i < n; i++ {
		out[i] = cards[len(cards)-1-i]
	}
	return out, true
}

// Hit draws one card into the active hand. A bust ends the player turn
// and hands control to the dealer; otherwise the turn continues with
// double, split and surrender withdrawn.
func (e *Engine) Hit() error {
	return e.transition(func() error {
		if e.round.Phase != PlayerTurn || !e.round.CanHit {
			return fmt.Errorf("hit: %w", e.playerActionErrLocked())
		}

		next := e.round.clone()
		card := e.drawLocked(next)
		next.PlayerHands[next.ActiveHand] = next.Active().Add(card)

		hand := next.Active()
		e.logger.Debug("hit", "card", card, "hand", hand)

		if hand.Bust {
			e.beginDealerTurnLocked(next)
			return nil
		}

		next.Legality = Legality{CanHit: true, CanStand: true}
		e.setRoundLocked(next)
		return nil
	})
}

// Stand ends the active hand. With unplayed split hands remaining the
// turn advances to the next hand; otherwise the dealer plays.
func (e *Engine) Stand() error {
	return e.transition(func() error {
		if e.round.Phase != PlayerTurn || !e.round.CanStand {
			return fmt.Errorf("stand: %w", e.playerActionErrLocked())
		}

		next := e.round.clone()
		if next.ActiveHand < len(next.PlayerHands)-1 {
			e.advanceHandLocked(next)
			e.setRoundLocked(next)
			return nil
		}

		e.beginDealerTurnLocked(next)
		return nil
	})
}

// advanceHandLocked moves the turn to the next unplayed split hand with
// fresh-turn legality. Re-splitting is not supported, and surrender is
// only ever offered on the original hand.
func (e *Engine) advanceHandLocked(next *Round) {
	next.ActiveHand++
	next.Legality = Legality{
		CanHit:    true,
		CanStand:  true,
		CanDouble: e.rules.DoubleAfterSplit && CanDouble(next.Bank, next.CurrentBet),
	}
	e.logger.Debug("advancing to next hand", "hand", next.ActiveHand)
}

// DoubleDown doubles the bet, draws exactly one card and ends the active
// hand. With unplayed split hands remaining the turn advances, mirroring
// Stand; otherwise the dealer plays.
func (e *Engine) DoubleDown() error {
	return e.transition(func() error {
		if e.round.Phase != PlayerTurn || !e.round.CanDouble {
			return fmt.Errorf("double: %w", e.playerActionErrLocked())
		}
		if !CanDouble(e.round.Bank, e.round.CurrentBet) {
			return fmt.Errorf("double: %w", ErrInsufficientBank)
		}

		next := e.round.clone()
		card := e.drawLocked(next)
		next.PlayerHands[next.ActiveHand] = next.Active().Add(card)
		next.Bank -= float64(next.CurrentBet)
		next.CurrentBet *= 2

		e.logger.Debug("double down", "card", card, "hand", next.Active(), "bet", next.CurrentBet)

		if next.ActiveHand < len(next.PlayerHands)-1 {
			e.advanceHandLocked(next)
			e.setRoundLocked(next)
			return nil
		}

		e.beginDealerTurnLocked(next)
		return nil
	})
}

// Split turns a two-card pair into two one-card hands, draws one fresh
// card onto each and doubles the total stake. The turn stays on the first
// of the new hands and re-splitting is not offered.
func (e *Engine) Split() error {
	return e.transition(func() error {
		if e.round.Phase != PlayerTurn || !e.round.CanSplit {
			return fmt.Errorf("split: %w", e.playerActionErrLocked())
		}
		if !CanSplit(e.round.Active(), e.round.Bank, e.round.CurrentBet) {
			return fmt.Errorf("split: %w", ErrActionNotAllowed)
		}

		next := e.round.clone()
		hand := next.Active()

		first := NewHand(hand.Cards[0], e.drawLocked(next))
		second := NewHand(hand.Cards[1], e.drawLocked(next))

		hands := make([]Hand, 0, len(next.PlayerHands)+1)
		hands = append(hands, next.PlayerHands[:next.ActiveHand]...)
		hands = append(hands, first, second)
		hands = append(hands, next.PlayerHands[next.ActiveHand+1:]...)
		next.PlayerHands = hands

		next.Bank -= float64(next.CurrentBet)
		next.CurrentBet *= 2
		next.Legality = Legality{
			CanHit:    true,
			CanStand:  true,
			CanDouble: e.rules.DoubleAfterSplit && CanDouble(next.Bank, next.CurrentBet),
		}

		e.logger.Debug("split", "first", first, "second", second, "bet", next.CurrentBet)
		e.setRoundLocked(next)
		return nil
	})
}

// Surrender gives up the hand for half the bet back and completes the
// round without a dealer turn.
func (e *Engine) Surrender() error {
	return e.transition(func() error {
		if e.round.Phase != PlayerTurn || !e.round.CanSurrender || !e.rules.SurrenderAllowed {
			return fmt.Errorf("surrender: %w", e.playerActionErrLocked())
		}

		next := e.round.clone()
		payout := Payout(next.Active(), next.DealerHand, next.CurrentBet, true)
		next.Bank += payout
		next.Phase = Complete
		next.Surrendered = true
		next.clearLegality()

		e.logger.Debug("surrender", "returned", payout, "bank", next.Bank)
		e.setRoundLocked(next)
		return nil
	})
}

// ResetForNewHand clears the table for the next bet. The shoe is rebuilt
// only once it drops below a full deck.
func (e *Engine) ResetForNewHand() error {
	return e.transition(func() error {
		if e.round.Phase != Complete {
			return fmt.Errorf("reset in phase %q: %w", e.round.Phase, ErrInvalidTransition)
		}

		e.cancelDealerLocked()
		next := e.round.clone()
		next.PlayerHands = nil
		next.DealerHand = Hand{}
		next.CurrentBet = 0
		next.ActiveHand = 0
		next.Phase = Betting
		next.Surrendered = false
		next.clearLegality()
		if len(next.Deck) < reshuffleFloor {
			next.Deck = e.freshDeckLocked()
		}
		e.setRoundLocked(next)
		return nil
	})
}

// beginDealerTurnLocked moves next into the dealer turn and plays the
// first dealer step synchronously. Subsequent draws are scheduled on the
// clock so collaborators can animate them one at a time.
func (e *Engine) beginDealerTurnLocked(next *Round) {
	next.Phase = DealerTurn
	next.clearLegality()
	e.setRoundLocked(next)
	e.dealerStepLocked(e.generation)
}

// dealerStepLocked performs one dealer draw, or settles once the dealer
// must stand. A stale generation means the round was reset while this
// step was pending; the step is dropped.
func (e *Engine) dealerStepLocked(gen int) {
	if gen != e.generation || e.round.Phase != DealerTurn {
		return
	}

	if !e.rules.DealerShouldDraw(e.round.DealerHand) {
		e.settleLocked()
		return
	}

	next := e.round.clone()
	card := e.drawLocked(next)
	next.DealerHand = next.DealerHand.Add(card)
	e.setRoundLocked(next)

	e.logger.Debug("dealer draws", "card", card, "hand", next.DealerHand)
	e.emitLocked(DealerCardEvent{
		Card:       card,
		DealerHand: next.DealerHand,
		timestamp:  time.Now(),
	})

	e.dealerTimer = e.clock.AfterFunc(e.dealerDelay, func() {
		_ = e.transition(func() error {
			e.dealerStepLocked(gen)
			return nil
		})
	})
}

// settleLocked resolves every player hand against the dealer, credits the
// bank and completes the round. A winning blackjack was paid its 3:2
// profit by Payout, so the original stake is added back here.
func (e *Engine) settleLocked() {
	next := e.round.clone()
	bet := next.CurrentBet

	payouts := make([]float64, len(next.PlayerHands))
	total := 0.0
	for i, hand := range next.PlayerHands {
		p := Payout(hand, next.DealerHand, bet, false)
		if hand.Blackjack && !next.DealerHand.Blackjack {
			p += float64(bet)
		}
		payouts[i] = p
		total += p
	}

	next.Bank += total
	next.Phase = Complete
	next.clearLegality()
	e.setRoundLocked(next)

	netWin := total - float64(bet)*float64(len(next.PlayerHands))
	e.logger.Info("round settled", "dealer", next.DealerHand, "payout", total, "net", netWin)

	e.emitLocked(RoundSettledEvent{
		Hands:     next.PlayerHands,
		Dealer:    next.DealerHand,
		Bet:       bet,
		Payouts:   payouts,
		NetWin:    netWin,
		timestamp: time.Now(),
	})
	if netWin > 0 {
		e.emitLocked(NotificationEvent{
			Message:   fmt.Sprintf("You won $%s!", formatAmount(netWin)),
			timestamp: time.Now(),
		})
	}
}

// drawLocked pops the top card of next's deck, transparently rebuilding
// the shoe when it is empty. Every draw site goes through here so
// exhaustion recovery is uniform.
func (e *Engine) drawLocked(next *Round) deck.Card {
	if len(next.Deck) == 0 {
		next.Deck = e.freshDeckLocked()
	}
	card := next.Deck[len(next.Deck)-1]
	next.Deck = next.Deck[:len(next.Deck)-1]
	return card
}

// freshDeckLocked builds and shuffles a new shoe.
func (e *Engine) freshDeckLocked() []deck.Card {
	e.logger.Debug("shuffling fresh shoe", "decks", e.rules.NumDecks)
	e.emitLocked(ShoeShuffledEvent{NumDecks: e.rules.NumDecks, timestamp: time.Now()})
	return deck.NewShoe(e.rules.NumDecks, e.rng).Cards()
}

// setRoundLocked swaps in a new snapshot, raising a phase change event
// when the phase moved.
func (e *Engine) setRoundLocked(next *Round) {
	if next.Phase != e.round.Phase {
		e.emitLocked(PhaseChangeEvent{From: e.round.Phase, To: next.Phase, timestamp: time.Now()})
	}
	e.round = next
}

// cancelDealerLocked invalidates any pending dealer draw.
func (e *Engine) cancelDealerLocked() {
	e.generation++
	if e.dealerTimer != nil {
		e.dealerTimer.Stop()
		e.dealerTimer = nil
	}
}

// playerActionErrLocked picks the error for a rejected player action.
func (e *Engine) playerActionErrLocked() error {
	if e.round.Phase != PlayerTurn {
		return fmt.Errorf("phase %q: %w", e.round.Phase, ErrInvalidTransition)
	}
	return ErrActionNotAllowed
}

// formatAmount renders a payout without trailing zeros ("15", "7.5").
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
