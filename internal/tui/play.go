// Package tui renders the trainer in the terminal. The play model is a
// read-only collaborator of the engine: it sends intents, receives events
// and re-reads the snapshot; it never computes game state itself.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacktrainer/internal/game"
	"github.com/lox/blackjacktrainer/internal/statistics"
	"github.com/lox/blackjacktrainer/internal/storage"
	"github.com/lox/blackjacktrainer/internal/strategy"
)

const toastDuration = 3 * time.Second

// eventMsg wraps an engine event for the bubbletea update loop. Dealer
// draws arrive on the engine's timer goroutine; funnelling them through a
// channel keeps all model mutation on the bubbletea goroutine.
type eventMsg struct {
	event game.Event
}

// toastExpiredMsg clears a notification after its display window.
type toastExpiredMsg struct {
	id int
}

// PlayModel is the bubbletea model for the play view.
type PlayModel struct {
	logger  *log.Logger
	engine  *game.Engine
	stats   *statistics.Session
	store   *storage.Store
	history *storage.History

	betInput textinput.Model
	events   chan game.Event

	round    game.Round
	toast    string
	toastID  int
	errMsg   string
	showHint bool
	minBet   int
	maxBet   int

	width    int
	height   int
	quitting bool
}

// PlayOption configures a PlayModel.
type PlayOption func(*PlayModel)

// WithStore enables round and statistics persistence.
func WithStore(store *storage.Store) PlayOption {
	return func(m *PlayModel) { m.store = store }
}

// WithHistory enables the sqlite round history log.
func WithHistory(history *storage.History) PlayOption {
	return func(m *PlayModel) { m.history = history }
}

// WithSession seeds the model with previously saved statistics.
func WithSession(session *statistics.Session) PlayOption {
	return func(m *PlayModel) { m.stats = session }
}

// WithBetLimits sets the table bet limits shown and enforced at the
// betting prompt.
func WithBetLimits(minBet, maxBet int) PlayOption {
	return func(m *PlayModel) {
		m.minBet = minBet
		m.maxBet = maxBet
	}
}

// NewPlayModel creates the play view bound to an engine. The model
// subscribes to the engine's events; the caller runs it with tea.NewProgram.
func NewPlayModel(logger *log.Logger, engine *game.Engine, opts ...PlayOption) *PlayModel {
	ti := textinput.New()
	ti.Placeholder = "bet amount"
	ti.CharLimit = 6
	ti.Width = 12
	ti.Prompt = "$ "
	ti.PromptStyle = BankStyle
	ti.Focus()

	m := &PlayModel{
		logger:   logger.WithPrefix("tui"),
		engine:   engine,
		stats:    statistics.NewSession(),
		betInput: ti,
		events:   make(chan game.Event, 32),
		round:    engine.State(),
		minBet:   1,
		maxBet:   10000,
	}
	for _, opt := range opts {
		opt(m)
	}
	engine.Events().Subscribe(m)
	return m
}

// OnEvent implements game.EventSubscriber. It runs on whichever goroutine
// published the event, so it only forwards into the channel.
func (m *PlayModel) OnEvent(event game.Event) {
	select {
	case m.events <- event:
	default:
		// A stalled UI drops events rather than block the engine. The next
		// snapshot read repairs the display.
	}
}

// Init implements tea.Model.
func (m *PlayModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForEvent())
}

func (m *PlayModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-m.events}
	}
}

// Update implements tea.Model.
func (m *PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventMsg:
		return m.handleEvent(msg.event)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.betInput, cmd = m.betInput.Update(msg)
	return m, cmd
}

func (m *PlayModel) handleEvent(event game.Event) (tea.Model, tea.Cmd) {
	m.round = m.engine.State()
	cmds := []tea.Cmd{m.waitForEvent()}

	switch ev := event.(type) {
	case game.NotificationEvent:
		m.toast = ev.Message
		m.toastID++
		id := m.toastID
		cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))

	case game.RoundSettledEvent:
		m.recordRound(ev)
	}

	return m, tea.Batch(cmds...)
}

// recordRound folds a settlement into session statistics and the history
// log. Surrendered rounds never settle, so they are not recorded.
func (m *PlayModel) recordRound(ev game.RoundSettledEvent) {
	m.stats.Add(statistics.RoundResult{
		Hands:   ev.Hands,
		Bet:     ev.Bet,
		Payouts: ev.Payouts,
	})

	if m.store != nil {
		if err := m.store.SaveStats(m.stats); err != nil {
			m.logger.Warn("failed to save statistics", "error", err)
		}
	}
	if m.history != nil {
		total := 0.0
		for _, p := range ev.Payouts {
			total += p
		}
		if _, err := m.history.Append(storage.RoundRecord{
			Bet:    ev.Bet,
			Payout: total,
			NetWin: ev.NetWin,
			Hands:  ev.Hands,
			Dealer: ev.Dealer,
		}); err != nil {
			m.logger.Warn("failed to append round history", "error", err)
		}
	}
}

func (m *PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key := msg.String(); key == "ctrl+c" || key == "esc" {
		return m.quit()
	}

	m.errMsg = ""

	switch m.round.Phase {
	case game.Betting:
		return m.handleBettingKey(msg)
	case game.PlayerTurn:
		return m.handlePlayerKey(msg)
	case game.Complete:
		return m.handleCompleteKey(msg)
	default:
		// Dealing and dealer turn are animation phases with no input.
		return m, nil
	}
}

func (m *PlayModel) handleBettingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		amount, err := strconv.Atoi(strings.TrimSpace(m.betInput.Value()))
		if err != nil {
			m.errMsg = "enter a whole-dollar bet"
			return m, nil
		}
		if amount < m.minBet || amount > m.maxBet {
			m.errMsg = fmt.Sprintf("bet must be between $%d and $%d", m.minBet, m.maxBet)
			return m, nil
		}
		if err := m.engine.PlaceBet(amount); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.betInput.SetValue("")
		m.round = m.engine.State()
		return m, nil
	}

	var cmd tea.Cmd
	m.betInput, cmd = m.betInput.Update(msg)
	return m, cmd
}

func (m *PlayModel) handlePlayerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch msg.String() {
	case "h":
		err = m.engine.Hit()
	case "s":
		err = m.engine.Stand()
	case "d":
		err = m.engine.DoubleDown()
	case "p":
		err = m.engine.Split()
	case "r":
		err = m.engine.Surrender()
	case "?":
		m.showHint = !m.showHint
		return m, nil
	case "q":
		return m.quit()
	default:
		return m, nil
	}

	if err != nil {
		m.errMsg = err.Error()
	}
	m.round = m.engine.State()
	return m, nil
}

func (m *PlayModel) handleCompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "n":
		if err := m.engine.ResetForNewHand(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.round = m.engine.State()
		m.betInput.Focus()
		return m, textinput.Blink
	case "g":
		m.engine.NewGame()
		m.round = m.engine.State()
		m.betInput.Focus()
		return m, textinput.Blink
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m *PlayModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.persist()
	return m, tea.Sequence(tea.ClearScreen, tea.Quit)
}

// persist saves the live round and statistics so the next `play` resumes
// where this one left off.
func (m *PlayModel) persist() {
	if m.store == nil {
		return
	}
	if err := m.store.SaveRound(m.engine.State()); err != nil {
		m.logger.Warn("failed to save round", "error", err)
	}
	if err := m.store.SaveStats(m.stats); err != nil {
		m.logger.Warn("failed to save statistics", "error", err)
	}
}

// View implements tea.Model.
func (m *PlayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("Blackjack Trainer"))
	b.WriteString("  ")
	b.WriteString(BankStyle.Render(fmt.Sprintf("Bank: $%.2f", m.round.Bank)))
	if m.round.CurrentBet > 0 {
		b.WriteString("  ")
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Bet: $%d", m.round.CurrentBet)))
	}
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Shoe: %d", len(m.round.Deck))))
	b.WriteString("\n\n")

	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderPrompt())

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.errMsg))
	}
	if m.toast != "" {
		b.WriteString("\n")
		b.WriteString(ToastStyle.Render(m.toast))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStats())
	return b.String()
}

func (m *PlayModel) renderTable() string {
	var b strings.Builder

	hideHole := m.round.Phase == game.PlayerTurn || m.round.Phase == game.Dealing
	b.WriteString(HandLabelStyle.Render("Dealer"))
	b.WriteString("  ")
	b.WriteString(formatDealerHand(m.round.DealerHand, hideHole))
	b.WriteString("\n\n")

	if len(m.round.PlayerHands) == 0 {
		b.WriteString(InfoStyle.Render("Place a bet to deal."))
		b.WriteString("\n")
		return b.String()
	}

	for i, hand := range m.round.PlayerHands {
		label := "You"
		if len(m.round.PlayerHands) > 1 {
			label = fmt.Sprintf("Hand %d", i+1)
		}
		if i == m.round.ActiveHand && m.round.Phase == game.PlayerTurn {
			b.WriteString(ActiveHandStyle.Render("▶ " + label))
		} else {
			b.WriteString(HandLabelStyle.Render("  " + label))
		}
		b.WriteString("  ")
		b.WriteString(formatHand(hand))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *PlayModel) renderPrompt() string {
	switch m.round.Phase {
	case game.Betting:
		return InfoStyle.Render(fmt.Sprintf("Bet ($%d–$%d): ", m.minBet, m.maxBet)) +
			m.betInput.View() + "\n" +
			InfoStyle.Render("Enter to deal • Ctrl+C to quit")

	case game.PlayerTurn:
		var b strings.Builder
		b.WriteString(m.renderActions())
		if m.showHint {
			b.WriteString("\n")
			b.WriteString(m.renderHint())
		}
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("? toggles the chart hint • q to quit"))
		return b.String()

	case game.DealerTurn:
		return InfoStyle.Render("Dealer is drawing...")

	case game.Complete:
		result := "Round over."
		if m.round.Surrendered {
			result = "Surrendered, half the bet returned."
		}
		return ActionsStyle.Render(result) + " " +
			InfoStyle.Render("Enter for next hand • g for a new game • q to quit")

	default:
		return ""
	}
}

// renderActions shows only the transitions the snapshot says are legal,
// mirroring what the engine will accept.
func (m *PlayModel) renderActions() string {
	var actions []string
	if m.round.CanHit {
		actions = append(actions, SuccessStyle.Render("[h]it"))
	}
	if m.round.CanStand {
		actions = append(actions, SuccessStyle.Render("[s]tand"))
	}
	if m.round.CanDouble {
		actions = append(actions, ActionsStyle.Render("[d]ouble"))
	}
	if m.round.CanSplit {
		actions = append(actions, ActionsStyle.Render("s[p]lit"))
	}
	if m.round.CanSurrender {
		actions = append(actions, ErrorStyle.Render("surrende[r]"))
	}
	if len(actions) == 0 {
		return InfoStyle.Render("Waiting...")
	}
	return "Actions: " + strings.Join(actions, " ")
}

func (m *PlayModel) renderHint() string {
	if len(m.round.PlayerHands) == 0 || len(m.round.DealerHand.Cards) == 0 {
		return ""
	}
	action := strategy.SuggestForHand(m.round.Active(), m.round.DealerHand.Cards[0])
	return HintStyle.Render("Chart says: " + action.Description())
}

func (m *PlayModel) renderStats() string {
	if m.stats.HandsPlayed == 0 {
		return InfoStyle.Render("No hands recorded this session.")
	}
	line := fmt.Sprintf("Session: %d hands • %dW %dL %dP • win rate %.0f%% • P/L $%.2f",
		m.stats.HandsPlayed, m.stats.HandsWon, m.stats.HandsLost, m.stats.HandsPushed,
		m.stats.WinRate()*100, m.stats.ProfitLoss)
	return InfoStyle.Render(line)
}

var _ tea.Model = (*PlayModel)(nil)
