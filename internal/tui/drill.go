package tui

import (
	"fmt"
	rand "math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacktrainer/internal/deck"
	"github.com/lox/blackjacktrainer/internal/strategy"
)

// recentCardWindow is how many dealt cards stay visible. Keeping the tail
// short forces the player to actually carry the count.
const recentCardWindow = 8

// DrillModel is the card-counting practice view. Cards come off a real
// shoe one at a time; the player keeps a running hi-lo count and is
// checked whenever they submit a guess.
type DrillModel struct {
	logger *log.Logger
	shoe   *deck.Shoe

	countInput textinput.Model

	dealt    []deck.Card
	running  int
	checks   int
	correct  int
	feedback string
	revealed bool
	finished bool

	width    int
	height   int
	quitting bool
}

// NewDrillModel creates a drill over a freshly shuffled shoe.
func NewDrillModel(logger *log.Logger, numDecks int, rng *rand.Rand) *DrillModel {
	ti := textinput.New()
	ti.Placeholder = "running count"
	ti.CharLimit = 5
	ti.Width = 14
	ti.Prompt = "count = "
	ti.PromptStyle = HintStyle

	return &DrillModel{
		logger:     logger.WithPrefix("drill"),
		shoe:       deck.NewShoe(numDecks, rng),
		countInput: ti,
	}
}

// Init implements tea.Model.
func (m *DrillModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *DrillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)

		case "q":
			if !m.countInput.Focused() {
				m.quitting = true
				return m, tea.Sequence(tea.ClearScreen, tea.Quit)
			}

		case " ":
			if !m.countInput.Focused() {
				m.draw()
				return m, nil
			}

		case "c":
			if !m.countInput.Focused() && len(m.dealt) > 0 && !m.finished {
				m.countInput.Focus()
				m.feedback = ""
				return m, textinput.Blink
			}

		case "v":
			if !m.countInput.Focused() {
				m.revealed = !m.revealed
				return m, nil
			}

		case "enter":
			if m.countInput.Focused() {
				m.check()
				return m, nil
			}
			if m.finished {
				m.quitting = true
				return m, tea.Sequence(tea.ClearScreen, tea.Quit)
			}
			m.draw()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.countInput, cmd = m.countInput.Update(msg)
	return m, cmd
}

func (m *DrillModel) draw() {
	card, ok := m.shoe.Draw()
	if !ok {
		m.finished = true
		return
	}
	m.dealt = append(m.dealt, card)
	m.running += strategy.CountValue(card.Rank)
	m.feedback = ""
	if m.shoe.Remaining() == 0 {
		m.finished = true
	}
}

func (m *DrillModel) check() {
	guess, err := strconv.Atoi(strings.TrimSpace(m.countInput.Value()))
	if err != nil {
		m.feedback = ErrorStyle.Render("enter a whole number")
		return
	}

	m.checks++
	if guess == m.running {
		m.correct++
		m.feedback = SuccessStyle.Render("Correct!")
	} else {
		m.feedback = ErrorStyle.Render(fmt.Sprintf("Off by %d: the count is %+d", guess-m.running, m.running))
	}

	m.countInput.SetValue("")
	m.countInput.Blur()
}

// View implements tea.Model.
func (m *DrillModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Counting Drill"))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("dealt %d • %d left in shoe", len(m.dealt), m.shoe.Remaining())))
	b.WriteString("\n\n")

	b.WriteString(m.renderCards())
	b.WriteString("\n\n")

	if m.revealed {
		b.WriteString(HintStyle.Render(fmt.Sprintf("Running count: %+d", m.running)))
		b.WriteString("\n")
	}
	if m.feedback != "" {
		b.WriteString(m.feedback)
		b.WriteString("\n")
	}

	if m.finished {
		b.WriteString("\n")
		b.WriteString(ActionsStyle.Render("Shoe finished."))
		b.WriteString(" ")
		b.WriteString(m.renderScore())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Enter to exit"))
		return b.String()
	}

	if m.countInput.Focused() {
		b.WriteString("\n")
		b.WriteString(m.countInput.View())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Enter to check • Esc to quit"))
	} else {
		b.WriteString("\n")
		b.WriteString(m.renderScore())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Space deals a card • c to check your count • v reveals • q to quit"))
	}
	return b.String()
}

func (m *DrillModel) renderCards() string {
	if len(m.dealt) == 0 {
		return InfoStyle.Render("Press Space to deal the first card.")
	}

	start := 0
	if len(m.dealt) > recentCardWindow {
		start = len(m.dealt) - recentCardWindow
	}

	var parts []string
	if start > 0 {
		parts = append(parts, InfoStyle.Render(fmt.Sprintf("…%d…", start)))
	}
	for _, c := range m.dealt[start:] {
		parts = append(parts, formatCard(c))
	}
	return strings.Join(parts, " ")
}

func (m *DrillModel) renderScore() string {
	if m.checks == 0 {
		return InfoStyle.Render("No checks yet.")
	}
	return InfoStyle.Render(fmt.Sprintf("Checks: %d/%d correct", m.correct, m.checks))
}

var _ tea.Model = (*DrillModel)(nil)
