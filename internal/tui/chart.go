package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/blackjacktrainer/internal/strategy"
)

// dealerUpcards is the column order of every chart table: 2 through 10,
// then ace (shown as A, valued 11).
var dealerUpcards = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}

var chartCellStyles = map[strategy.Action]lipgloss.Style{
	strategy.Hit:              lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
	strategy.Stand:            SuccessStyle,
	strategy.DoubleOrHit:      ActionsStyle,
	strategy.Split:            HintStyle,
	strategy.SurrenderOrHit:   ErrorStyle,
	strategy.SurrenderOrStand: ErrorStyle,
}

// RenderChart renders the full basic strategy chart for terminal output.
func RenderChart() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Basic Strategy"))
	b.WriteString("\n\n")

	b.WriteString(chartTable("Hard totals", hardRows()))
	b.WriteString("\n")
	b.WriteString(chartTable("Soft totals", softRows()))
	b.WriteString("\n")
	b.WriteString(chartTable("Pairs", pairRows()))
	b.WriteString("\n")
	b.WriteString(chartLegend())
	return b.String()
}

type chartRow struct {
	label   string
	actions []strategy.Action
}

func hardRows() []chartRow {
	var rows []chartRow
	for total := 20; total >= 5; total-- {
		row := chartRow{label: fmt.Sprintf("%d", total)}
		for _, up := range dealerUpcards {
			row.actions = append(row.actions, strategy.Suggest(strategy.HardTotal, total, up))
		}
		rows = append(rows, row)
	}
	return rows
}

func softRows() []chartRow {
	var rows []chartRow
	for total := 20; total >= 13; total-- {
		// A soft total is an ace plus the remainder.
		row := chartRow{label: fmt.Sprintf("A,%d", total-11)}
		for _, up := range dealerUpcards {
			row.actions = append(row.actions, strategy.Suggest(strategy.SoftTotal, total, up))
		}
		rows = append(rows, row)
	}
	return rows
}

func pairRows() []chartRow {
	var rows []chartRow
	labels := map[int]string{11: "A,A", 10: "T,T"}
	for value := 11; value >= 2; value-- {
		label, ok := labels[value]
		if !ok {
			label = fmt.Sprintf("%d,%d", value, value)
		}
		row := chartRow{label: label}
		for _, up := range dealerUpcards {
			row.actions = append(row.actions, strategy.Suggest(strategy.Pair, value, up))
		}
		rows = append(rows, row)
	}
	return rows
}

func chartTable(title string, rows []chartRow) string {
	var b strings.Builder
	b.WriteString(HandLabelStyle.Render(title))
	b.WriteString("\n")

	b.WriteString("      ")
	for _, up := range dealerUpcards {
		label := fmt.Sprintf("%d", up)
		if up == 11 {
			label = "A"
		}
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%3s", label)))
	}
	b.WriteString("\n")

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%5s ", row.label))
		for _, action := range row.actions {
			style, ok := chartCellStyles[action]
			if !ok {
				style = InfoStyle
			}
			b.WriteString(style.Render(fmt.Sprintf("%3s", string(action))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func chartLegend() string {
	entries := []strategy.Action{
		strategy.Hit, strategy.Stand, strategy.DoubleOrHit,
		strategy.Split, strategy.SurrenderOrHit,
	}
	var parts []string
	for _, a := range entries {
		style := chartCellStyles[a]
		parts = append(parts, style.Render(string(a))+" "+InfoStyle.Render(a.Description()))
	}
	return strings.Join(parts, "\n")
}
