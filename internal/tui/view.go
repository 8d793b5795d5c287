package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/worldview/internal/explorer"
	"github.com/verte-zerg/worldview/internal/model"
	"github.com/verte-zerg/worldview/internal/restcountries"
)

const (
	appTitle = "Where in the world?"

	cardWidth  = 30
	cardHeight = 6
	cardGap    = 1

	// header, blank, search box (3), blank, footer
	chromeHeight = 7
)

// View implements tea.Model.
func (m *Model) View() string {
	p := m.themes.Palette()
	v := m.ctrl.Render()

	var body string
	switch {
	case v.Phase == explorer.PhaseLoading:
		body = m.spinner.View() + " " + p.Muted.Render(v.Message)
	case v.Phase == explorer.PhaseError:
		hint := "press q to quit"
		if v.CanGoBack {
			hint = "press esc to go back"
		}
		body = p.Error.Render(v.Message) + "\n\n" + p.Muted.Render(hint)
	case v.Phase == explorer.PhaseDetail && v.Detail != nil:
		body = m.detail.View()
	case len(v.Cards) == 0:
		body = p.Muted.Render(v.Message)
	default:
		body = m.renderGrid(v.Cards)
	}
	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)

	sections := []string{
		m.renderHeader(),
		"",
		m.renderControls(v),
		"",
		body,
		m.renderFooter(v),
	}
	return p.App.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderHeader() string {
	p := m.themes.Palette()
	title := p.Header.Render(appTitle)
	toggle := p.Muted.Render(m.themes.Label().String())
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + toggle
}

func (m *Model) renderControls(v explorer.View) string {
	p := m.themes.Palette()
	input := p.Input.Render(m.search.View())
	region := v.Region
	if region == "" {
		region = "All regions"
	}
	selector := p.Input.Render(p.Value.Render("Filter by Region: ") + p.Label.Render(region))
	return lipgloss.JoinHorizontal(lipgloss.Top, input, " ", selector)
}

func (m *Model) renderFooter(v explorer.View) string {
	p := m.themes.Palette()
	bindings := m.keys.gridHelp()
	switch {
	case m.searching:
		bindings = m.keys.searchHelp()
	case v.Phase == explorer.PhaseDetail:
		bindings = m.keys.detailHelp()
	}
	segments := []string{m.help.ShortHelpView(bindings)}
	if v.Phase == explorer.PhaseReady || v.Phase == explorer.PhaseDetail {
		segments = append(segments, p.Footer.Render(fmt.Sprintf("%d of %d countries", len(v.Cards), len(m.ctrl.Countries()))))
	}
	if v.Source == restcountries.SourceFallback && v.Phase != explorer.PhaseLoading {
		segments = append(segments, p.Footer.Render("offline data"))
	}
	if v.Pending {
		segments = append(segments, m.spinner.View())
	}
	return strings.Join(segments, p.Footer.Render(" · "))
}

func (m *Model) renderGrid(cards []model.Fragment) string {
	cols := m.columns()
	first := m.rowOffset * cols
	last := first + m.visibleRows()*cols
	if last > len(cards) {
		last = len(cards)
	}
	var rows []string
	for start := first; start < last; start += cols {
		end := start + cols
		if end > last {
			end = last
		}
		row := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, strings.Repeat(" ", cardGap))
			}
			row = append(row, m.renderCard(cards[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderCard(card model.Fragment, selected bool) string {
	p := m.themes.Palette()
	style := p.Card
	if selected {
		style = p.CardSelected
	}
	inner := cardWidth - 4
	title := card.Title
	if card.FlagEmoji != "" {
		title = card.FlagEmoji + " " + title
	}
	lines := []string{p.Title.Render(truncate(title, inner))}
	for _, field := range card.Fields {
		label := field.Label + ": "
		value := truncate(field.Value, inner-runewidth.StringWidth(label))
		lines = append(lines, p.Label.Render(label)+p.Value.Render(value))
	}
	return style.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderDetail(f model.Fragment) string {
	p := m.themes.Palette()
	width := m.width
	if width < 20 {
		width = 20
	}

	title := f.Title
	if f.FlagEmoji != "" {
		title = f.FlagEmoji + " " + title
	}
	lines := []string{p.Title.Render(title)}
	if f.FlagURL != "" {
		lines = append(lines, p.Muted.Render(truncate(f.FlagURL, width)))
	}
	lines = append(lines, "")

	for _, field := range f.Fields {
		label := field.Label + ": "
		labelWidth := runewidth.StringWidth(label)
		wrapped := wrapWords(field.Value, width-labelWidth)
		lines = append(lines, p.Label.Render(label)+p.Value.Render(wrapped[0]))
		indent := strings.Repeat(" ", labelWidth)
		for _, rest := range wrapped[1:] {
			lines = append(lines, indent+p.Value.Render(rest))
		}
	}

	if f.Borders != nil && len(f.Borders.Actions) > 0 {
		buttons := make([]string, 0, len(f.Borders.Actions))
		for i, action := range f.Borders.Actions {
			style := p.Button
			if i == m.borderCursor {
				style = p.ButtonActive
			}
			buttons = append(buttons, style.Render(action.Label))
		}
		lines = append(lines, "", p.Label.Render(f.Borders.Heading+":"), flowBlocks(buttons, width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) columns() int {
	cols := (m.width + cardGap) / (cardWidth + cardGap)
	if cols < 1 {
		return 1
	}
	return cols
}

func (m *Model) visibleRows() int {
	rows := m.bodyHeight() / cardHeight
	if rows < 1 {
		return 1
	}
	return rows
}

func (m *Model) bodyHeight() int {
	h := m.height - chromeHeight
	if h < cardHeight {
		return cardHeight
	}
	return h
}
