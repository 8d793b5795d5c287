package theme

import "github.com/charmbracelet/lipgloss"

type colors struct {
	background lipgloss.Color
	element    lipgloss.Color
	text       lipgloss.Color
	muted      lipgloss.Color
	border     lipgloss.Color
	accent     lipgloss.Color
	danger     lipgloss.Color
}

var (
	lightColors = colors{
		background: lipgloss.Color("#FAFAFA"),
		element:    lipgloss.Color("#FFFFFF"),
		text:       lipgloss.Color("#111517"),
		muted:      lipgloss.Color("#858585"),
		border:     lipgloss.Color("#D0D0D0"),
		accent:     lipgloss.Color("#2B3945"),
		danger:     lipgloss.Color("#C0392B"),
	}
	darkColors = colors{
		background: lipgloss.Color("#202C37"),
		element:    lipgloss.Color("#2B3945"),
		text:       lipgloss.Color("#F0F0F0"),
		muted:      lipgloss.Color("#8C8C8C"),
		border:     lipgloss.Color("#4A4A4A"),
		accent:     lipgloss.Color("#C89A3A"),
		danger:     lipgloss.Color("#FF4D4F"),
	}
)

// Palette holds the styles of one theme.
type Palette struct {
	Theme Theme

	App          lipgloss.Style
	Header       lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Title        lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	Input        lipgloss.Style
	Footer       lipgloss.Style
}

// NewPalette builds the styles for t.
func NewPalette(t Theme) Palette {
	c := lightColors
	if t == Dark {
		c = darkColors
	}
	return Palette{
		Theme:  t,
		App:    lipgloss.NewStyle().Foreground(c.text).Background(c.background),
		Header: lipgloss.NewStyle().Foreground(c.text).Bold(true),
		Card: lipgloss.NewStyle().
			Foreground(c.text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(c.border),
		CardSelected: lipgloss.NewStyle().
			Foreground(c.text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(c.accent),
		Title: lipgloss.NewStyle().Foreground(c.text).Bold(true),
		Label: lipgloss.NewStyle().Foreground(c.text).Bold(true),
		Value: lipgloss.NewStyle().Foreground(c.muted),
		Muted: lipgloss.NewStyle().Foreground(c.muted),
		Error: lipgloss.NewStyle().Foreground(c.danger),
		Button: lipgloss.NewStyle().
			Foreground(c.text).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(c.border),
		ButtonActive: lipgloss.NewStyle().
			Foreground(c.accent).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(c.accent),
		Input: lipgloss.NewStyle().
			Foreground(c.text).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(c.border),
		Footer: lipgloss.NewStyle().Foreground(c.muted),
	}
}
