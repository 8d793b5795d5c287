// Package theme resolves, applies and persists the light/dark preference.
package theme

import (
	"fmt"
	"strings"
)

// Theme is a visual theme name.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// PreferenceKey is the store key holding the explicit choice.
const PreferenceKey = "preferred-theme"

// Parse validates a theme name.
func Parse(value string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", value)
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Label is the icon/text pair shown on the toggle control. It names the
// theme the toggle switches to.
type Label struct {
	Icon string
	Text string
}

// LabelFor returns the toggle label while t is applied.
func LabelFor(t Theme) Label {
	if t == Dark {
		return Label{Icon: "☀️", Text: "Light Mode"}
	}
	return Label{Icon: "🌙", Text: "Dark Mode"}
}

func (l Label) String() string {
	return l.Icon + " " + l.Text
}
