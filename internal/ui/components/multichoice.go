package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/Simi-mac/educafin/internal/ui/theme"
)

// MultiChoice lets the user pick one of a question's options.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int
	Chosen   int // -1 until Enter is pressed
}

// NewMultiChoice creates a selector with the cursor on the option equal to
// current, if any.
func NewMultiChoice(question string, options []string, current string) MultiChoice {
	m := MultiChoice{
		Question: question,
		Options:  options,
		Chosen:   -1,
	}
	for i, opt := range options {
		if opt == current {
			m.Selected = i
			m.Chosen = i
		}
	}
	return m
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and records the choice on Enter. Number keys
// pick an option directly.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space":
		m.Chosen = m.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.Chosen = i
			}
		}
	}

	return m, nil
}

// Answered reports whether an option was chosen.
func (m MultiChoice) Answered() bool {
	return m.Chosen >= 0 && m.Chosen < len(m.Options)
}

// Answer returns the chosen option text, or "" if none.
func (m MultiChoice) Answer() string {
	if !m.Answered() {
		return ""
	}
	return m.Options[m.Chosen]
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		mark := "○"
		if i == m.Chosen {
			mark = "●"
		}
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %d) %s", prefix, mark, i+1, opt)

		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		case i == m.Chosen:
			b.WriteString(theme.Chosen.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
