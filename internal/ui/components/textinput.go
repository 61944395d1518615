package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Simi-mac/educafin/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with the app styling.
type TextInput struct {
	Model   textinput.Model
	Label   string
	Decimal bool // accept only digits and one decimal separator
	errMsg  string
}

// NewTextInput creates a new styled text input. A charLimit of 0 means no
// limit.
func NewTextInput(label, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti, Label: label}
}

// Init focuses the input.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Focus gives the input the cursor.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes the cursor.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has the cursor.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Decimal {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && !isDecimalRune(key[0]) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if _, ok := msg.(tea.KeyPressMsg); ok {
		t.errMsg = ""
	}
	return t, cmd
}

func isDecimalRune(c byte) bool {
	return (c >= '0' && c <= '9') || c == ',' || c == '.'
}

// View renders the label, the input and any validation message.
func (t TextInput) View() string {
	var s string
	if t.Label != "" {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if t.Focused() {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		s = style.Render(t.Label) + "\n"
	}
	s += t.Model.View()
	if t.errMsg != "" {
		s += "\n" + theme.ErrorText.Render(t.errMsg)
	}
	return s
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// Reset clears the value and any message.
func (t *TextInput) Reset() {
	t.Model.Reset()
	t.errMsg = ""
}

// SetError shows msg under the input until the next key press.
func (t *TextInput) SetError(msg string) {
	t.errMsg = msg
}

// Error returns the message currently shown, if any.
func (t TextInput) Error() string {
	return t.errMsg
}
