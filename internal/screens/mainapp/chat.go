package mainapp

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Simi-mac/educafin/internal/coach"
	"github.com/Simi-mac/educafin/internal/journey"
	"github.com/Simi-mac/educafin/internal/screen"
	"github.com/Simi-mac/educafin/internal/ui/components"
	"github.com/Simi-mac/educafin/internal/ui/theme"
)

func (s *MainAppScreen) updateChat(kmsg tea.KeyPressMsg) tea.Cmd {
	switch kmsg.String() {
	case "pgup":
		s.chatOffset += 5
		return nil
	case "pgdown":
		s.chatOffset = max(s.chatOffset-5, 0)
		return nil
	case "enter":
		return s.send()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return cmd
}

// send appends the question and asks the assistant, passing the
// conversation as it was before the question.
func (s *MainAppScreen) send() tea.Cmd {
	j := s.env.Journey
	prompt := strings.TrimSpace(s.input.Value())
	history := j.History()

	t, err := j.AppendUser(prompt)
	if err != nil {
		if errors.Is(err, coach.ErrEmptyPrompt) {
			s.input.SetError(coach.UserMessage(err))
			return nil
		}
		s.logError("append chat message", err)
		return nil
	}
	s.input.Reset()
	s.chatOffset = 0

	if s.env.Coach == nil {
		return tea.Batch(screen.Save, func() tea.Msg {
			return screen.AdviceResultMsg{Ticket: t, Err: &coach.ConfigurationError{}}
		})
	}
	return tea.Batch(screen.Save, s.env.RequestAdvice(t, history, prompt))
}

func (s *MainAppScreen) viewChat(width, height int) string {
	cw := components.ContentWidth(width)
	bubbleWidth := max(cw*3/4, 20)

	var b strings.Builder
	for _, m := range s.env.Journey.Chat() {
		b.WriteString(renderMessage(m, cw, bubbleWidth))
		b.WriteString("\n\n")
	}
	if s.env.Journey.ChatPending() {
		b.WriteString(theme.Hint.Render("Digitando..."))
		b.WriteString("\n")
	}
	if s.env.Coach != nil && !s.env.Coach.Ready() {
		b.WriteString(theme.Hint.Render("O assistente não está configurado; as respostas não estarão disponíveis."))
		b.WriteString("\n")
	}

	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(cw - 2).
		Render(s.input.View())
	inputHeight := lipgloss.Height(input)

	rows := max(height-inputHeight-1, 1)
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	s.chatOffset = min(s.chatOffset, max(len(lines)-rows, 0))
	end := len(lines) - s.chatOffset
	start := max(end-rows, 0)
	conversation := strings.Join(lines[start:end], "\n")
	if pad := rows - (end - start); pad > 0 {
		conversation = strings.Repeat("\n", pad) + conversation
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Width(cw).Render(conversation),
			"",
			input))
}

func renderMessage(m journey.ChatMessage, cw, bubbleWidth int) string {
	if m.Role == journey.RoleUser {
		bubble := theme.UserBubble.Width(bubbleWidth).Render(m.Text)
		return lipgloss.PlaceHorizontal(cw, lipgloss.Right, bubble)
	}
	style := theme.ModelBubble.Width(bubbleWidth)
	if m.Failed {
		return style.Foreground(theme.Error).Render(m.Text)
	}
	return style.Render(components.Markdown(m.Text, bubbleWidth-2))
}
