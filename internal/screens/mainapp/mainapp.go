package mainapp

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/diary"
	"github.com/Simi-mac/educafin/internal/journey"
	"github.com/Simi-mac/educafin/internal/screen"
	"github.com/Simi-mac/educafin/internal/ui/components"
	"github.com/Simi-mac/educafin/internal/ui/layout"
)

const storeTimeout = 5 * time.Second

// MainAppScreen is the app after onboarding: the learning track, the
// expense diary and the chat with the assistant, one tab each.
type MainAppScreen struct {
	env  *screen.Env
	tabs components.Menu

	journeyOffset int

	form        expenseForm
	expenses    []diary.Expense
	diaryLoaded bool
	diaryErr    string
	diaryOffset int

	input      components.TextInput
	chatOffset int
}

var _ screen.Screen = (*MainAppScreen)(nil)
var _ screen.KeyHintProvider = (*MainAppScreen)(nil)

// New creates the main app screen showing the journey's current view.
func New(env *screen.Env) *MainAppScreen {
	views := journey.Views()
	items := make([]components.MenuItem, len(views))
	for i, v := range views {
		items[i] = components.MenuItem{Label: v.Label()}
	}
	s := &MainAppScreen{
		env:   env,
		tabs:  components.NewMenu(items),
		form:  newExpenseForm(),
		input: components.NewTextInput("", "Pergunte sobre finanças, investimentos, orçamento...", 500),
	}
	s.tabs.Selected = viewIndex(env.Journey.View())
	return s
}

func viewIndex(v journey.View) int {
	for i, vw := range journey.Views() {
		if vw == v {
			return i
		}
	}
	return 0
}

func (s *MainAppScreen) Init() tea.Cmd {
	return tea.Batch(s.loadDiary(), s.focus())
}

func (s *MainAppScreen) Title() string {
	return s.env.Journey.View().Label()
}

func (s *MainAppScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Trocar aba"}}
	switch s.env.Journey.View() {
	case journey.ViewDiary:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Campos"},
			layout.KeyHint{Key: "←→", Description: "Opções"},
			layout.KeyHint{Key: "Enter", Description: "Salvar"},
		)
	case journey.ViewChat:
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Enviar"},
			layout.KeyHint{Key: "PgUp/PgDn", Description: "Rolar"},
		)
	default:
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Rolar"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Refazer"})
}

// diaryEmpty reports whether the diary is known to be empty. Until the
// first load it is treated as not empty.
func (s *MainAppScreen) diaryEmpty() bool {
	return s.diaryLoaded && len(s.expenses) == 0
}

func (s *MainAppScreen) loadDiary() tea.Cmd {
	d := s.env.Diary
	if d == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		list, err := d.List(ctx)
		return diaryLoadedMsg{expenses: list, err: err}
	}
}

func (s *MainAppScreen) addExpense(e diary.Expense) tea.Cmd {
	d := s.env.Diary
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return expenseSavedMsg{err: d.Add(ctx, e)}
	}
}

// setView switches tabs and asks for the journey to be saved.
func (s *MainAppScreen) setView(v journey.View) tea.Cmd {
	if err := s.env.Journey.SetView(v); err != nil {
		s.logError("set view", err)
		return nil
	}
	s.tabs.Selected = viewIndex(v)
	return tea.Batch(screen.Save, s.focus())
}

// focus gives the cursor to the input of the current view.
func (s *MainAppScreen) focus() tea.Cmd {
	s.input.Blur()
	s.form.blur()
	switch s.env.Journey.View() {
	case journey.ViewChat:
		return s.input.Focus()
	case journey.ViewDiary:
		return s.form.focus()
	}
	return nil
}

func (s *MainAppScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case diaryLoadedMsg:
		if msg.err != nil {
			s.diaryErr = "Não foi possível carregar o diário."
			s.logError("load diary", msg.err)
			return s, nil
		}
		s.expenses = msg.expenses
		s.diaryLoaded = true
		s.diaryErr = ""
		return s, nil

	case expenseSavedMsg:
		if msg.err != nil {
			s.form.errMsg = "Não foi possível salvar o gasto."
			s.logError("add expense", msg.err)
			return s, nil
		}
		s.form.reset()
		s.form.saved = true
		return s, tea.Batch(s.loadDiary(), s.form.focus())

	case screen.AdviceResultMsg:
		s.chatOffset = 0
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			s.tabs.Next()
			return s, s.setView(journey.Views()[s.tabs.Selected])
		case "shift+tab":
			s.tabs.Prev()
			return s, s.setView(journey.Views()[s.tabs.Selected])
		}
		switch s.env.Journey.View() {
		case journey.ViewDiary:
			return s, s.updateDiary(msg)
		case journey.ViewChat:
			return s, s.updateChat(msg)
		default:
			return s, s.updateJourney(msg)
		}
	}

	// Cursor blinks and other input internals.
	var cmd tea.Cmd
	switch s.env.Journey.View() {
	case journey.ViewChat:
		s.input, cmd = s.input.Update(msg)
	case journey.ViewDiary:
		cmd = s.form.update(msg)
	}
	return s, cmd
}

func (s *MainAppScreen) View(width, height int) string {
	tabs := s.tabs.TabsView()
	bodyHeight := max(height-2, 1)

	var body string
	switch s.env.Journey.View() {
	case journey.ViewDiary:
		body = s.viewDiary(width, bodyHeight)
	case journey.ViewChat:
		body = s.viewChat(width, bodyHeight)
	default:
		body = s.viewJourney(width, bodyHeight)
	}
	return tabs + "\n\n" + body
}

func (s *MainAppScreen) logError(op string, err error) {
	if s.env.Logger != nil {
		s.env.Logger.Error(op, zap.Error(err))
	}
}

// window returns the rows of content starting at offset, clamping offset.
func window(content string, height int, offset *int) string {
	lines := strings.Split(content, "\n")
	*offset = min(max(*offset, 0), max(len(lines)-height, 0))
	end := min(*offset+height, len(lines))
	return strings.Join(lines[*offset:end], "\n")
}
