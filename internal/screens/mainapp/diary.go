package mainapp

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Simi-mac/educafin/internal/diary"
	"github.com/Simi-mac/educafin/internal/ui/components"
	"github.com/Simi-mac/educafin/internal/ui/theme"
)

const (
	fieldDescription = iota
	fieldAmount
	fieldCategory
	fieldFeeling
	fieldSave
)

// historyRows caps the entries listed under the summaries.
const historyRows = 10

// expenseForm is the "add expense" form of the diary tab.
type expenseForm struct {
	description components.TextInput
	amount      components.TextInput
	categories  []diary.Category
	feelings    []diary.Feeling
	category    int
	feeling     int
	field       int
	errMsg      string
	saved       bool
}

func newExpenseForm() expenseForm {
	f := expenseForm{
		description: components.NewTextInput("Descrição", "Ex: Almoço, Uber, Conta de luz", 120),
		amount:      components.NewTextInput("Valor (R$)", "0,00", 16),
		categories:  diary.Categories(),
		feelings:    diary.Feelings(),
	}
	f.amount.Decimal = true
	f.category = max(slices.Index(f.categories, diary.DefaultCategory), 0)
	f.feeling = max(slices.Index(f.feelings, diary.DefaultFeeling), 0)
	return f
}

func (f *expenseForm) focus() tea.Cmd {
	f.blur()
	switch f.field {
	case fieldDescription:
		return f.description.Focus()
	case fieldAmount:
		return f.amount.Focus()
	}
	return nil
}

func (f *expenseForm) blur() {
	f.description.Blur()
	f.amount.Blur()
}

func (f *expenseForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.field {
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldAmount:
		f.amount, cmd = f.amount.Update(msg)
	}
	return cmd
}

// reset clears the form for the next entry and returns to the first field.
func (f *expenseForm) reset() {
	f.description.Reset()
	f.amount.Reset()
	f.category = max(slices.Index(f.categories, diary.DefaultCategory), 0)
	f.feeling = max(slices.Index(f.feelings, diary.DefaultFeeling), 0)
	f.field = fieldDescription
	f.errMsg = ""
}

func (f *expenseForm) cycle(dir int) {
	switch f.field {
	case fieldCategory:
		n := len(f.categories)
		f.category = ((f.category+dir)%n + n) % n
	case fieldFeeling:
		n := len(f.feelings)
		f.feeling = ((f.feeling+dir)%n + n) % n
	}
}

func (s *MainAppScreen) updateDiary(kmsg tea.KeyPressMsg) tea.Cmd {
	f := &s.form
	switch kmsg.String() {
	case "up":
		if f.field > fieldDescription {
			f.field--
		}
		return f.focus()
	case "down":
		if f.field < fieldSave {
			f.field++
		}
		return f.focus()
	case "pgup":
		s.diaryOffset -= 10
		return nil
	case "pgdown":
		s.diaryOffset += 10
		return nil
	case "enter":
		if f.field == fieldSave {
			return s.submitExpense()
		}
		f.field++
		return f.focus()
	case "left":
		if f.field == fieldCategory || f.field == fieldFeeling {
			f.cycle(-1)
			return nil
		}
	case "right":
		if f.field == fieldCategory || f.field == fieldFeeling {
			f.cycle(1)
			return nil
		}
	}
	f.saved = false
	f.errMsg = ""
	return f.update(kmsg)
}

func (s *MainAppScreen) submitExpense() tea.Cmd {
	f := &s.form
	f.saved = false
	if s.env.Diary == nil {
		f.errMsg = "Diário indisponível."
		return nil
	}

	amount, err := diary.ParseAmount(f.amount.Value())
	if err != nil {
		f.amount.SetError("Informe um valor válido, ex: 25,50")
		f.field = fieldAmount
		return f.focus()
	}
	e, err := diary.NewExpense(f.description.Value(), amount,
		f.categories[f.category], f.feelings[f.feeling], time.Now())
	if err != nil {
		f.errMsg = err.Error()
		return nil
	}
	f.errMsg = ""
	return s.addExpense(e)
}

func (s *MainAppScreen) viewDiary(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.Card(s.form.view(), cw))
	b.WriteString("\n\n")

	switch {
	case s.diaryErr != "":
		b.WriteString(theme.ErrorText.Render(s.diaryErr))
	case !s.diaryLoaded:
		b.WriteString(theme.Hint.Render("Carregando..."))
	default:
		b.WriteString(viewSummary(diary.Summarize(s.expenses), cw))
		b.WriteString("\n")
		b.WriteString(viewHistory(s.expenses, cw))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, window(b.String(), height, &s.diaryOffset))
}

func (f expenseForm) view() string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Adicionar ao Diário Financeiro"))
	b.WriteString("\n\n")
	b.WriteString(f.description.View())
	b.WriteString("\n\n")
	b.WriteString(f.amount.View())
	b.WriteString("\n\n")

	b.WriteString(fieldLabel("Categoria", f.field == fieldCategory))
	b.WriteString("\n")
	labels := make([]string, len(f.categories))
	for i, c := range f.categories {
		labels[i] = string(c)
	}
	b.WriteString(options(labels, f.category, f.field == fieldCategory))
	b.WriteString("\n\n")

	b.WriteString(fieldLabel("Como você se sente sobre este gasto?", f.field == fieldFeeling))
	b.WriteString("\n")
	labels = make([]string, len(f.feelings))
	for i, fe := range f.feelings {
		labels[i] = fe.Icon() + " " + string(fe)
	}
	b.WriteString(options(labels, f.feeling, f.field == fieldFeeling))
	b.WriteString("\n\n")

	b.WriteString(components.NewButton("Salvar Gasto", f.field == fieldSave, nil).View())
	switch {
	case f.errMsg != "":
		b.WriteString("\n" + theme.ErrorText.Render(f.errMsg))
	case f.saved:
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Success).Render("Gasto registrado!"))
	}
	return b.String()
}

func fieldLabel(label string, focused bool) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if focused {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(label)
}

// options renders choices as wrapped chips with the chosen one
// highlighted.
func options(labels []string, chosen int, focused bool) string {
	chips := make([]string, len(labels))
	for i, l := range labels {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.TextDim)
		if i == chosen {
			style = style.Foreground(theme.Text).Background(theme.Border).Bold(true)
			if focused {
				style = style.Background(theme.Primary)
			}
		}
		chips[i] = style.Render(l)
	}
	return strings.Join(chips, " ")
}

func viewSummary(sum diary.Summary, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render(fmt.Sprintf("Total: %s", diary.FormatBRL(sum.Total))))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  (%d gastos)", sum.Count)))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render("Resumo por Categoria"))
	b.WriteString("\n")
	b.WriteString(breakdown(sum.ByCategory, cw, nil))
	b.WriteString("\n")

	b.WriteString(theme.Heading.Render("Resumo por Sentimento"))
	b.WriteString("\n")
	b.WriteString(breakdown(sum.ByFeeling, cw, func(label string) string {
		return diary.Feeling(label).Icon() + " " + label
	}))
	return b.String()
}

func breakdown(parts []diary.Slice, cw int, label func(string) string) string {
	if len(parts) == 0 {
		return theme.Hint.Render("  Sem dados ainda.") + "\n"
	}
	var b strings.Builder
	for _, sl := range parts {
		l := sl.Label
		if label != nil {
			l = label(l)
		}
		bar := components.NewProgressBar(l, sl.Percent/100, false, cw)
		bar.LabelWidth = 20
		bar.Suffix = diary.FormatBRL(sl.Amount) + " · " + diary.FormatPercent(sl.Percent)
		bar.Color = theme.CategoryColor(sl.Label)
		b.WriteString(bar.View())
		b.WriteString("\n")
	}
	return b.String()
}

func viewHistory(expenses []diary.Expense, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Histórico"))
	b.WriteString("\n")
	if len(expenses) == 0 {
		b.WriteString(theme.Hint.Render("Nenhuma despesa registrada ainda."))
		return b.String()
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	amountStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descWidth := max(cw-38, 10)
	for i, e := range expenses {
		if i == historyRows {
			b.WriteString(dim.Render(fmt.Sprintf("  ... e mais %d", len(expenses)-historyRows)))
			b.WriteString("\n")
			break
		}
		desc := e.Description
		if r := []rune(desc); len(r) > descWidth {
			desc = string(r[:descWidth-1]) + "…"
		}
		fmt.Fprintf(&b, "%s  %s %s  %s %s\n",
			dim.Render(e.Date.Format("02/01")),
			theme.Body.Width(descWidth).Render(desc),
			amountStyle.Render(fmt.Sprintf("%12s", diary.FormatBRL(e.Amount))),
			dim.Render(string(e.Category)),
			e.Feeling.Icon())
	}
	return b.String()
}
