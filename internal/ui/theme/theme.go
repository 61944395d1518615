package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, blue and green like a bank statement
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#22C55E") // Green
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#16A34A") // Deep Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#DC2626") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Chosen = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	UserBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Padding(0, 1)

	ModelBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(BgCard).
			Padding(0, 1)
)

// LevelColor maps a score band label to its color.
func LevelColor(label string) color.Color {
	switch label {
	case "Vermelho":
		return Error
	case "Laranja":
		return Accent
	case "Amarelo":
		return Warning
	}
	return Secondary
}

// CategoryColor gives each diary category a stable color.
func CategoryColor(label string) color.Color {
	switch label {
	case "Moradia":
		return lipgloss.Color("#3B82F6")
	case "Transporte":
		return lipgloss.Color("#EF4444")
	case "Alimentação":
		return lipgloss.Color("#22C55E")
	case "Lazer":
		return lipgloss.Color("#F97316")
	case "Saúde":
		return lipgloss.Color("#A855F7")
	case "Essencial":
		return lipgloss.Color("#16A34A")
	case "Importante":
		return lipgloss.Color("#2563EB")
	case "Desejo":
		return lipgloss.Color("#EA580C")
	case "Dava pra Evitar":
		return lipgloss.Color("#DC2626")
	}
	return lipgloss.Color("#64748B")
}
