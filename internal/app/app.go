package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/journey"
	"github.com/Simi-mac/educafin/internal/router"
	"github.com/Simi-mac/educafin/internal/screen"
	"github.com/Simi-mac/educafin/internal/screens/mainapp"
	"github.com/Simi-mac/educafin/internal/screens/onboarding"
	"github.com/Simi-mac/educafin/internal/screens/questionnaire"
	"github.com/Simi-mac/educafin/internal/screens/results"
	"github.com/Simi-mac/educafin/internal/screens/welcome"
	"github.com/Simi-mac/educafin/internal/store"
	"github.com/Simi-mac/educafin/internal/ui/layout"
)

const saveTimeout = 5 * time.Second

// Options holds dependencies for the TUI.
type Options struct {
	Env          *screen.Env
	SnapshotRepo store.SnapshotRepo

	// SkipWelcome starts directly on the screen of the journey's stage.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model. It owns the journey transitions
// that span screens: stage changes, async results and persistence.
type AppModel struct {
	router    *router.Router
	env       *screen.Env
	snapshots store.SnapshotRepo
	logger    *zap.Logger
	width     int
	height    int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := AppModel{
		env:       opts.Env,
		snapshots: opts.SnapshotRepo,
		logger:    logger,
	}
	first := ForStage(opts.Env)
	if !opts.SkipWelcome {
		first = welcome.New(func() screen.Screen { return ForStage(opts.Env) })
	}
	m.router = router.New(first)
	return m
}

// ForStage returns the screen that shows the journey's current stage.
func ForStage(env *screen.Env) screen.Screen {
	switch env.Journey.Stage() {
	case journey.StageResults:
		return results.New(env)
	case journey.StageOnboarding:
		return onboarding.New(env)
	case journey.StageMainApp:
		return mainapp.New(env)
	}
	return questionnaire.New(env)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "ctrl+r":
			if m.env.Journey.Stage() != journey.StageQuestionnaire {
				m.env.Journey.Restart()
				m.logger.Info("journey restarted")
				return m, m.showStage()
			}
			return m, nil
		}

	case screen.StageChangedMsg:
		return m, m.showStage()

	case screen.SaveMsg:
		m.save()
		return m, nil

	case screen.OnboardingResultMsg:
		return m, m.applyOnboarding(msg)

	case screen.AdviceResultMsg:
		return m, m.applyAdvice(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// showStage persists the journey and replaces the whole stack with the
// screen of its stage.
func (m AppModel) showStage() tea.Cmd {
	m.save()
	return m.router.Reset(ForStage(m.env))
}

func (m AppModel) applyOnboarding(msg screen.OnboardingResultMsg) tea.Cmd {
	j := m.env.Journey
	if msg.Err != nil {
		err := j.FailOnboarding(msg.Ticket, msg.Err)
		if errors.Is(err, journey.ErrStale) {
			m.logger.Debug("stale onboarding result dropped", zap.Error(msg.Err))
			return nil
		}
		m.logger.Warn("onboarding failed", zap.Error(msg.Err))
		return m.router.Update(msg)
	}

	if err := j.CompleteOnboarding(msg.Ticket, msg.Data); err != nil {
		if errors.Is(err, journey.ErrStale) {
			m.logger.Debug("stale onboarding result dropped")
			return nil
		}
		m.logger.Error("apply onboarding", zap.Error(err))
		return nil
	}
	m.logger.Info("onboarding complete", zap.String("stage", j.Stage().String()))
	return m.showStage()
}

func (m AppModel) applyAdvice(msg screen.AdviceResultMsg) tea.Cmd {
	j := m.env.Journey
	var err error
	if msg.Err != nil {
		m.logger.Warn("advice failed", zap.Error(msg.Err))
		err = j.AppendFailure(msg.Ticket)
	} else {
		err = j.AppendReply(msg.Ticket, msg.Text)
	}
	if errors.Is(err, journey.ErrStale) {
		m.logger.Debug("stale advice result dropped")
		return nil
	}
	if err != nil {
		m.logger.Error("apply advice", zap.Error(err))
		return nil
	}
	m.save()
	return m.router.Update(msg)
}

func (m AppModel) save() {
	if m.snapshots == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := journey.Save(ctx, m.snapshots, m.env.Journey); err != nil {
		m.logger.Error("save journey", zap.Error(err))
	}
}

// status is the header summary of the assessment, if there is one.
func (m AppModel) status() string {
	a := m.env.Journey.Assessment()
	if a == nil {
		return ""
	}
	level := assessment.LevelFor(a.Score)
	return fmt.Sprintf("%s %d%%", level.Emoji, assessment.RoundedScore(a.Score))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	if m.router.Depth() > 1 {
		footerHints = append(footerHints, layout.KeyHint{Key: "Esc", Description: "Voltar"})
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Sair"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
