package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/coach"
	"github.com/Simi-mac/educafin/internal/journey"
	"github.com/Simi-mac/educafin/internal/ui/components"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score a filled-in questionnaire without the TUI",
	Long: "Score an answer sheet (YAML with name, email, goal and answers keyed by question id).\n" +
		"Use --answers - to read it from standard input.",
	RunE: runAssess,
}

// assessReport is the --json output of assess.
type assessReport struct {
	Name       string                `json:"name"`
	Goal       string                `json:"goal"`
	Score      float64               `json:"score"`
	Rounded    int                   `json:"roundedScore"`
	Level      string                `json:"level"`
	Message    string                `json:"message"`
	Feedback   []string              `json:"feedback"`
	Insights   []string              `json:"insights"`
	Track      string                `json:"track"`
	Missing    []string              `json:"missing,omitempty"`
	Onboarding *coach.OnboardingData `json:"onboarding,omitempty"`
	Transcript string                `json:"transcript,omitempty"`
}

func runAssess(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("answers")
	asJSON, _ := flags.GetBool("json")
	onboard, _ := flags.GetBool("onboard")
	withTranscript, _ := flags.GetBool("transcript")
	save, _ := flags.GetBool("save")

	sub, err := readSubmission(cmd, path)
	if err != nil {
		return err
	}
	if flags.Changed("name") {
		sub.Name, _ = flags.GetString("name")
	}
	if flags.Changed("email") {
		sub.Email, _ = flags.GetString("email")
	}
	if flags.Changed("goal") {
		sub.Goal, _ = flags.GetString("goal")
	}
	profile := sub.Profile()
	if err := profile.Validate(); err != nil {
		return err
	}

	d, err := setup(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	qs, err := d.questions()
	if err != nil {
		return err
	}
	a := assessment.Score(qs, sub.Answers)
	level := assessment.LevelFor(a.Score)
	track := coach.ClassifyTrack(a.Score)
	d.logger.Info("assessment scored", zap.Float64("score", a.Score), zap.String("track", track.String()))

	report := assessReport{
		Name:     profile.Name,
		Goal:     profile.Goal,
		Score:    a.Score,
		Rounded:  assessment.RoundedScore(a.Score),
		Level:    level.Label,
		Message:  level.Message,
		Feedback: a.Feedback,
		Insights: assessment.TopInsights(a, 3),
		Track:    track.Name(),
		Missing:  assessment.Missing(qs, sub.Answers),
	}
	if withTranscript {
		report.Transcript = assessment.Transcript(qs, profile, sub.Answers, a)
	}

	ctx := cmd.Context()
	var onboardErr error
	if onboard {
		svc := d.coach(ctx)
		report.Onboarding, onboardErr = svc.RequestOnboarding(ctx, a.Score, profile.Name, profile.Goal)
		if onboardErr != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), coach.UserMessage(onboardErr))
		}
	}

	if save {
		j := journey.New()
		if err := j.Submit(profile, sub.Answers, &a); err != nil {
			return err
		}
		if report.Onboarding != nil {
			tk, err := j.BeginOnboarding()
			if err != nil {
				return err
			}
			if err := j.CompleteOnboarding(tk, report.Onboarding); err != nil {
				return err
			}
		}
		if err := journey.Save(ctx, d.store.SnapshotRepo(), j); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	} else {
		printReport(out, report, level)
	}
	return onboardErr
}

func readSubmission(cmd *cobra.Command, path string) (*assessment.Submission, error) {
	if path == "" {
		return nil, fmt.Errorf("--answers is required")
	}
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open answers: %w", err)
		}
		defer f.Close()
		r = f
	}
	return assessment.ReadSubmission(r)
}

func printReport(w io.Writer, r assessReport, level assessment.Level) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintln(w, "Seu Diagnóstico Financeiro")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Nome:       %s\n", r.Name)
	fmt.Fprintf(w, "Pontuação:  %d%%  %s %s (%s)\n", r.Rounded, level.Emoji, level.Label, level.Title)
	fmt.Fprintf(w, "Trilha:     %s\n", r.Track)
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Message)

	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "\nPerguntas sem resposta: %s\n", strings.Join(r.Missing, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Principais Insights para Você:")
	if len(r.Insights) == 0 {
		fmt.Fprintln(w, "  Você atingiu a pontuação máxima em todas as perguntas.")
	}
	for _, in := range r.Insights {
		fmt.Fprintf(w, "  • %s\n", in)
	}

	if r.Onboarding != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, components.PlainMarkdown(r.Onboarding.WelcomeMessage))
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Sua Trilha de Aprendizado")
		for i, st := range r.Onboarding.TrackSteps {
			fmt.Fprintf(w, "  %d. %s\n     %s\n", i+1, st.Title, st.Description)
		}
	}

	if r.Transcript != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprint(w, r.Transcript)
	}
}

func init() {
	flags := assessCmd.Flags()
	flags.StringP("answers", "a", "", "YAML answer sheet, or - for stdin")
	flags.String("name", "", "Override the name in the answer sheet")
	flags.String("email", "", "Override the e-mail in the answer sheet")
	flags.String("goal", "", "Override the goal in the answer sheet")
	flags.Bool("onboard", false, "Also generate the personalized track")
	flags.Bool("transcript", false, "Print the plain-text copy of the answers")
	flags.Bool("json", false, "Print the result as JSON")
	flags.Bool("save", false, "Save the result as the current journey")
}
