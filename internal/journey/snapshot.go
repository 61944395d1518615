package journey

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/Simi-mac/educafin/internal/assessment"
	"github.com/Simi-mac/educafin/internal/coach"
	"github.com/Simi-mac/educafin/internal/store"
)

// SnapshotVersion is the version of the persisted journey format.
const SnapshotVersion = 1

// Snapshot is the persisted form of a Journey. In-flight requests are not
// part of it; a journey restored in the onboarding stage waits for the
// user to retry.
type Snapshot struct {
	Stage      Stage                  `json:"stage"`
	View       View                   `json:"view"`
	Profile    assessment.Profile     `json:"profile"`
	Answers    assessment.AnswerMap   `json:"answers,omitempty"`
	Assessment *assessment.Assessment `json:"assessment,omitempty"`
	Onboarding *coach.OnboardingData  `json:"onboarding,omitempty"`
	Chat       []ChatMessage          `json:"chat,omitempty"`
}

// Snapshot captures the current state.
func (j *Journey) Snapshot() Snapshot {
	s := Snapshot{
		Stage:   j.stage,
		View:    j.view,
		Profile: j.profile,
		Answers: j.Answers(),
		Chat:    slices.Clone(j.chat),
	}
	if j.result != nil {
		a := *j.result
		a.Feedback = slices.Clone(j.result.Feedback)
		s.Assessment = &a
	}
	if j.onboarding != nil {
		d := *j.onboarding
		s.Onboarding = &d
	}
	return s
}

// Restore rebuilds a journey from a snapshot, checking that the stage has
// the data it needs.
func Restore(s Snapshot) (*Journey, error) {
	switch s.Stage {
	case StageQuestionnaire:
	case StageResults, StageOnboarding:
		if s.Assessment == nil {
			return nil, fmt.Errorf("restore %s: %w", s.Stage, ErrNoAssessment)
		}
	case StageMainApp:
		if s.Assessment == nil {
			return nil, fmt.Errorf("restore %s: %w", s.Stage, ErrNoAssessment)
		}
		if s.Onboarding == nil {
			return nil, fmt.Errorf("restore %s: %w", s.Stage, ErrNoOnboarding)
		}
	default:
		return nil, fmt.Errorf("restore: %w: unknown stage %d", ErrInvalidTransition, int(s.Stage))
	}

	j := New()
	if s.Stage == StageQuestionnaire {
		return j, nil
	}

	j.stage = s.Stage
	j.profile = s.Profile
	j.answers = s.Answers
	a := *s.Assessment
	j.result = &a
	if s.Stage == StageMainApp {
		d := *s.Onboarding
		j.onboarding = &d
		j.view = s.View
		j.chat = slices.Clone(s.Chat)
	}
	return j, nil
}

// Save persists the journey as the newest snapshot and prunes old ones.
func Save(ctx context.Context, repo store.SnapshotRepo, j *Journey) error {
	body, err := json.Marshal(j.Snapshot())
	if err != nil {
		return fmt.Errorf("encode journey: %w", err)
	}
	snap := &store.Snapshot{
		Timestamp: time.Now(),
		Data:      store.SnapshotData{Version: SnapshotVersion, Journey: body},
	}
	if err := repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save journey: %w", err)
	}
	if err := repo.Prune(ctx, 5); err != nil {
		return fmt.Errorf("prune journey snapshots: %w", err)
	}
	return nil
}

// Load restores the newest saved journey, or a fresh one if nothing was
// saved or the saved data is from another format version.
func Load(ctx context.Context, repo store.SnapshotRepo) (*Journey, error) {
	snap, err := repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load journey: %w", err)
	}
	if snap == nil || snap.Data.Version != SnapshotVersion || len(snap.Data.Journey) == 0 {
		return New(), nil
	}

	var s Snapshot
	if err := json.Unmarshal(snap.Data.Journey, &s); err != nil {
		return nil, fmt.Errorf("decode journey: %w", err)
	}
	return Restore(s)
}
