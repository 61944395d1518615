package journey

import "fmt"

// Stage is the position of the user in the app flow.
type Stage int

const (
	StageQuestionnaire Stage = iota // Answering the questionnaire
	StageResults                    // Looking at the score
	StageOnboarding                 // Waiting for, or retrying, the generated track
	StageMainApp                    // Journey, diary and chat
)

var stageNames = map[Stage]string{
	StageQuestionnaire: "questionnaire",
	StageResults:       "results",
	StageOnboarding:    "onboarding",
	StageMainApp:       "main_app",
}

func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

func (s Stage) MarshalText() ([]byte, error) {
	if _, ok := stageNames[s]; !ok {
		return nil, fmt.Errorf("unknown stage %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Stage) UnmarshalText(b []byte) error {
	for st, n := range stageNames {
		if n == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown stage %q", b)
}

// View is the section shown inside the main app.
type View int

const (
	ViewJourney View = iota
	ViewDiary
	ViewChat
)

var viewNames = map[View]string{
	ViewJourney: "journey",
	ViewDiary:   "diary",
	ViewChat:    "chat",
}

// Views lists the main app sections in menu order.
func Views() []View {
	return []View{ViewJourney, ViewDiary, ViewChat}
}

func (v View) String() string {
	if n, ok := viewNames[v]; ok {
		return n
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Label is the Portuguese menu label.
func (v View) Label() string {
	switch v {
	case ViewDiary:
		return "Diário de Gastos"
	case ViewChat:
		return "Assistente"
	}
	return "Minha Jornada"
}

func (v View) MarshalText() ([]byte, error) {
	if _, ok := viewNames[v]; !ok {
		return nil, fmt.Errorf("unknown view %d", int(v))
	}
	return []byte(v.String()), nil
}

func (v *View) UnmarshalText(b []byte) error {
	for vw, n := range viewNames {
		if n == string(b) {
			*v = vw
			return nil
		}
	}
	return fmt.Errorf("unknown view %q", b)
}
