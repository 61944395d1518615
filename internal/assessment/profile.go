package assessment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultGoal stands in for a blank goal.
const DefaultGoal = "Não especificado"

// Profile is what the user tells about themselves besides the answers.
type Profile struct {
	Name  string `json:"name" validate:"required,max=80"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Goal  string `json:"goal" validate:"required,max=500"`
}

// NewProfile trims the fields and fills in DefaultGoal.
func NewProfile(name, email, goal string) Profile {
	p := Profile{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Goal:  strings.TrimSpace(goal),
	}
	if p.Goal == "" {
		p.Goal = DefaultGoal
	}
	return p
}

var validate = validator.New()

// Validate checks the profile and returns a Portuguese message for the
// first offending field.
func (p Profile) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "required" {
			return errors.New("informe seu nome")
		}
		return fmt.Errorf("o nome deve ter no máximo %s caracteres", fe.Param())
	case "Email":
		return errors.New("informe um e-mail válido")
	case "Goal":
		if fe.Tag() == "required" {
			return errors.New("informe sua meta ou maior dificuldade")
		}
		return fmt.Errorf("a meta deve ter no máximo %s caracteres", fe.Param())
	}
	return fmt.Errorf("campo inválido: %s", fe.Field())
}
