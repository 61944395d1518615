package diary

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Simi-mac/educafin/internal/store"
)

// Category groups an expense by what it paid for.
type Category string

const (
	CategoryHousing   Category = "Moradia"
	CategoryTransport Category = "Transporte"
	CategoryFood      Category = "Alimentação"
	CategoryLeisure   Category = "Lazer"
	CategoryHealth    Category = "Saúde"
	CategoryOther     Category = "Outros"
)

// Feeling is how the user judges an expense after the fact.
type Feeling string

const (
	FeelingEssential Feeling = "Essencial"
	FeelingImportant Feeling = "Importante"
	FeelingWant      Feeling = "Desejo"
	FeelingAvoidable Feeling = "Dava pra Evitar"
)

// Form defaults.
const (
	DefaultCategory = CategoryFood
	DefaultFeeling  = FeelingImportant
)

var (
	categories = []Category{CategoryHousing, CategoryTransport, CategoryFood, CategoryLeisure, CategoryHealth, CategoryOther}
	feelings   = []Feeling{FeelingEssential, FeelingImportant, FeelingWant, FeelingAvoidable}
)

// Categories lists the categories in form order.
func Categories() []Category { return slices.Clone(categories) }

// Feelings lists the feelings in form order.
func Feelings() []Feeling { return slices.Clone(feelings) }

// Icon is the marker shown next to a feeling.
func (f Feeling) Icon() string {
	switch f {
	case FeelingEssential:
		return "✅"
	case FeelingImportant:
		return "🔹"
	case FeelingWant:
		return "🛍️"
	case FeelingAvoidable:
		return "🤔"
	}
	return "?"
}

// Expense is one diary entry.
type Expense struct {
	ID          string    `json:"id" validate:"required"`
	Description string    `json:"description" validate:"required,max=120"`
	Amount      float64   `json:"amount" validate:"gt=0"`
	Category    Category  `json:"category" validate:"category"`
	Feeling     Feeling   `json:"feeling" validate:"feeling"`
	Date        time.Time `json:"date"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return slices.Contains(categories, Category(fl.Field().String()))
	})
	_ = v.RegisterValidation("feeling", func(fl validator.FieldLevel) bool {
		return slices.Contains(feelings, Feeling(fl.Field().String()))
	})
	return v
}

// NewExpense builds a validated expense with a fresh ID.
func NewExpense(description string, amount float64, category Category, feeling Feeling, at time.Time) (Expense, error) {
	e := Expense{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Category:    category,
		Feeling:     feeling,
		Date:        at,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// Validate checks the expense and returns a Portuguese message for the
// first offending field.
func (e Expense) Validate() error {
	err := validate.Struct(e)
	if err == nil {
		if e.Date.IsZero() {
			return errors.New("informe a data do gasto")
		}
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Description":
		if fe.Tag() == "required" {
			return errors.New("informe uma descrição")
		}
		return fmt.Errorf("a descrição deve ter no máximo %s caracteres", fe.Param())
	case "Amount":
		return errors.New("o valor deve ser maior que zero")
	case "Category":
		return fmt.Errorf("categoria desconhecida: %q", e.Category)
	case "Feeling":
		return fmt.Errorf("sentimento desconhecido: %q", e.Feeling)
	}
	return fmt.Errorf("campo inválido: %s", fe.Field())
}

// Record converts the expense to its stored form.
func (e Expense) Record() store.ExpenseRecord {
	return store.ExpenseRecord{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    string(e.Category),
		Feeling:     string(e.Feeling),
		SpentAt:     e.Date,
	}
}

// FromRecord converts a stored expense back.
func FromRecord(rec store.ExpenseRecord) Expense {
	return Expense{
		ID:          rec.ID,
		Description: rec.Description,
		Amount:      rec.Amount,
		Category:    Category(rec.Category),
		Feeling:     Feeling(rec.Feeling),
		Date:        rec.SpentAt,
	}
}

// History returns the expenses newest first. The input is not modified.
func History(expenses []Expense) []Expense {
	out := slices.Clone(expenses)
	slices.SortStableFunc(out, func(a, b Expense) int {
		return b.Date.Compare(a.Date)
	})
	return out
}
